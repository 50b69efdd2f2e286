package qrbyte

import (
	"fmt"

	"github.com/RashadAnsari/qrbyte/internal/bitset"
	"github.com/RashadAnsari/qrbyte/internal/tables"
)

var (
	finderPattern = [][]bool{
		{b1, b1, b1, b1, b1, b1, b1},
		{b1, b0, b0, b0, b0, b0, b1},
		{b1, b0, b1, b1, b1, b0, b1},
		{b1, b0, b1, b1, b1, b0, b1},
		{b1, b0, b1, b1, b1, b0, b1},
		{b1, b0, b0, b0, b0, b0, b1},
		{b1, b1, b1, b1, b1, b1, b1},
	}

	finderPatternSize = 7

	alignmentPattern = [][]bool{
		{b1, b1, b1, b1, b1},
		{b1, b0, b0, b0, b1},
		{b1, b0, b1, b0, b1},
		{b1, b0, b0, b0, b1},
		{b1, b1, b1, b1, b1},
	}
)

// matrixBuilder lays out the function patterns of a symbol and places
// the codeword stream into the remaining modules.
type matrixBuilder struct {
	version qrCodeVersion

	symbol *symbol
	size   int
}

func newMatrixBuilder(version qrCodeVersion) *matrixBuilder {
	return &matrixBuilder{
		version: version,
		symbol:  newSymbol(version.symbolSize()),
		size:    version.symbolSize(),
	}
}

// addFunctionPatterns reserves every non-data module. Format and version
// information areas are reserved light and written after masking.
func (m *matrixBuilder) addFunctionPatterns() {
	m.addFinderPatterns()
	m.addAlignmentPatterns()
	m.addTimingPatterns()
	m.addDarkModule()
	m.reserveFormatInfo()
	m.reserveVersionInfo()
}

func (m *matrixBuilder) addFinderPatterns() {
	fpSize := finderPatternSize
	offset := m.size - fpSize - 1

	m.symbol.reserve2dPattern(0, 0, finderPattern)
	m.symbol.reserve2dPattern(0, m.size-fpSize, finderPattern)
	m.symbol.reserve2dPattern(m.size-fpSize, 0, finderPattern)

	// Light separators around the three finder patterns.
	for i := 0; i <= fpSize; i++ {
		// Top left.
		m.symbol.reserve(fpSize, i, false)
		m.symbol.reserve(i, fpSize, false)

		// Top right.
		m.symbol.reserve(fpSize, offset+i, false)
		m.symbol.reserve(i, offset, false)

		// Bottom left.
		m.symbol.reserve(offset, i, false)
		m.symbol.reserve(offset+i, fpSize, false)
	}
}

// addAlignmentPatterns places a pattern at every pair of centre
// coordinates unless one of its corners is already reserved, which is
// the case only where it would overlap a finder pattern.
func (m *matrixBuilder) addAlignmentPatterns() {
	centers := tables.AlignmentCenters(m.version.version)

	for _, row := range centers {
		for _, col := range centers {
			if m.symbol.isReserved(row-2, col-2) || m.symbol.isReserved(row-2, col+2) ||
				m.symbol.isReserved(row+2, col-2) || m.symbol.isReserved(row+2, col+2) {
				continue
			}

			m.symbol.reserve2dPattern(row-2, col-2, alignmentPattern)
		}
	}
}

func (m *matrixBuilder) addTimingPatterns() {
	for i := finderPatternSize + 1; i < m.size-finderPatternSize-1; i++ {
		value := i%2 == 0

		if !m.symbol.isReserved(finderPatternSize-1, i) {
			m.symbol.reserve(finderPatternSize-1, i, value)
		}

		if !m.symbol.isReserved(i, finderPatternSize-1) {
			m.symbol.reserve(i, finderPatternSize-1, value)
		}
	}
}

// addDarkModule sets the module beside the bottom left finder pattern
// that is dark in every symbol.
func (m *matrixBuilder) addDarkModule() {
	m.symbol.reserve(m.size-finderPatternSize-1, finderPatternSize+1, true)
}

func (m *matrixBuilder) reserveFormatInfo() {
	fpSize := finderPatternSize

	for i := 0; i <= fpSize+1; i++ {
		if !m.symbol.isReserved(i, fpSize+1) {
			m.symbol.reserve(i, fpSize+1, false)
		}

		if !m.symbol.isReserved(fpSize+1, i) {
			m.symbol.reserve(fpSize+1, i, false)
		}
	}

	for i := 1; i <= fpSize+1; i++ {
		if !m.symbol.isReserved(m.size-i, fpSize+1) {
			m.symbol.reserve(m.size-i, fpSize+1, false)
		}

		if !m.symbol.isReserved(fpSize+1, m.size-i) {
			m.symbol.reserve(fpSize+1, m.size-i, false)
		}
	}
}

func (m *matrixBuilder) reserveVersionInfo() {
	if _, ok := tables.VersionInformation(m.version.version); !ok {
		return
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 6; j++ {
			m.symbol.reserve(j, m.size-11+i, false)
			m.symbol.reserve(m.size-11+i, j, false)
		}
	}
}

// addData places data into the unreserved modules. Columns are walked in
// pairs from the right edge, alternating upward and downward, skipping
// the vertical timing pattern. Within a pair the right module comes
// first.
func (m *matrixBuilder) addData(data *bitset.Bitset) error {
	numFree := m.symbol.numFreeModules()
	if data.Len() != numFree {
		return fmt.Errorf("%w: %d bits for %d free modules (version %d)",
			ErrShapeMismatch, data.Len(), numFree, m.version.version)
	}

	i := 0
	up := true

	for right := m.size - 1; right > 0; right -= 2 {
		// Skip over the vertical timing pattern entirely.
		if right == finderPatternSize-1 {
			right--
		}

		for k := 0; k < m.size; k++ {
			row := k
			if up {
				row = m.size - 1 - k
			}

			for col := right; col >= right-1; col-- {
				if m.symbol.isReserved(row, col) {
					continue
				}

				v, err := data.At(i)
				if err != nil {
					return fmt.Errorf("%w: %v", ErrShapeMismatch, err)
				}

				m.symbol.set(row, col, v)
				i++
			}
		}

		up = !up
	}

	if i != data.Len() {
		return fmt.Errorf("%w: placed %d of %d bits", ErrShapeMismatch, i, data.Len())
	}

	return nil
}
