package qrbyte

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/RashadAnsari/qrbyte/internal/tables"
)

const numMasks = 8

// maskFunctions report whether the data module at (row, col) is inverted
// by each mask pattern.
var maskFunctions = [numMasks]func(row, col int) bool{
	func(row, col int) bool { return (row+col)%2 == 0 },
	func(row, col int) bool { return row%2 == 0 },
	func(row, col int) bool { return col%3 == 0 },
	func(row, col int) bool { return (row+col)%3 == 0 },
	func(row, col int) bool { return (row/2+col/3)%2 == 0 },
	func(row, col int) bool { return (row*col)%2+(row*col)%3 == 0 },
	func(row, col int) bool { return ((row*col)%2+(row*col)%3)%2 == 0 },
	func(row, col int) bool { return ((row+col)%2+(row*col)%3)%2 == 0 },
}

// applyMask inverts every unreserved module selected by mask.
func (m *symbol) applyMask(mask int) {
	f := maskFunctions[mask]

	for row := 0; row < m.size; row++ {
		for col := 0; col < m.size; col++ {
			if !m.reserved[row][col] && f(row, col) {
				// != is equivalent to XOR.
				m.module[row][col] = !m.module[row][col]
			}
		}
	}
}

// selectMask evaluates all mask patterns on copies of m and returns the
// one with the lowest penalty score. Ties go to the lowest mask number.
func selectMask(m *symbol) (mask int, penalty int, err error) {
	var (
		g         errgroup.Group
		penalties [numMasks]int
	)

	for i := 0; i < numMasks; i++ {
		i := i
		g.Go(func() error {
			candidate := m.clone()
			candidate.applyMask(i)
			penalties[i] = candidate.penaltyScore()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	mask = 0

	for i := 1; i < numMasks; i++ {
		if penalties[i] < penalties[mask] {
			mask = i
		}
	}

	return mask, penalties[mask], nil
}

// Constants used to weight penalty calculations. Specified by ISO/IEC
// 18004:2015.
const (
	penaltyWeight1 = 3
	penaltyWeight2 = 3
	penaltyWeight3 = 40
	penaltyWeight4 = 10
)

// penaltyScore returns the penalty score of the symbol. The penalty score
// consists of the sum of the four individual penalty types.
func (m *symbol) penaltyScore() int {
	return m.penalty1() + m.penalty2() + m.penalty3() + m.penalty4()
}

// line returns the i-th row, or the i-th column if vertical is set.
func (m *symbol) line(i int, vertical bool) []bool {
	if !vertical {
		return m.module[i]
	}

	col := make([]bool, m.size)
	for row := range col {
		col[row] = m.module[row][i]
	}

	return col
}

// penalty1 returns the penalty score for "adjacent modules in row/column with
// same colour".
//
// A run of 5+k modules of one colour scores penaltyWeight1 + k.
func (m *symbol) penalty1() int {
	penalty := 0

	runPenalty := func(count int) int {
		if count < 5 {
			return 0
		}

		return penaltyWeight1 + count - 5
	}

	for _, vertical := range []bool{false, true} {
		for i := 0; i < m.size; i++ {
			line := m.line(i, vertical)
			count := 1

			for j := 1; j < len(line); j++ {
				if line[j] == line[j-1] {
					count++
					continue
				}

				penalty += runPenalty(count)
				count = 1
			}

			penalty += runPenalty(count)
		}
	}

	return penalty
}

// penalty2 returns the penalty score for "block of modules in the same colour".
//
// Every 2x2 block of one colour scores penaltyWeight2. Blocks may overlap.
func (m *symbol) penalty2() int {
	penalty := 0

	for row := 1; row < m.size; row++ {
		for col := 1; col < m.size; col++ {
			current := m.get(row, col)

			if current == m.get(row-1, col-1) && current == m.get(row-1, col) &&
				current == m.get(row, col-1) {
				penalty += penaltyWeight2
			}
		}
	}

	return penalty
}

// Finder-like sequences 10111010000 and 00001011101.
var finderLikePatterns = [2][11]bool{
	{b1, b0, b1, b1, b1, b0, b1, b0, b0, b0, b0},
	{b0, b0, b0, b0, b1, b0, b1, b1, b1, b0, b1},
}

// penalty3 returns the penalty score for "1:1:3:1:1 ratio
// (dark:light:dark:light:dark) pattern in row/column, preceded or followed by
// light area 4 modules wide".
//
// Each occurrence of either 11 module sequence scores penaltyWeight3.
func (m *symbol) penalty3() int {
	penalty := 0

	for _, vertical := range []bool{false, true} {
		for i := 0; i < m.size; i++ {
			line := m.line(i, vertical)

			for start := 0; start+11 <= len(line); start++ {
				for _, p := range finderLikePatterns {
					if matches(line[start:start+11], p[:]) {
						penalty += penaltyWeight3
					}
				}
			}
		}
	}

	return penalty
}

func matches(a, b []bool) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// penalty4 returns the penalty score for the proportion of dark modules.
//
// With the dark percentage between 5k and 5(k+1), the score is
// penaltyWeight4 times the smaller distance of 5k or 5(k+1) from 50, in
// steps of 5.
func (m *symbol) penalty4() int {
	numModules := m.size * m.size
	numDarkModules := 0

	for row := 0; row < m.size; row++ {
		for col := 0; col < m.size; col++ {
			if m.get(row, col) {
				numDarkModules++
			}
		}
	}

	prev := numDarkModules * 20 / numModules * 5
	next := prev + 5

	return penaltyWeight4 * min(abs(prev-50), abs(next-50)) / 5
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

// formatInfo returns the 15 bit format information for level and mask:
// the 5 data bits, their BCH(15,5) remainder, masked with 0x5412.
func formatInfo(level RecoveryLevel, mask int) (uint16, error) {
	data := uint32(level.formatBits())<<3 | uint32(mask)
	f := (data<<10 | bchRemainder(data<<10, 0x537, 10)) ^ 0x5412

	want, err := tables.FormatInformation(level.tableLevel(), mask)
	if err != nil {
		return 0, err
	}

	if uint16(f) != want {
		return 0, fmt.Errorf("%w: format information %#x for %s mask %d, table has %#x",
			ErrInvariantViolation, f, level, mask, want)
	}

	return uint16(f), nil
}

// versionInfo returns the 18 bit version information for version, or
// false for versions below 7.
func versionInfo(version int) (uint32, bool, error) {
	want, ok := tables.VersionInformation(version)
	if !ok {
		return 0, false, nil
	}

	v := uint32(version)<<12 | bchRemainder(uint32(version)<<12, 0x1f25, 12)

	if v != want {
		return 0, false, fmt.Errorf("%w: version information %#x for version %d, table has %#x",
			ErrInvariantViolation, v, version, want)
	}

	return v, true, nil
}

// bchRemainder returns value modulo the generator polynomial of degree
// bits over GF(2).
func bchRemainder(value uint32, generator uint32, bits int) uint32 {
	for i := 31; i >= bits; i-- {
		if value&(1<<uint(i)) != 0 {
			value ^= generator << uint(i-bits)
		}
	}

	return value
}

// addFormatInfo writes both copies of the format information. Bit 14 is
// the most significant.
func (m *matrixBuilder) addFormatInfo(f uint16) {
	n := m.size

	for i := 0; i < 15; i++ {
		v := f&(1<<uint(14-i)) != 0

		// First copy, around the top left finder pattern.
		switch {
		case i <= 5:
			m.symbol.reserve(8, i, v)
		case i == 6:
			m.symbol.reserve(8, 7, v)
		case i == 7:
			m.symbol.reserve(8, 8, v)
		case i == 8:
			m.symbol.reserve(7, 8, v)
		default:
			m.symbol.reserve(14-i, 8, v)
		}

		// Second copy, split between the bottom left and top right.
		if i <= 6 {
			m.symbol.reserve(n-1-i, 8, v)
		} else {
			m.symbol.reserve(8, n-15+i, v)
		}
	}
}

// addVersionInfo writes both copies of the version information. Bit 0 is
// the least significant.
func (m *matrixBuilder) addVersionInfo(v uint32) {
	for i := 0; i < 18; i++ {
		value := v&(1<<uint(i)) != 0

		// Left of the top right finder pattern.
		m.symbol.reserve(i/3, m.size-11+i%3, value)

		// Above the bottom left finder pattern.
		m.symbol.reserve(m.size-11+i%3, i/3, value)
	}
}
