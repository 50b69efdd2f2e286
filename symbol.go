package qrbyte

import "strings"

// symbol is a square grid of modules representing a QR Code symbol,
// without its quiet zone.
//
// Modules are addressed as (row, col) with (0, 0) at the top left. Each
// module has a value (true is dark) and a reserved flag marking function
// pattern modules, which data placement and masking leave alone.
type symbol struct {
	// Value of module at [row][col]. True is dark.
	module [][]bool

	// True if the module at [row][col] belongs to a function pattern or
	// to format or version information.
	reserved [][]bool

	// Width/height of the symbol.
	size int
}

// newSymbol constructs an all light, unreserved symbol of size*size
// modules.
func newSymbol(size int) *symbol {
	m := &symbol{
		module:   make([][]bool, size),
		reserved: make([][]bool, size),
		size:     size,
	}

	for i := range m.module {
		m.module[i] = make([]bool, size)
		m.reserved[i] = make([]bool, size)
	}

	return m
}

// get returns the module value at (row, col).
func (m *symbol) get(row int, col int) bool {
	return m.module[row][col]
}

// set sets the module at (row, col) to v without reserving it.
func (m *symbol) set(row int, col int, v bool) {
	m.module[row][col] = v
}

// reserve sets the module at (row, col) to v and marks it reserved.
func (m *symbol) reserve(row int, col int, v bool) {
	m.module[row][col] = v
	m.reserved[row][col] = true
}

func (m *symbol) isReserved(row int, col int) bool {
	return m.reserved[row][col]
}

// reserve2dPattern reserves a 2D array of modules with (top, left) as
// its first module.
func (m *symbol) reserve2dPattern(top int, left int, v [][]bool) {
	for i, row := range v {
		for j, value := range row {
			m.reserve(top+i, left+j, value)
		}
	}
}

// numFreeModules returns the number of modules left for data.
func (m *symbol) numFreeModules() int {
	var count int

	for _, row := range m.reserved {
		for _, r := range row {
			if !r {
				count++
			}
		}
	}

	return count
}

// clone returns a copy of m with independent module values. The reserved
// grid is shared and must not be modified through either symbol.
func (m *symbol) clone() *symbol {
	c := &symbol{
		module:   make([][]bool, m.size),
		reserved: m.reserved,
		size:     m.size,
	}

	for i, row := range m.module {
		c.module[i] = append([]bool(nil), row...)
	}

	return c
}

// bitmap returns a copy of the symbol surrounded by a light border
// quietZone modules wide.
func (m *symbol) bitmap(quietZone int) [][]bool {
	if quietZone < 0 {
		quietZone = 0
	}

	size := m.size + 2*quietZone
	result := make([][]bool, size)

	for i := range result {
		result[i] = make([]bool, size)
	}

	for i, row := range m.module {
		copy(result[i+quietZone][quietZone:], row)
	}

	return result
}

// bitmapString returns a pictorial representation of bitmap, suitable for
// printing in a TTY with a dark background.
func bitmapString(bitmap [][]bool) string {
	var sb strings.Builder

	for _, row := range bitmap {
		for _, value := range row {
			if value {
				sb.WriteString("  ")
			} else {
				// Unicode 'FULL BLOCK' (U+2588).
				sb.WriteString("██")
			}
		}

		sb.WriteByte('\n')
	}

	return sb.String()
}
