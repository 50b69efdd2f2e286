// Package tables holds the QR Code reference tables: codeword counts and
// block structure, remainder bits, alignment pattern centres, character
// count widths and the format and version information strings.
//
// The tables are package-level values initialised once and never
// modified. Every accessor returns copies or scalars.
package tables

import "fmt"

const (
	MinVersion = 1
	MaxVersion = 40
)

// Level indexes the error correction level columns, lowest to highest
// recovery: L, M, Q, H.
type Level int

const (
	L Level = iota
	M
	Q
	H
)

// Mode indexes the character count width columns.
type Mode int

const (
	Numeric Mode = iota
	Alphanumeric
	Byte
	Kanji
)

// Blocks describes the Reed-Solomon block structure of one (version,
// level) pair. Group 2 blocks hold one more data codeword than group 1
// blocks; Group2Blocks may be zero.
type Blocks struct {
	Group1Blocks        int
	Group1Codewords     int
	Group2Blocks        int
	Group2Codewords     int
	ECCodewordsPerBlock int
}

// NumBlocks returns the number of blocks in both groups.
func (b Blocks) NumBlocks() int {
	return b.Group1Blocks + b.Group2Blocks
}

// DataCodewords returns the number of data codewords in both groups.
func (b Blocks) DataCodewords() int {
	return b.Group1Blocks*b.Group1Codewords + b.Group2Blocks*b.Group2Codewords
}

// TotalCodewords returns data plus error correction codewords.
func (b Blocks) TotalCodewords() int {
	return b.DataCodewords() + b.NumBlocks()*b.ECCodewordsPerBlock
}

type blocks = Blocks

type version struct {
	codewords int // total codewords
	remainder int // remainder bits
	level     [4]blocks
}

// Adapted from libqrencode qrspec.c via rsc.io/qr.
var versions = [MaxVersion + 1]version{
	{}, // Version 0 doesn't exist.
	{26, 0, [4]blocks{{1, 19, 0, 0, 7}, {1, 16, 0, 0, 10}, {1, 13, 0, 0, 13}, {1, 9, 0, 0, 17}}}, // 1
	{44, 7, [4]blocks{{1, 34, 0, 0, 10}, {1, 28, 0, 0, 16}, {1, 22, 0, 0, 22}, {1, 16, 0, 0, 28}}}, // 2
	{70, 7, [4]blocks{{1, 55, 0, 0, 15}, {1, 44, 0, 0, 26}, {2, 17, 0, 0, 18}, {2, 13, 0, 0, 22}}}, // 3
	{100, 7, [4]blocks{{1, 80, 0, 0, 20}, {2, 32, 0, 0, 18}, {2, 24, 0, 0, 26}, {4, 9, 0, 0, 16}}}, // 4
	{134, 7, [4]blocks{{1, 108, 0, 0, 26}, {2, 43, 0, 0, 24}, {2, 15, 2, 16, 18}, {2, 11, 2, 12, 22}}}, // 5
	{172, 7, [4]blocks{{2, 68, 0, 0, 18}, {4, 27, 0, 0, 16}, {4, 19, 0, 0, 24}, {4, 15, 0, 0, 28}}}, // 6
	{196, 0, [4]blocks{{2, 78, 0, 0, 20}, {4, 31, 0, 0, 18}, {2, 14, 4, 15, 18}, {4, 13, 1, 14, 26}}}, // 7
	{242, 0, [4]blocks{{2, 97, 0, 0, 24}, {2, 38, 2, 39, 22}, {4, 18, 2, 19, 22}, {4, 14, 2, 15, 26}}}, // 8
	{292, 0, [4]blocks{{2, 116, 0, 0, 30}, {3, 36, 2, 37, 22}, {4, 16, 4, 17, 20}, {4, 12, 4, 13, 24}}}, // 9
	{346, 0, [4]blocks{{2, 68, 2, 69, 18}, {4, 43, 1, 44, 26}, {6, 19, 2, 20, 24}, {6, 15, 2, 16, 28}}}, // 10
	{404, 0, [4]blocks{{4, 81, 0, 0, 20}, {1, 50, 4, 51, 30}, {4, 22, 4, 23, 28}, {3, 12, 8, 13, 24}}}, // 11
	{466, 0, [4]blocks{{2, 92, 2, 93, 24}, {6, 36, 2, 37, 22}, {4, 20, 6, 21, 26}, {7, 14, 4, 15, 28}}}, // 12
	{532, 0, [4]blocks{{4, 107, 0, 0, 26}, {8, 37, 1, 38, 22}, {8, 20, 4, 21, 24}, {12, 11, 4, 12, 22}}}, // 13
	{581, 3, [4]blocks{{3, 115, 1, 116, 30}, {4, 40, 5, 41, 24}, {11, 16, 5, 17, 20}, {11, 12, 5, 13, 24}}}, // 14
	{655, 3, [4]blocks{{5, 87, 1, 88, 22}, {5, 41, 5, 42, 24}, {5, 24, 7, 25, 30}, {11, 12, 7, 13, 24}}}, // 15
	{733, 3, [4]blocks{{5, 98, 1, 99, 24}, {7, 45, 3, 46, 28}, {15, 19, 2, 20, 24}, {3, 15, 13, 16, 30}}}, // 16
	{815, 3, [4]blocks{{1, 107, 5, 108, 28}, {10, 46, 1, 47, 28}, {1, 22, 15, 23, 28}, {2, 14, 17, 15, 28}}}, // 17
	{901, 3, [4]blocks{{5, 120, 1, 121, 30}, {9, 43, 4, 44, 26}, {17, 22, 1, 23, 28}, {2, 14, 19, 15, 28}}}, // 18
	{991, 3, [4]blocks{{3, 113, 4, 114, 28}, {3, 44, 11, 45, 26}, {17, 21, 4, 22, 26}, {9, 13, 16, 14, 26}}}, // 19
	{1085, 3, [4]blocks{{3, 107, 5, 108, 28}, {3, 41, 13, 42, 26}, {15, 24, 5, 25, 30}, {15, 15, 10, 16, 28}}}, // 20
	{1156, 4, [4]blocks{{4, 116, 4, 117, 28}, {17, 42, 0, 0, 26}, {17, 22, 6, 23, 28}, {19, 16, 6, 17, 30}}}, // 21
	{1258, 4, [4]blocks{{2, 111, 7, 112, 28}, {17, 46, 0, 0, 28}, {7, 24, 16, 25, 30}, {34, 13, 0, 0, 24}}}, // 22
	{1364, 4, [4]blocks{{4, 121, 5, 122, 30}, {4, 47, 14, 48, 28}, {11, 24, 14, 25, 30}, {16, 15, 14, 16, 30}}}, // 23
	{1474, 4, [4]blocks{{6, 117, 4, 118, 30}, {6, 45, 14, 46, 28}, {11, 24, 16, 25, 30}, {30, 16, 2, 17, 30}}}, // 24
	{1588, 4, [4]blocks{{8, 106, 4, 107, 26}, {8, 47, 13, 48, 28}, {7, 24, 22, 25, 30}, {22, 15, 13, 16, 30}}}, // 25
	{1706, 4, [4]blocks{{10, 114, 2, 115, 28}, {19, 46, 4, 47, 28}, {28, 22, 6, 23, 28}, {33, 16, 4, 17, 30}}}, // 26
	{1828, 4, [4]blocks{{8, 122, 4, 123, 30}, {22, 45, 3, 46, 28}, {8, 23, 26, 24, 30}, {12, 15, 28, 16, 30}}}, // 27
	{1921, 3, [4]blocks{{3, 117, 10, 118, 30}, {3, 45, 23, 46, 28}, {4, 24, 31, 25, 30}, {11, 15, 31, 16, 30}}}, // 28
	{2051, 3, [4]blocks{{7, 116, 7, 117, 30}, {21, 45, 7, 46, 28}, {1, 23, 37, 24, 30}, {19, 15, 26, 16, 30}}}, // 29
	{2185, 3, [4]blocks{{5, 115, 10, 116, 30}, {19, 47, 10, 48, 28}, {15, 24, 25, 25, 30}, {23, 15, 25, 16, 30}}}, // 30
	{2323, 3, [4]blocks{{13, 115, 3, 116, 30}, {2, 46, 29, 47, 28}, {42, 24, 1, 25, 30}, {23, 15, 28, 16, 30}}}, // 31
	{2465, 3, [4]blocks{{17, 115, 0, 0, 30}, {10, 46, 23, 47, 28}, {10, 24, 35, 25, 30}, {19, 15, 35, 16, 30}}}, // 32
	{2611, 3, [4]blocks{{17, 115, 1, 116, 30}, {14, 46, 21, 47, 28}, {29, 24, 19, 25, 30}, {11, 15, 46, 16, 30}}}, // 33
	{2761, 3, [4]blocks{{13, 115, 6, 116, 30}, {14, 46, 23, 47, 28}, {44, 24, 7, 25, 30}, {59, 16, 1, 17, 30}}}, // 34
	{2876, 0, [4]blocks{{12, 121, 7, 122, 30}, {12, 47, 26, 48, 28}, {39, 24, 14, 25, 30}, {22, 15, 41, 16, 30}}}, // 35
	{3034, 0, [4]blocks{{6, 121, 14, 122, 30}, {6, 47, 34, 48, 28}, {46, 24, 10, 25, 30}, {2, 15, 64, 16, 30}}}, // 36
	{3196, 0, [4]blocks{{17, 122, 4, 123, 30}, {29, 46, 14, 47, 28}, {49, 24, 10, 25, 30}, {24, 15, 46, 16, 30}}}, // 37
	{3362, 0, [4]blocks{{4, 122, 18, 123, 30}, {13, 46, 32, 47, 28}, {48, 24, 14, 25, 30}, {42, 15, 32, 16, 30}}}, // 38
	{3532, 0, [4]blocks{{20, 117, 4, 118, 30}, {40, 47, 7, 48, 28}, {43, 24, 22, 25, 30}, {10, 15, 67, 16, 30}}}, // 39
	{3706, 0, [4]blocks{{19, 118, 6, 119, 30}, {18, 47, 31, 48, 28}, {34, 24, 34, 25, 30}, {20, 15, 61, 16, 30}}}, // 40
}

var alignmentPatternCenter = [MaxVersion + 1][]int{
	{}, // Version 0 doesn't exist.
	{}, // Version 1 doesn't use alignment patterns.
	{6, 18},
	{6, 22},
	{6, 26},
	{6, 30},
	{6, 34},
	{6, 22, 38},
	{6, 24, 42},
	{6, 26, 46},
	{6, 28, 50},
	{6, 30, 54},
	{6, 32, 58},
	{6, 34, 62},
	{6, 26, 46, 66},
	{6, 26, 48, 70},
	{6, 26, 50, 74},
	{6, 30, 54, 78},
	{6, 30, 56, 82},
	{6, 30, 58, 86},
	{6, 34, 62, 90},
	{6, 28, 50, 72, 94},
	{6, 26, 50, 74, 98},
	{6, 30, 54, 78, 102},
	{6, 28, 54, 80, 106},
	{6, 32, 58, 84, 110},
	{6, 30, 58, 86, 114},
	{6, 34, 62, 90, 118},
	{6, 26, 50, 74, 98, 122},
	{6, 30, 54, 78, 102, 126},
	{6, 26, 52, 78, 104, 130},
	{6, 30, 56, 82, 108, 134},
	{6, 34, 60, 86, 112, 138},
	{6, 30, 58, 86, 114, 142},
	{6, 34, 62, 90, 118, 146},
	{6, 30, 54, 78, 102, 126, 150},
	{6, 24, 50, 76, 102, 128, 154},
	{6, 28, 54, 80, 106, 132, 158},
	{6, 32, 58, 84, 110, 136, 162},
	{6, 26, 54, 82, 110, 138, 166},
	{6, 30, 58, 86, 114, 142, 170},
}

// Character count indicator widths for versions 1-9, 10-26 and 27-40.
var charCountBits = [4][3]int{
	Numeric:      {10, 12, 14},
	Alphanumeric: {9, 11, 13},
	Byte:         {8, 16, 16},
	Kanji:        {8, 10, 12},
}

// 15 bit format information, already masked with 101010000010010,
// indexed by level and mask pattern.
var formatInformation = [4][8]uint16{
	{0x77c4, 0x72f3, 0x7daa, 0x789d, 0x662f, 0x6318, 0x6c41, 0x6976}, // L
	{0x5412, 0x5125, 0x5e7c, 0x5b4b, 0x45f9, 0x40ce, 0x4f97, 0x4aa0}, // M
	{0x355f, 0x3068, 0x3f31, 0x3a06, 0x24b4, 0x2183, 0x2eda, 0x2bed}, // Q
	{0x1689, 0x13be, 0x1ce7, 0x19d0, 0x0762, 0x0255, 0x0d0c, 0x083b}, // H
}

// 18 bit version information for versions 7-40.
var versionInformation = [MaxVersion - 6]uint32{
	0x07c94, 0x085bc, 0x09a99, 0x0a4d3, 0x0bbf6, 0x0c762, 0x0d847, 0x0e60d,
	0x0f928, 0x10b78, 0x1145d, 0x12a17, 0x13532, 0x149a6, 0x15683, 0x168c9,
	0x177ec, 0x18ec4, 0x191e1, 0x1afab, 0x1b08e, 0x1cc1a, 0x1d33f, 0x1ed75,
	0x1f250, 0x209d5, 0x216f0, 0x228ba, 0x2379f, 0x24b0b, 0x2542e, 0x26a64,
	0x27541, 0x28c69,
}

func validVersion(v int) error {
	if v < MinVersion || v > MaxVersion {
		return fmt.Errorf("version %d out of range %d-%d", v, MinVersion, MaxVersion)
	}

	return nil
}

func validLevel(l Level) error {
	if l < L || l > H {
		return fmt.Errorf("level %d out of range", l)
	}

	return nil
}

// Codewords returns the block structure for version v at level l.
func Codewords(v int, l Level) (Blocks, error) {
	if err := validVersion(v); err != nil {
		return Blocks{}, err
	}

	if err := validLevel(l); err != nil {
		return Blocks{}, err
	}

	return versions[v].level[l], nil
}

// TotalCodewords returns the number of codewords in a version v symbol.
func TotalCodewords(v int) int {
	if validVersion(v) != nil {
		return 0
	}

	return versions[v].codewords
}

// RemainderBits returns the number of zero bits appended after the last
// codeword of a version v symbol.
func RemainderBits(v int) int {
	if validVersion(v) != nil {
		return 0
	}

	return versions[v].remainder
}

// CharCountBits returns the width of the character count indicator for
// mode m at version v.
func CharCountBits(v int, m Mode) (int, error) {
	if err := validVersion(v); err != nil {
		return 0, err
	}

	if m < Numeric || m > Kanji {
		return 0, fmt.Errorf("mode %d out of range", m)
	}

	switch {
	case v <= 9:
		return charCountBits[m][0], nil
	case v <= 26:
		return charCountBits[m][1], nil
	default:
		return charCountBits[m][2], nil
	}
}

// ByteCapacity returns the number of bytes a byte mode segment can hold
// at version v and level l.
func ByteCapacity(v int, l Level) int {
	b, err := Codewords(v, l)
	if err != nil {
		return 0
	}

	ccBits, _ := CharCountBits(v, Byte)

	return (b.DataCodewords()*8 - 4 - ccBits) / 8
}

// AlignmentCenters returns the row and column coordinates of alignment
// pattern centres for version v. Version 1 has none.
func AlignmentCenters(v int) []int {
	if validVersion(v) != nil {
		return nil
	}

	c := alignmentPatternCenter[v]
	result := make([]int, len(c))
	copy(result, c)

	return result
}

// FormatInformation returns the masked 15 bit format information string
// for level l and mask pattern mask.
func FormatInformation(l Level, mask int) (uint16, error) {
	if err := validLevel(l); err != nil {
		return 0, err
	}

	if mask < 0 || mask > 7 {
		return 0, fmt.Errorf("mask %d out of range 0-7", mask)
	}

	return formatInformation[l][mask], nil
}

// VersionInformation returns the 18 bit version information string for
// version v, or false if v carries none.
func VersionInformation(v int) (uint32, bool) {
	if v < 7 || v > MaxVersion {
		return 0, false
	}

	return versionInformation[v-7], true
}
