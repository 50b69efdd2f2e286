package qrbyte

import (
	"fmt"

	"github.com/RashadAnsari/qrbyte/internal/tables"
)

// qrCodeVersion describes the shape of one (version, level) symbol.
type qrCodeVersion struct {
	version int
	level   RecoveryLevel

	blocks           tables.Blocks
	numRemainderBits int
}

func newQRCodeVersion(version int, level RecoveryLevel) (qrCodeVersion, error) {
	if !level.valid() {
		return qrCodeVersion{}, fmt.Errorf("invalid recovery level %d", int(level))
	}

	blocks, err := tables.Codewords(version, level.tableLevel())
	if err != nil {
		return qrCodeVersion{}, err
	}

	return qrCodeVersion{
		version:          version,
		level:            level,
		blocks:           blocks,
		numRemainderBits: tables.RemainderBits(version),
	}, nil
}

// chooseQRCodeVersion returns the smallest version able to hold a byte
// segment of numBytes characters at level.
func chooseQRCodeVersion(numBytes int, level RecoveryLevel) (qrCodeVersion, error) {
	if !level.valid() {
		return qrCodeVersion{}, fmt.Errorf("invalid recovery level %d", int(level))
	}

	for v := tables.MinVersion; v <= tables.MaxVersion; v++ {
		if tables.ByteCapacity(v, level.tableLevel()) >= numBytes {
			return newQRCodeVersion(v, level)
		}
	}

	return qrCodeVersion{}, fmt.Errorf("%w: %d bytes, version %d-%s holds %d",
		ErrMessageTooLong, numBytes, tables.MaxVersion, level,
		tables.ByteCapacity(tables.MaxVersion, level.tableLevel()))
}

// Capacity returns the maximum number of single byte characters a symbol
// of the given version and level holds, or 0 if either is out of range.
func Capacity(version int, level RecoveryLevel) int {
	if !level.valid() {
		return 0
	}

	return tables.ByteCapacity(version, level.tableLevel())
}

// symbolSize returns the width in modules, excluding the quiet zone.
func (v qrCodeVersion) symbolSize() int {
	return 17 + 4*v.version
}

func (v qrCodeVersion) numBlocks() int {
	return v.blocks.NumBlocks()
}

func (v qrCodeVersion) numDataBits() int {
	return v.blocks.DataCodewords() * 8
}

// numBits returns the length of the final interleaved bit stream.
func (v qrCodeVersion) numBits() int {
	return tables.TotalCodewords(v.version)*8 + v.numRemainderBits
}
