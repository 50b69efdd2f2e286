package qrbyte

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/RashadAnsari/qrbyte/internal/bitset"
	"github.com/RashadAnsari/qrbyte/internal/tables"
)

type dataMode uint8

const (
	dataModeNumeric dataMode = iota
	dataModeAlphanumeric
	dataModeByte
	dataModeKanji
)

func (m dataMode) String() string {
	switch m {
	case dataModeNumeric:
		return "numeric"
	case dataModeAlphanumeric:
		return "alphanumeric"
	case dataModeByte:
		return "byte"
	case dataModeKanji:
		return "kanji"
	default:
		return fmt.Sprintf("dataMode(%d)", uint8(m))
	}
}

const (
	b0 = false
	b1 = true
)

// Pad codewords 0b11101100 and 0b00010001, inserted alternately.
var padCodewords = [2]byte{0xec, 0x11}

type dataEncoder struct {
	version qrCodeVersion

	// Mode indicator bit sequences.
	numericModeIndicator      *bitset.Bitset
	alphanumericModeIndicator *bitset.Bitset
	byteModeIndicator         *bitset.Bitset
	kanjiModeIndicator        *bitset.Bitset

	// Character count length for byte mode at this version.
	numByteCharCountBits int

	// Data codeword capacity in bits.
	numDataBits int
}

func newDataEncoder(v qrCodeVersion) (*dataEncoder, error) {
	numByteCharCountBits, err := tables.CharCountBits(v.version, tables.Byte)
	if err != nil {
		return nil, err
	}

	return &dataEncoder{
		version:                   v,
		numericModeIndicator:      bitset.New(b0, b0, b0, b1),
		alphanumericModeIndicator: bitset.New(b0, b0, b1, b0),
		byteModeIndicator:         bitset.New(b0, b1, b0, b0),
		kanjiModeIndicator:        bitset.New(b1, b0, b0, b0),
		numByteCharCountBits:      numByteCharCountBits,
		numDataBits:               v.numDataBits(),
	}, nil
}

// toSingleBytes maps every character of content to one ISO-8859-1 byte.
func toSingleBytes(content string) ([]byte, error) {
	data, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCharacter, err)
	}

	return data, nil
}

// encode returns the complete data codeword sequence for data: mode
// indicator, character count, payload, terminator, alignment and pad
// codewords. The result is exactly numDataBits long.
func (d *dataEncoder) encode(data []byte, mode dataMode) (*bitset.Bitset, error) {
	if mode != dataModeByte {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMode, mode)
	}

	encoded := bitset.New()

	if err := d.encodeDataRaw(data, mode, encoded); err != nil {
		return nil, err
	}

	if encoded.Len() > d.numDataBits {
		return nil, fmt.Errorf("%w: %d bits, version %d-%s holds %d",
			ErrCapacityExceeded, encoded.Len(), d.version.version, d.version.level, d.numDataBits)
	}

	d.addTerminatorBits(encoded)

	if err := d.addPadding(encoded); err != nil {
		return nil, err
	}

	return encoded, nil
}

func (d *dataEncoder) encodeDataRaw(data []byte, mode dataMode, encoded *bitset.Bitset) error {
	modeIndicator, err := d.modeIndicator(mode)
	if err != nil {
		return err
	}

	charCountBits, err := d.charCountBits(mode)
	if err != nil {
		return err
	}

	if maxLength := 1<<uint(charCountBits) - 1; len(data) > maxLength {
		return fmt.Errorf("%w: %d characters, indicator holds at most %d",
			ErrCountOverflow, len(data), maxLength)
	}

	// Append mode indicator.
	encoded.Append(modeIndicator)

	// Append character count.
	if err := encoded.AppendUint32(uint32(len(data)), charCountBits); err != nil {
		return err
	}

	// Append data.
	encoded.AppendBytes(data)

	return nil
}

func (d *dataEncoder) modeIndicator(mode dataMode) (*bitset.Bitset, error) {
	switch mode {
	case dataModeNumeric:
		return d.numericModeIndicator, nil
	case dataModeAlphanumeric:
		return d.alphanumericModeIndicator, nil
	case dataModeByte:
		return d.byteModeIndicator, nil
	case dataModeKanji:
		return d.kanjiModeIndicator, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMode, mode)
	}
}

func (d *dataEncoder) charCountBits(mode dataMode) (int, error) {
	if mode != dataModeByte {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedMode, mode)
	}

	return d.numByteCharCountBits, nil
}

// addTerminatorBits appends up to 4 zero bits, fewer if the data
// codewords are nearly full.
func (d *dataEncoder) addTerminatorBits(encoded *bitset.Bitset) {
	numTerminatorBits := d.numDataBits - encoded.Len()
	if numTerminatorBits > 4 {
		numTerminatorBits = 4
	}

	encoded.AppendNumBools(numTerminatorBits, false)
}

func (d *dataEncoder) addPadding(encoded *bitset.Bitset) error {
	// Pad to the nearest codeword boundary.
	if r := encoded.Len() % 8; r != 0 {
		encoded.AppendNumBools(8-r, false)
	}

	// Insert pad codewords alternately.
	for i := 0; d.numDataBits-encoded.Len() >= 8; i = 1 - i {
		encoded.AppendBytes(padCodewords[i : i+1])
	}

	if encoded.Len() != d.numDataBits {
		return fmt.Errorf("%w: got len %d, expected %d", ErrCapacityExceeded, encoded.Len(), d.numDataBits)
	}

	return nil
}
