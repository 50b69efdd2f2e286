package qrbyte

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/RashadAnsari/qrbyte/internal/bitset"
)

// HELLO WORLD at version 1-M, ISO/IEC 18004 annex I.
func TestEncodeBlocksGolden(t *testing.T) {
	data := []byte{32, 91, 11, 120, 209, 114, 220, 77, 67, 64, 236, 17, 236, 17, 236, 17}
	ec := []byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23}

	v, err := newQRCodeVersion(1, Medium)
	if err != nil {
		t.Fatal(err)
	}

	encoded, err := encodeBlocks(bitsetOf(data), v, 208)
	if err != nil {
		t.Fatal(err)
	}

	got, err := encoded.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	if want := append(append([]byte{}, data...), ec...); !bytes.Equal(got, want) {
		t.Errorf("stream = %v, want %v", got, want)
	}
}

func bitsetOf(data []byte) *bitset.Bitset {
	b := bitset.New()
	b.AppendBytes(data)

	return b
}

func TestSplitBlocks(t *testing.T) {
	v, err := newQRCodeVersion(5, High)
	if err != nil {
		t.Fatal(err)
	}

	data := make([]byte, 62)
	for i := range data {
		data[i] = byte(i)
	}

	blocks, err := splitBlocks(bitsetOf(data), v)
	if err != nil {
		t.Fatal(err)
	}

	var sizes []int
	for _, b := range blocks {
		sizes = append(sizes, len(b.data))
	}

	if !reflect.DeepEqual(sizes, []int{15, 15, 16, 16}) {
		t.Fatalf("block sizes = %v", sizes)
	}

	if blocks[2].data[0] != 30 || blocks[3].data[15] != 61 {
		t.Errorf("blocks not in codeword order: %v", blocks)
	}

	if _, err := splitBlocks(bitsetOf(data[:61]), v); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("err = %v, want ErrShapeMismatch", err)
	}
}

func TestInterleave(t *testing.T) {
	blocks := []dataBlock{
		{data: []byte{1, 2}, ec: []byte{11, 12}},
		{data: []byte{3, 4}, ec: []byte{13, 14}},
		{data: []byte{5, 6, 7}, ec: []byte{15, 16}},
		{data: []byte{8, 9, 10}, ec: []byte{17, 18}},
	}

	got := interleave(blocks, func(b dataBlock) []byte { return b.data })
	if want := []byte{1, 3, 5, 8, 2, 4, 6, 9, 7, 10}; !bytes.Equal(got, want) {
		t.Errorf("data = %v, want %v", got, want)
	}

	got = interleave(blocks, func(b dataBlock) []byte { return b.ec })
	if want := []byte{11, 13, 15, 17, 12, 14, 16, 18}; !bytes.Equal(got, want) {
		t.Errorf("ec = %v, want %v", got, want)
	}
}

func TestEncodeBlocksLength(t *testing.T) {
	for _, level := range []RecoveryLevel{Low, Medium, High, Highest} {
		for version := 1; version <= 40; version++ {
			v, err := newQRCodeVersion(version, level)
			if err != nil {
				t.Fatal(err)
			}

			data := bitset.New()
			data.AppendNumBools(v.numDataBits(), true)

			m := newMatrixBuilder(v)
			m.addFunctionPatterns()

			encoded, err := encodeBlocks(data, v, m.symbol.numFreeModules())
			if err != nil {
				t.Fatalf("version %d-%s: %v", version, level, err)
			}

			if encoded.Len() != v.numBits() {
				t.Errorf("version %d-%s: %d bits, want %d", version, level, encoded.Len(), v.numBits())
			}
		}
	}
}

func TestRemainderBitsShapeMismatch(t *testing.T) {
	v, err := newQRCodeVersion(2, Low)
	if err != nil {
		t.Fatal(err)
	}

	data := bitset.New()
	data.AppendNumBools(v.numDataBits(), false)

	_, err = encodeBlocks(data, v, v.numBits()+1)
	if !errors.Is(err, ErrShapeMismatch) || !IsInternal(err) {
		t.Errorf("err = %v, want ErrShapeMismatch", err)
	}
}
