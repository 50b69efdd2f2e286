// Package bitset implements an append-only, MSB-first sequence of bits.
//
// The length is tracked to the bit: appending 3 bits to a 5 bit Bitset
// always yields an 8 bit Bitset, regardless of how the storage is laid out.
package bitset

import (
	"fmt"
	"strings"
)

type Bitset struct {
	// The number of bits stored.
	numBits int

	// Storage, bit 0 is the most significant bit of bits[0].
	bits []byte
}

// New returns a Bitset holding the given bits in order.
func New(v ...bool) *Bitset {
	b := &Bitset{}
	b.AppendBools(v...)

	return b
}

// FromString parses a string of '0' and '1' characters.
func FromString(s string) (*Bitset, error) {
	b := &Bitset{}
	b.ensureCapacity(len(s))

	for i, c := range s {
		switch c {
		case '0':
			b.numBits++
		case '1':
			b.set(b.numBits)
			b.numBits++
		default:
			return nil, fmt.Errorf("invalid bit %q at offset %d", c, i)
		}
	}

	return b, nil
}

// Clone returns an independent copy of from.
func Clone(from *Bitset) *Bitset {
	bits := make([]byte, len(from.bits))
	copy(bits, from.bits)

	return &Bitset{numBits: from.numBits, bits: bits}
}

func (b *Bitset) set(index int) {
	b.bits[index/8] |= 0x80 >> uint(index%8)
}

// Substr returns the bits in [start, end).
func (b *Bitset) Substr(start int, end int) (*Bitset, error) {
	if start < 0 || start > end || end > b.numBits {
		return nil, fmt.Errorf("out of range start=%d end=%d numBits=%d", start, end, b.numBits)
	}

	result := &Bitset{}
	result.ensureCapacity(end - start)

	for i := start; i < end; i++ {
		if b.at(i) {
			result.set(result.numBits)
		}

		result.numBits++
	}

	return result, nil
}

// AppendBytes appends each byte as 8 bits.
func (b *Bitset) AppendBytes(data []byte) {
	b.ensureCapacity(len(data) * 8)

	for _, d := range data {
		b.appendValue(uint32(d), 8)
	}
}

// AppendUint32 appends the numBits least significant bits of value, most
// significant first.
func (b *Bitset) AppendUint32(value uint32, numBits int) error {
	if numBits < 0 || numBits > 32 {
		return fmt.Errorf("numBits %d out of range 0-32", numBits)
	}

	b.ensureCapacity(numBits)
	b.appendValue(value, numBits)

	return nil
}

func (b *Bitset) appendValue(value uint32, numBits int) {
	for i := numBits - 1; i >= 0; i-- {
		if value&(1<<uint(i)) != 0 {
			b.set(b.numBits)
		}

		b.numBits++
	}
}

func (b *Bitset) ensureCapacity(numBits int) {
	numBits += b.numBits

	newNumBytes := (numBits + 7) / 8
	if len(b.bits) >= newNumBytes {
		return
	}

	b.bits = append(b.bits, make([]byte, newNumBytes-len(b.bits))...)
}

// Append appends all bits of other.
func (b *Bitset) Append(other *Bitset) {
	b.ensureCapacity(other.numBits)

	for i := 0; i < other.numBits; i++ {
		if other.at(i) {
			b.set(b.numBits)
		}

		b.numBits++
	}
}

func (b *Bitset) AppendBools(bits ...bool) {
	b.ensureCapacity(len(bits))

	for _, v := range bits {
		if v {
			b.set(b.numBits)
		}

		b.numBits++
	}
}

// AppendNumBools appends num copies of value.
func (b *Bitset) AppendNumBools(num int, value bool) {
	if num <= 0 {
		return
	}

	b.ensureCapacity(num)

	for i := 0; i < num; i++ {
		if value {
			b.set(b.numBits)
		}

		b.numBits++
	}
}

func (b *Bitset) Len() int {
	return b.numBits
}

func (b *Bitset) at(index int) bool {
	return b.bits[index/8]&(0x80>>uint(index%8)) != 0
}

// At returns the bit at index.
func (b *Bitset) At(index int) (bool, error) {
	if index < 0 || index >= b.numBits {
		return false, fmt.Errorf("index %d out of range", index)
	}

	return b.at(index), nil
}

// ByteAt returns up to 8 bits starting at index, packed MSB first.
func (b *Bitset) ByteAt(index int) (byte, error) {
	if index < 0 || index >= b.numBits {
		return 0, fmt.Errorf("index %d out of range", index)
	}

	var result byte

	for i := index; i < index+8 && i < b.numBits; i++ {
		result <<= 1

		if b.at(i) {
			result |= 1
		}
	}

	return result, nil
}

// Bytes returns the content as codewords. The length must be a multiple
// of 8.
func (b *Bitset) Bytes() ([]byte, error) {
	if b.numBits%8 != 0 {
		return nil, fmt.Errorf("length %d is not a whole number of bytes", b.numBits)
	}

	result := make([]byte, b.numBits/8)
	copy(result, b.bits)

	return result, nil
}

// String returns the bits as '0' and '1' characters.
func (b *Bitset) String() string {
	var sb strings.Builder

	sb.Grow(b.numBits)

	for i := 0; i < b.numBits; i++ {
		if b.at(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}
