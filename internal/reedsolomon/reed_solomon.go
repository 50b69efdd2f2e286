// Package reedsolomon computes Reed-Solomon error correction codewords for
// QR Code symbols.
package reedsolomon

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvariant reports an arithmetic state that correct input can never
// produce. It indicates a defect, not bad input.
var ErrInvariant = errors.New("reed-solomon invariant violated")

// MaxDegree is the highest supported generator polynomial degree.
const MaxDegree = 254

// Generator polynomials, built on first use and never modified afterwards.
var generators [MaxDegree + 1]struct {
	once sync.Once
	poly []int
}

// GeneratorPolynomial returns the product of (x - α^i) for i = 0..degree-1
// as degree+1 exponents of α, highest degree first.
func GeneratorPolynomial(degree int) ([]int, error) {
	if degree < 1 || degree > MaxDegree {
		return nil, fmt.Errorf("generator degree %d out of range 1-%d", degree, MaxDegree)
	}

	g := &generators[degree]
	g.once.Do(func() {
		generator := gfPoly{term: []byte{1}}

		for i := 0; i < degree; i++ {
			// x + α^i; addition and subtraction coincide.
			next := gfPoly{term: []byte{ExponentToInt(i), 1}}
			generator = gfPolyMultiply(generator, next)
		}

		g.poly = generator.exponents()
	})

	result := make([]int, len(g.poly))
	copy(result, g.poly)

	return result, nil
}

// Divide returns the remainder of block·x^d divided by generator, where
// d = len(generator)-1. generator holds exponents, highest degree first,
// and must be monic.
//
// The division runs for exactly len(block) steps. Each step must cancel
// the leading term of the running dividend; anything else is reported as
// ErrInvariant.
func Divide(block []byte, generator []int) ([]byte, error) {
	if len(generator) < 2 {
		return nil, fmt.Errorf("%w: generator has %d terms", ErrInvariant, len(generator))
	}

	degree := len(generator) - 1

	dividend := make([]byte, len(block)+degree)
	copy(dividend, block)

	for step := 0; step < len(block); step++ {
		lead := dividend[step]
		if lead == 0 {
			continue
		}

		scale := logTable[lead]

		for i, exp := range generator {
			if exp == NoTerm {
				continue
			}

			dividend[step+i] ^= ExponentToInt(exp + scale)
		}

		if dividend[step] != 0 {
			return nil, fmt.Errorf("%w: leading term %d left at step %d",
				ErrInvariant, dividend[step], step)
		}
	}

	remainder := make([]byte, degree)
	copy(remainder, dividend[len(block):])

	return remainder, nil
}

// Encode returns numECBytes error correction codewords for data.
func Encode(data []byte, numECBytes int) ([]byte, error) {
	generator, err := GeneratorPolynomial(numECBytes)
	if err != nil {
		return nil, err
	}

	return Divide(data, generator)
}
