package reedsolomon

import "fmt"

// GF(2^8) with the QR Code field polynomial x^8 + x^4 + x^3 + x^2 + 1 and
// primitive element α = 2.
const fieldPolynomial = 0x11d

// NoTerm is the exponent used for a zero coefficient. ExponentToInt maps it
// to 0.
const NoTerm = -1

var (
	// expTable[e] = α^e for 0 <= e < 255.
	expTable [255]byte

	// logTable[x] = e such that α^e = x, for x != 0.
	logTable [256]int
)

func init() {
	x := 1

	for e := 0; e < 255; e++ {
		expTable[e] = byte(x)
		logTable[x] = e

		x <<= 1
		if x&0x100 != 0 {
			x ^= fieldPolynomial
		}
	}
}

// IntToExponent returns the discrete logarithm of x, for x in 1..255.
func IntToExponent(x byte) (int, error) {
	if x == 0 {
		return 0, fmt.Errorf("log of zero is undefined")
	}

	return logTable[x], nil
}

// ExponentToInt returns α^e. The exponent is taken modulo 255; NoTerm
// yields 0.
func ExponentToInt(e int) byte {
	if e == NoTerm {
		return 0
	}

	e %= 255
	if e < 0 {
		e += 255
	}

	return expTable[e]
}

// Add returns a + b. Subtraction is the same operation.
func Add(a, b byte) byte {
	return a ^ b
}

// Multiply returns a * b.
func Multiply(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}

	return expTable[(logTable[a]+logTable[b])%255]
}
