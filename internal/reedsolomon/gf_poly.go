package reedsolomon

// gfPoly is a polynomial over GF(2^8).
type gfPoly struct {
	// term[i] is the coefficient of x^i.
	term []byte
}

func (e gfPoly) numTerms() int {
	return len(e.term)
}

// gfPolyMultiply returns a * b.
func gfPolyMultiply(a, b gfPoly) gfPoly {
	if a.numTerms() == 0 || b.numTerms() == 0 {
		return gfPoly{}
	}

	result := gfPoly{term: make([]byte, a.numTerms()+b.numTerms()-1)}

	for i, x := range a.term {
		if x == 0 {
			continue
		}

		for j, y := range b.term {
			result.term[i+j] = Add(result.term[i+j], Multiply(x, y))
		}
	}

	return result.normalised()
}

// normalised drops zero coefficients of the highest degrees.
func (e gfPoly) normalised() gfPoly {
	n := e.numTerms()
	for n > 0 && e.term[n-1] == 0 {
		n--
	}

	if n == 0 {
		return gfPoly{}
	}

	return gfPoly{term: e.term[:n]}
}

// exponents returns the coefficients as exponents of α, highest degree
// first, with NoTerm for zero coefficients.
func (e gfPoly) exponents() []int {
	result := make([]int, e.numTerms())

	for i, c := range e.term {
		exp := NoTerm
		if c != 0 {
			exp = logTable[c]
		}

		result[len(result)-1-i] = exp
	}

	return result
}
