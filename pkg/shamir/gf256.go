// Copyright (c) 2026 Jeremy Hahn
// Copyright (c) 2026 Automate The Things, LLC
//
// This file is part of go-qrvault.
//
// go-qrvault is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package shamir

// GF(256) arithmetic over the AES field.
//
// The field is fixed by the irreducible polynomial x^8 + x^4 + x^3 + x + 1
// (0x11B) with generator 0x03. This constant is an interoperability
// contract: shares produced by one build must reconstruct in any other,
// so it must never change.

// Pre-computed logarithm and exponentiation tables. These make
// multiplication and inversion table lookups instead of polynomial
// arithmetic.
var (
	gfLogTable [256]byte
	gfExpTable [256]byte
)

func init() {
	var x byte = 1
	for i := 0; i < 255; i++ {
		gfExpTable[i] = x
		gfLogTable[x] = byte(i)
		x = gfMultiply(x, 0x03)
	}
	gfExpTable[255] = gfExpTable[0]
}

// gfAdd performs addition in GF(256), which is XOR.
func gfAdd(a, b byte) byte {
	return a ^ b
}

// gfSub performs subtraction in GF(256), also XOR.
func gfSub(a, b byte) byte {
	return a ^ b
}

// gfMul performs multiplication in GF(256) via the log/exp tables.
func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExpTable[(int(gfLogTable[a])+int(gfLogTable[b]))%255]
}

// gfInverse computes the multiplicative inverse in GF(256).
// a must be nonzero; share indices are 1..255 so zero never reaches here.
func gfInverse(a byte) byte {
	if a == 0 {
		panic("shamir: division by zero in GF(256)")
	}
	return gfExpTable[255-gfLogTable[a]]
}

// gfMultiply is peasant multiplication, used only to build the tables.
func gfMultiply(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		highBit := a & 0x80
		a <<= 1
		if highBit != 0 {
			a ^= 0x1B
		}
		b >>= 1
	}
	return p
}

// evaluatePolynomial evaluates a polynomial with the given coefficients
// at point x using Horner's method. coeffs[0] is the constant term.
func evaluatePolynomial(coeffs []byte, x byte) byte {
	result := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		result = gfAdd(gfMul(result, x), coeffs[i])
	}
	return result
}

// interpolateAtZero performs Lagrange interpolation at x=0 over the
// supplied points to recover the polynomial's constant term.
func interpolateAtZero(xs, ys []byte) byte {
	var result byte
	for i := range xs {
		// Basis polynomial l_i(0) = prod_{j != i} xj / (xi - xj).
		// In GF(256), (0 - xj) is just xj.
		var numerator byte = 1
		var denominator byte = 1
		for j := range xs {
			if i == j {
				continue
			}
			numerator = gfMul(numerator, xs[j])
			denominator = gfMul(denominator, gfSub(xs[i], xs[j]))
		}
		basis := gfMul(numerator, gfInverse(denominator))
		result = gfAdd(result, gfMul(ys[i], basis))
	}
	return result
}
