// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstate

import "math"

// A class is the lexical category of a single input byte.
type class byte

// Constants defining the byte classes. Every byte value maps to exactly one
// class; see byteClass.
const (
	cSpace     class = iota // space
	cWhite                  // horizontal tab, carriage return
	cNewline                // line feed
	cLBrace                 // {
	cRBrace                 // }
	cLSquare                // [
	cRSquare                // ]
	cColon                  // :
	cComma                  // ,
	cQuote                  // "
	cBackslash              // \
	cSlash                  // /
	cPlus                   // +
	cMinus                  // -
	cPoint                  // .
	cZero                   // 0
	cDigit                  // 1-9
	cLowA                   // a
	cLowB                   // b
	cLowC                   // c
	cLowD                   // d
	cLowE                   // e
	cLowF                   // f
	cLowL                   // l
	cLowN                   // n
	cLowR                   // r
	cLowS                   // s
	cLowT                   // t
	cLowU                   // u
	cUpperHex               // A B C D F
	cUpperE                 // E
	cStar                   // *
	cOther                  // everything else, including all bytes >= 0x80
	cInvalid                // C0 control characters other than whitespace
	cEnd                    // end of input; never produced by a real byte

	numClasses
)

var classStr = [...]string{
	cSpace: "space", cWhite: "whitespace", cNewline: "newline",
	cLBrace: `"{"`, cRBrace: `"}"`, cLSquare: `"["`, cRSquare: `"]"`,
	cColon: `":"`, cComma: `","`, cQuote: "quote", cBackslash: "backslash",
	cSlash: `"/"`, cPlus: `"+"`, cMinus: `"-"`, cPoint: `"."`,
	cZero: "zero", cDigit: "digit",
	cLowA: "letter", cLowB: "letter", cLowC: "letter", cLowD: "letter",
	cLowE: "letter", cLowF: "letter", cLowL: "letter", cLowN: "letter",
	cLowR: "letter", cLowS: "letter", cLowT: "letter", cLowU: "letter",
	cUpperHex: "letter", cUpperE: "letter",
	cStar: `"*"`, cOther: "character", cInvalid: "control character",
	cEnd: "end of input",
}

func (c class) String() string {
	if int(c) < len(classStr) {
		return classStr[c]
	}
	return "invalid class"
}

// byteClass maps each byte value to its class. The mapping is total.
var byteClass = func() (t [256]class) {
	for i := range t {
		switch {
		case i >= 0x80:
			t[i] = cOther
		case i < ' ':
			t[i] = cInvalid
		default:
			t[i] = cOther
		}
	}
	t[' '] = cSpace
	t['\t'] = cWhite
	t['\r'] = cWhite
	t['\n'] = cNewline
	t['{'] = cLBrace
	t['}'] = cRBrace
	t['['] = cLSquare
	t[']'] = cRSquare
	t[':'] = cColon
	t[','] = cComma
	t['"'] = cQuote
	t['\\'] = cBackslash
	t['/'] = cSlash
	t['+'] = cPlus
	t['-'] = cMinus
	t['.'] = cPoint
	t['0'] = cZero
	for c := '1'; c <= '9'; c++ {
		t[c] = cDigit
	}
	for _, c := range "ABCDF" {
		t[c] = cUpperHex
	}
	t['E'] = cUpperE
	t['*'] = cStar
	t['a'] = cLowA
	t['b'] = cLowB
	t['c'] = cLowC
	t['d'] = cLowD
	t['e'] = cLowE
	t['f'] = cLowF
	t['l'] = cLowL
	t['n'] = cLowN
	t['r'] = cLowR
	t['s'] = cLowS
	t['t'] = cLowT
	t['u'] = cLowU
	return
}()

// maxPow10 is the largest decimal exponent with a finite float64 power.
const maxPow10 = 308

// pow10tab holds 1e0 through 1e308.
var pow10tab = func() (t [maxPow10 + 1]float64) {
	for i := range t {
		t[i] = math.Pow10(i)
	}
	return
}()

// pow10 returns 10 to the power n. For n < -308 it returns 0, and for
// n > 308 it returns +Inf.
func pow10(n int) float64 {
	switch {
	case n < -maxPow10:
		return 0
	case n > maxPow10:
		return math.Inf(1)
	case n >= 0:
		return pow10tab[n]
	default:
		return 1 / pow10tab[-n]
	}
}

// scale returns m × 10^n, with the range rules of pow10. Negative exponents
// divide by the table entry rather than multiplying by its reciprocal, which
// is the same scaling with one rounding step instead of two.
func scale(m float64, n int) float64 {
	switch {
	case n < -maxPow10:
		return math.Copysign(0, m)
	case n > maxPow10:
		if m == 0 {
			return m
		}
		return math.Copysign(math.Inf(1), m)
	case n >= 0:
		return m * pow10tab[n]
	default:
		return m / pow10tab[-n]
	}
}
