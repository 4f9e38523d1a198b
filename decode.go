// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstate

import (
	"math"

	"github.com/creachadair/jstate/internal/escape"
	"go4.org/mem"
)

// maxExponent bounds the magnitude of a decoded exponent. Any exponent at
// least this large already scales every mantissa to zero or infinity.
const maxExponent = 1 << 20

// decodeInteger decodes the text of an Integer word. If the value fits in a
// signed 32-bit integer it is returned as an int32 with ok == true.
// Otherwise the value is returned as a float64 with ok == false.
func decodeInteger(text []byte) (v int32, f float64, ok bool) {
	var n uint32
	var minus, promoted bool
	limit := uint32(math.MaxInt32)
	for _, c := range text {
		if c == '-' {
			minus = true
			limit++
			continue
		}
		d := uint32(c - '0')
		if promoted {
			f = f*10 + float64(d)
		} else if n > (limit-d)/10 {
			promoted = true
			f = float64(n)*10 + float64(d)
		} else {
			n = n*10 + d
		}
	}
	switch {
	case promoted && minus:
		return 0, -f, false
	case promoted:
		return 0, f, false
	case minus:
		return int32(-int64(n)), 0, true
	default:
		return int32(n), 0, true
	}
}

// decodeFloat decodes the text of a Float word. The mantissa digits are
// accumulated as for an integer, and the result is scaled by a power of ten
// accounting for the exponent and the number of fraction digits.
func decodeFloat(text []byte) float64 {
	var n uint32
	var m float64
	var minus, promoted bool
	frac := 0
	inFrac := false

	i := 0
mantissa:
	for ; i < len(text); i++ {
		switch c := text[i]; c {
		case '-':
			minus = true
		case '.':
			inFrac = true
		case 'e', 'E':
			break mantissa
		default:
			d := uint32(c - '0')
			if promoted {
				m = m*10 + float64(d)
			} else if n > (math.MaxInt32-d)/10 {
				promoted = true
				m = float64(n)*10 + float64(d)
			} else {
				n = n*10 + d
			}
			if inFrac {
				frac++
			}
		}
	}
	if !promoted {
		m = float64(n)
	}
	if minus {
		m = -m
	}

	exp, expMinus := 0, false
	for i++; i < len(text); i++ {
		switch c := text[i]; c {
		case '-':
			expMinus = true
		case '+':
		default:
			if exp < maxExponent {
				exp = exp*10 + int(c-'0')
			}
		}
	}
	if expMinus {
		exp = -exp
	}
	return scale(m, exp-frac)
}

// decodeString decodes the text of a String word, excluding its quotation
// marks, into the scratch buffer and returns a copy of the result.
func (p *Parser) decodeString(text []byte) (string, error) {
	buf, err := p.reserve(len(text))
	if err != nil {
		return "", err
	}
	buf, err = escape.AppendUnquote(buf, mem.B(text))
	p.scratch = buf[:0]
	switch err {
	case nil:
		return string(buf), nil
	case escape.ErrInvalidUnicode:
		return "", InvalidUnicodeSequence
	default:
		return "", InvalidEscapeSequence
	}
}

// initialScratch is the initial size of the string scratch buffer.
const initialScratch = 1024

// reserve returns the empty scratch buffer with capacity at least n, growing
// it by doubling if necessary. It reports OutOfMemory if the buffer would
// have to grow past the scratch limit.
func (p *Parser) reserve(n int) ([]byte, error) {
	if cap(p.scratch) >= n {
		return p.scratch[:0], nil
	}
	size := max(cap(p.scratch), initialScratch)
	for size < n {
		size *= 2
	}
	if p.scratchLimit > 0 && size > p.scratchLimit {
		if n > p.scratchLimit {
			return nil, OutOfMemory
		}
		size = p.scratchLimit
	}
	p.scratch = make([]byte, 0, size)
	return p.scratch, nil
}
