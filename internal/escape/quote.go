// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// asciiEsc gives the escape for each ASCII byte: 0 if the byte is written
// as itself, 'u' for a \u00XX escape, otherwise the character following the
// backslash.
var asciiEsc = func() (t [utf8.RuneSelf]byte) {
	for i := range ' ' {
		t[i] = 'u'
	}
	t['\b'] = 'b'
	t['\f'] = 'f'
	t['\n'] = 'n'
	t['\r'] = 'r'
	t['\t'] = 't'
	t['"'] = '"'
	t['\\'] = '\\'
	t[0x7f] = 'u'
	return
}()

const hexDigit = "0123456789abcdef"

// Quote encodes src as a JSON string, including the enclosing quotation
// marks. If ascii is true, every character outside ASCII is escaped.
func Quote(src mem.RO, ascii bool) []byte {
	return AppendQuote(make([]byte, 0, src.Len()+2), src, ascii)
}

// AppendQuote appends the JSON encoding of src to dst, including the
// enclosing quotation marks, and returns the extended slice.
//
// Control characters, quotation marks and backslashes are always escaped.
// Other bytes are copied as-is unless ascii is true, in which case each
// character outside ASCII is written as one \uXXXX escape per UTF-16 code
// unit. Three-byte sequences encoding a lone surrogate (as produced by
// Unquote) are escaped as that surrogate, so they survive a round trip.
func AppendQuote(dst []byte, src mem.RO, ascii bool) []byte {
	dst = append(dst, '"')
	for src.Len() != 0 {
		b := src.At(0)
		if b < utf8.RuneSelf {
			switch e := asciiEsc[b]; e {
			case 0:
				dst = append(dst, b)
			case 'u':
				dst = appendEscape(dst, uint16(b))
			default:
				dst = append(dst, '\\', e)
			}
			src = src.SliceFrom(1)
			continue
		}

		r, n := decodeUnit(src)
		if !ascii {
			dst = mem.Append(dst, src.SliceTo(n))
		} else if r > 0xffff {
			r1, r2 := utf16.EncodeRune(r)
			dst = appendEscape(appendEscape(dst, uint16(r1)), uint16(r2))
		} else {
			dst = appendEscape(dst, uint16(r))
		}
		src = src.SliceFrom(n)
	}
	return append(dst, '"')
}

// decodeUnit decodes the non-ASCII character at the front of src. Unlike
// utf8.DecodeRune it accepts three-byte encodings of surrogate code points.
// An invalid byte decodes as utf8.RuneError with length 1.
func decodeUnit(src mem.RO) (rune, int) {
	if src.Len() >= 3 {
		b0, b1, b2 := src.At(0), src.At(1), src.At(2)
		if b0&0xf0 == 0xe0 && b1&0xc0 == 0x80 && b2&0xc0 == 0x80 {
			r := rune(b0&0x0f)<<12 | rune(b1&0x3f)<<6 | rune(b2&0x3f)
			if r >= 0x800 {
				return r, 3
			}
		}
	}
	return mem.DecodeRune(src)
}

func appendEscape(dst []byte, v uint16) []byte {
	return append(dst, '\\', 'u',
		hexDigit[v>>12], hexDigit[v>>8&15], hexDigit[v>>4&15], hexDigit[v&15])
}
