// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"

	"go4.org/mem"
)

// Errors reported by Unquote.
var (
	ErrInvalidEscape  = errors.New("invalid escape sequence")
	ErrInvalidUnicode = errors.New("invalid unicode sequence")
)

// hexValue maps each byte to its value as a hexadecimal digit, or -1 if the
// byte is not a hex digit.
var hexValue = func() (t [256]int8) {
	for i := range t {
		t[i] = -1
	}
	for i := range 10 {
		t['0'+i] = int8(i)
	}
	for i := range 6 {
		t['a'+i] = int8(10 + i)
		t['A'+i] = int8(10 + i)
	}
	return
}()

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
func Unquote(src mem.RO) ([]byte, error) {
	return AppendUnquote(make([]byte, 0, src.Len()), src)
}

// AppendUnquote appends the decoding of src to dst and returns the extended
// slice. The input must have the enclosing double quotation marks already
// removed. The decoded text is never longer than src.
//
// Bytes outside escape sequences are copied verbatim. Each \uXXXX escape is
// encoded on its own as 1 to 3 bytes of UTF-8; surrogate pairs are not
// combined, so a pair decodes as two 3-byte sequences.
func AppendUnquote(dst []byte, src mem.RO) ([]byte, error) {
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dst, src), nil
		}
		dst = mem.Append(dst, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return dst, ErrInvalidEscape
		}

		b := src.At(0)
		src = src.SliceFrom(1)
		switch b {
		case '"', '\\', '/':
			dst = append(dst, b)
		case 'b':
			dst = append(dst, '\b')
		case 'f':
			dst = append(dst, '\f')
		case 'n':
			dst = append(dst, '\n')
		case 'r':
			dst = append(dst, '\r')
		case 't':
			dst = append(dst, '\t')
		case 'u':
			v, ok := parseHex4(src)
			if !ok {
				return dst, ErrInvalidUnicode
			}
			dst = AppendUnit(dst, v)
			src = src.SliceFrom(4)
		default:
			return dst, ErrInvalidEscape
		}
	}
}

// parseHex4 decodes four hexadecimal digits from the front of src.
func parseHex4(src mem.RO) (uint16, bool) {
	if src.Len() < 4 {
		return 0, false
	}
	var v uint16
	for i := range 4 {
		d := hexValue[src.At(i)]
		if d < 0 {
			return 0, false
		}
		v = v<<4 | uint16(d)
	}
	return v, true
}

// AppendUnit appends the UTF-8 style encoding of the 16-bit code unit v to
// dst. Surrogate code units are encoded like any other value in their range.
func AppendUnit(dst []byte, v uint16) []byte {
	switch {
	case v < 0x80:
		return append(dst, byte(v))
	case v < 0x800:
		return append(dst, 0xc0|byte(v>>6), 0x80|byte(v&0x3f))
	default:
		return append(dst, 0xe0|byte(v>>12), 0x80|byte(v>>6)&0x3f, 0x80|byte(v&0x3f))
	}
}
