// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstate

import (
	"errors"
	"strings"

	"github.com/creachadair/jstate/internal/escape"
	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.Quote(mem.S(src), false)) }

// QuoteASCII is as Quote, but also escapes every character outside ASCII.
func QuoteASCII(src string) string { return string(escape.Quote(mem.S(src), true)) }

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Unquote reports InvalidEscapeSequence or InvalidUnicodeSequence for a
// malformed escape.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", errors.New("missing quotations")
	}
	dec, err := escape.Unquote(mem.S(src[1 : len(src)-1]))
	switch err {
	case nil:
		return string(dec), nil
	case escape.ErrInvalidUnicode:
		return "", InvalidUnicodeSequence
	default:
		return "", InvalidEscapeSequence
	}
}
