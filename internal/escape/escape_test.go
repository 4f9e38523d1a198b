// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/creachadair/jstate/internal/escape"
	"go4.org/mem"
)

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		err   error
	}{
		{"", "", nil},
		{"plain text", "plain text", nil},
		{`a\"b`, `a"b`, nil},
		{`\\\/\b\f\n\r\t`, "\\/\b\f\n\r\t", nil},
		{`\u0041`, "A", nil},
		{`\u00e9`, "é", nil},
		{`\u07ff`, "\xdf\xbf", nil},
		{`\u0800`, "\xe0\xa0\x80", nil},
		{`\uFFFF`, "\xef\xbf\xbf", nil},
		{`\ud83d\ude00`, "\xed\xa0\xbd\xed\xb8\x80", nil},
		{"raw \xff bytes", "raw \xff bytes", nil},

		{`\x`, "", escape.ErrInvalidEscape},
		{`abc\`, "abc", escape.ErrInvalidEscape},
		{`\u12`, "", escape.ErrInvalidUnicode},
		{`\u00zz`, "", escape.ErrInvalidUnicode},
	}
	for _, test := range tests {
		got, err := escape.Unquote(mem.S(test.input))
		if err != test.err {
			t.Errorf("Unquote(%#q): got error %v, want %v", test.input, err, test.err)
		} else if err == nil && string(got) != test.want {
			t.Errorf("Unquote(%#q): got %q, want %q", test.input, got, test.want)
		}
	}
}

func TestAppendUnquote(t *testing.T) {
	buf := make([]byte, 0, 64)
	buf = append(buf, "prefix:"...)
	got, err := escape.AppendUnquote(buf, mem.S(`x\ty`))
	if err != nil {
		t.Fatalf("AppendUnquote: unexpected error: %v", err)
	}
	if want := "prefix:x\ty"; string(got) != want {
		t.Errorf("AppendUnquote: got %q, want %q", got, want)
	}
}

func TestAppendUnit(t *testing.T) {
	tests := []struct {
		v    uint16
		want string
	}{
		{0, "\x00"},
		{0x7f, "\x7f"},
		{0x80, "\xc2\x80"},
		{0x7ff, "\xdf\xbf"},
		{0x800, "\xe0\xa0\x80"},
		{0xd800, "\xed\xa0\x80"},
		{0xffff, "\xef\xbf\xbf"},
	}
	for _, test := range tests {
		if got := string(escape.AppendUnit(nil, test.v)); got != test.want {
			t.Errorf("AppendUnit(%#x): got %q, want %q", test.v, got, test.want)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		ascii bool
		want  string
	}{
		{"", false, `""`},
		{"a\"b\\c/d", false, `"a\"b\\c/d"`},
		{"\x00\x07\x1f\x7f", false, `"\u0000\u0007\u001f\u007f"`},
		{"tab\there", false, `"tab\there"`},
		{"é", false, `"é"`},
		{"é", true, `"\u00e9"`},
		{"€", true, `"\u20ac"`},
		{"😀", true, `"\ud83d\ude00"`},
		{"\xed\xb8\x80", true, `"\ude00"`},
		{"x\xffy", true, `"x\ufffdy"`},
		{"x\xffy", false, "\"x\xffy\""},
	}
	for _, test := range tests {
		if got := string(escape.Quote(mem.S(test.input), test.ascii)); got != test.want {
			t.Errorf("Quote(%q, %v): got %#q, want %#q", test.input, test.ascii, got, test.want)
		}
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	// Every 16-bit code unit survives decoding and ASCII re-encoding.
	for v := 0x20; v <= 0xffff; v += 7 {
		if v == '"' || v == '\\' || v == 0x7f {
			continue
		}
		unit := escape.AppendUnit(nil, uint16(v))
		q := escape.Quote(mem.B(unit), true)
		dec, err := escape.Unquote(mem.B(q[1 : len(q)-1]))
		if err != nil {
			t.Fatalf("Unquote(%s): %v", q, err)
		}
		if string(dec) != string(unit) {
			t.Errorf("Round trip %#04x: got %q, want %q", v, dec, unit)
		}
	}
}
