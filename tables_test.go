// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstate

import (
	"math"
	"strings"
	"testing"
)

func TestByteClass(t *testing.T) {
	for b := range 256 {
		c := byteClass[b]
		if c >= cEnd {
			t.Errorf("Byte %#02x has class %v, which is not a byte class", b, c)
		}
		if b >= 0x80 && c != cOther {
			t.Errorf("Byte %#02x has class %v, want %v", b, c, cOther)
		}
	}
	for _, b := range []byte{0, 1, 0x0b, 0x0c, 0x1f} {
		if c := byteClass[b]; c != cInvalid {
			t.Errorf("Byte %#02x has class %v, want %v", b, c, cInvalid)
		}
	}

	// DEL is not a control character in JSON text, and may appear
	// unescaped in a string.
	if c := byteClass[0x7f]; c != cOther {
		t.Errorf("Byte 0x7f has class %v, want %v", c, cOther)
	}
	if tr := tokenTable[tST][byteClass[0x7f]]; tr.next != tST {
		t.Errorf("String state on 0x7f: got %v, want %v", tr.next, tST)
	}
}

func TestTokenTable(t *testing.T) {
	for s := tstate(0); s < numTStates; s++ {
		for c := class(0); c < numClasses; c++ {
			tr := tokenTable[s][c]
			if tr.next == tReject {
				if tr.act != aNone {
					t.Errorf("Reject %v × %v has action %d", s, c, tr.act)
				}
				continue
			}
			if tr.next >= numTStates {
				t.Errorf("Transition %v × %v has invalid state %d", s, c, tr.next)
			}
			if _, ok := tr.act.word(); ok && tr.next != tOK {
				t.Errorf("Transition %v × %v completes a word but goes to %v", s, c, tr.next)
			}
		}

		// Invalid bytes are rejected everywhere except inside comments.
		switch s {
		case tC2, tC3, tCL:
		default:
			if tr := tokenTable[s][cInvalid]; tr.next != tReject {
				t.Errorf("State %v accepts an invalid byte", s)
			}
		}
	}

	// Only states between lexemes, and states that complete a literal
	// at the end of input, accept the end of input.
	for s := tstate(0); s < numTStates; s++ {
		tr := tokenTable[s][cEnd]
		switch s {
		case tOK, tCL:
			if tr.next != tOK || tr.act != aNone {
				t.Errorf("State %v at end: got %v/%d, want OK", s, tr.next, tr.act)
			}
		case tZE, tIT, tFT, tE3, tT4, tF5, tN4:
			if tr.next != tOK || !tr.act.retracts() {
				t.Errorf("State %v at end: got %v/%d, want a literal", s, tr.next, tr.act)
			}
		default:
			if tr.next != tReject {
				t.Errorf("State %v at end: got %v, want reject", s, tr.next)
			}
		}
	}
}

func TestWordTable(t *testing.T) {
	for s := wstate(0); s < numWStates; s++ {
		for w := Word(0); w < numWords; w++ {
			next := wordTable[s][w]
			switch next {
			case wReject:
				if err := rejectWord(s, w); err == nil || err.code == 0 {
					t.Errorf("No error for %v × %v", s, w)
				}
			case wClose:
				if !w.isCloser() {
					t.Errorf("Word %v closes in state %d", w, s)
				}
			default:
				if next >= numWStates {
					t.Errorf("Transition %d × %v has invalid state %d", s, w, next)
				}
			}
		}
	}
}

func TestGrammarKeys(t *testing.T) {
	var g grammar
	g.reset(DefaultMaxDepth)
	steps := []struct {
		w     Word
		inKey bool // before the word is shifted
	}{
		{ObjectBegin, false},
		{String, true},
		{Colon, false},
		{ArrayBegin, false},
		{String, false},
		{ArrayEnd, false},
		{Comma, false},
		{String, true},
		{Colon, false},
		{Null, false},
		{ObjectEnd, false},
	}
	for i, step := range steps {
		if got := g.inKey(); got != step.inKey {
			t.Errorf("Step %d (%v): inKey is %v, want %v", i+1, step.w, got, step.inKey)
		}
		if err := g.shift(step.w); err != nil {
			t.Fatalf("Step %d (%v): unexpected error: %v", i+1, step.w, err.msg)
		}
	}
	if !g.done || len(g.stack) != 0 {
		t.Errorf("After value: done=%v depth=%d, want done and empty", g.done, len(g.stack))
	}
	if err := g.shift(Integer); err == nil || err.code != TrailingData {
		t.Errorf("Shift after root: got %v, want %v", err, TrailingData)
	}
}

func TestDecodeInteger(t *testing.T) {
	tests := []struct {
		input string
		v     int32
		f     float64
		ok    bool
	}{
		{"0", 0, 0, true},
		{"-0", 0, 0, true},
		{"17", 17, 0, true},
		{"2147483647", math.MaxInt32, 0, true},
		{"-2147483648", math.MinInt32, 0, true},
		{"2147483648", 0, 2147483648, false},
		{"-2147483649", 0, -2147483649, false},
		{"4294967296", 0, 4294967296, false},
		{"100000000000", 0, 1e11, false},
	}
	for _, test := range tests {
		v, f, ok := decodeInteger([]byte(test.input))
		if v != test.v || f != test.f || ok != test.ok {
			t.Errorf("decodeInteger(%q): got (%d, %v, %v), want (%d, %v, %v)",
				test.input, v, f, ok, test.v, test.f, test.ok)
		}
	}
}

func TestDecodeFloat(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0.0", 0},
		{"1.5", 1.5},
		{"-2.25", -2.25},
		{"2.5e+3", 2500},
		{"25E-1", 2.5},
		{"123.456e2", 12345.6},
		{"0.000001", 1e-6},
		{"1e22", 1e22},
		{"1e309", math.Inf(1)},
		{"-1e309", math.Inf(-1)},
		{"0e400", 0},
		{"1e-400", 0},
		{"1e99999999999999999999", math.Inf(1)},
		{"1e-99999999999999999999", 0},
	}
	for _, test := range tests {
		if got := decodeFloat([]byte(test.input)); got != test.want {
			t.Errorf("decodeFloat(%q): got %v, want %v", test.input, got, test.want)
		}
	}

	// A mantissa with more than 308 digits overflows the accumulator, and
	// scaling an infinite mantissa by more than 308 places yields zero.
	long := "1." + strings.Repeat("0", 400)
	if got := decodeFloat([]byte(long)); got != 0 {
		t.Errorf("decodeFloat(1.0...0): got %v, want 0", got)
	}
	if got := decodeFloat([]byte("1" + strings.Repeat("0", 400) + ".0")); !math.IsInf(got, 1) {
		t.Errorf("decodeFloat(10...0.0): got %v, want +Inf", got)
	}

	for _, neg := range []string{"-0.0", "-0e5", "-1e-400"} {
		if got := decodeFloat([]byte(neg)); got != 0 || !math.Signbit(got) {
			t.Errorf("decodeFloat(%q): got %v, want -0", neg, got)
		}
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		m    float64
		n    int
		want float64
	}{
		{3, 0, 3},
		{3, 2, 300},
		{3, -1, 0.3},
		{1, 309, math.Inf(1)},
		{-1, 309, math.Inf(-1)},
		{0, 309, 0},
		{5, -309, 0},
	}
	for _, test := range tests {
		if got := scale(test.m, test.n); got != test.want {
			t.Errorf("scale(%v, %d): got %v, want %v", test.m, test.n, got, test.want)
		}
	}
	if got := scale(-5, -400); got != 0 || !math.Signbit(got) {
		t.Errorf("scale(-5, -400): got %v, want -0", got)
	}
}
