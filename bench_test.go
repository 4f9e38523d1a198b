// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstate_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/creachadair/jstate"
	"github.com/creachadair/jstate/ast"
)

func BenchmarkParser(b *testing.B) {
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		b.Fatalf("Reading test input: %v", err)
	}
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Parser", func(b *testing.B) {
		var p jstate.Parser
		for i := 0; i < b.N; i++ {
			if err := p.Parse(input, jstate.HandlerFuncs{}); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("ParseReader", func(b *testing.B) {
		var p jstate.Parser
		for i := 0; i < b.N; i++ {
			if err := p.ParseReader(bytes.NewReader(input), jstate.HandlerFuncs{}); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}

func BenchmarkTree(b *testing.B) {
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		b.Fatalf("Reading test input: %v", err)
	}

	b.Run("Unmarshal", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var v any
			if err := json.Unmarshal(input, &v); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Parse", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := ast.Parse(input); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}

func BenchmarkFormat(b *testing.B) {
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		b.Fatalf("Reading test input: %v", err)
	}

	b.Run("Compact", func(b *testing.B) {
		var buf bytes.Buffer
		for i := 0; i < b.N; i++ {
			buf.Reset()
			if err := json.Compact(&buf, input); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Format", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := jstate.Format(input); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}

func TestInputFile(t *testing.T) {
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		t.Fatalf("Reading test input: %v", err)
	}
	if !json.Valid(input) {
		t.Fatal("Test input is not valid JSON")
	}
	got, err := jstate.Format(input)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	var want bytes.Buffer
	if err := json.Compact(&want, input); err != nil {
		t.Fatalf("Compact failed: %v", err)
	}
	if !bytes.Equal(got, want.Bytes()) {
		t.Errorf("Format does not match json.Compact:\ngot:  %.200s\nwant: %.200s", got, want.Bytes())
	}
}
