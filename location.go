// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstate

import "fmt"

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

func (s Span) String() string { return fmt.Sprintf("%d..%d", s.Pos, s.End) }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A lineTracker maps absolute input offsets to line and column positions as
// the parser advances through the input.
type lineTracker struct {
	line  int // number of newlines seen
	start int // offset of the first byte of the current line
}

// advance records that the byte at offset pos is a newline.
func (t *lineTracker) advance(pos int) {
	t.line++
	t.start = pos + 1
}

// at returns the line and column of offset pos, which must not precede the
// start of the current line.
func (t lineTracker) at(pos int) LineCol {
	return LineCol{Line: t.line + 1, Column: pos - t.start}
}
