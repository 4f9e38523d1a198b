// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstate

import (
	"bufio"
	"bytes"
	"io"
)

// bom is the UTF-8 encoding of a byte order mark.
var bom = []byte{0xef, 0xbb, 0xbf}

// readBlockSize is the initial size of the input window used by
// ParseReader.
const readBlockSize = 32 << 10

// Parser is an event-driven JSON parser. It consumes input one byte at a
// time through a character lexer and a grammar analyzer, and reports the
// structure of the input to a Handler.
//
// A zero Parser is ready for use. A Parser may be reused for any number of
// inputs, and retains its buffers between calls. A Parser must not be used
// by multiple goroutines concurrently.
type Parser struct {
	comments     bool // allow comments
	trailing     bool // stop after the root value
	maxDepth     int
	scratchLimit int

	lex     lexer
	gram    grammar
	lines   lineTracker
	scratch []byte // buffer for decoded strings
	window  []byte // input buffer for ParseReader
	h       Handler

	in   []byte // the current input window
	base int    // offset of in[0] in the complete input
	stop bool   // stop when the root value is complete
}

// NewParser constructs a new Parser with default settings.
func NewParser() *Parser { return new(Parser) }

// AllowComments configures the parser to accept (true) or reject (false)
// line comments beginning with "//" and block comments between "/*" and
// "*/". Comments are rejected by default.
func (p *Parser) AllowComments(ok bool) { p.comments = ok }

// AllowTrailingData configures the parser to stop once the root value is
// complete (true), or to require that only whitespace and comments follow
// the root value (false). The default is false.
func (p *Parser) AllowTrailingData(ok bool) { p.trailing = ok }

// SetMaxDepth sets the maximum nesting depth of arrays and objects. If
// n <= 0, the limit is DefaultMaxDepth.
func (p *Parser) SetMaxDepth(n int) { p.maxDepth = n }

// SetScratchLimit sets the maximum size in bytes of the buffer used to
// decode a string. A string whose encoding is longer than the limit is
// rejected with code OutOfMemory. If n <= 0, the size is not limited.
func (p *Parser) SetScratchLimit(n int) { p.scratchLimit = n }

// Parse parses data as a single JSON value and delivers events to h. In case
// of a syntax error, the returned error has type [*SyntaxError]. If a method
// of h reports an error, parsing stops and that error is returned.
func (p *Parser) Parse(data []byte, h Handler) (err error) {
	defer p.recoverParseError(&err)
	p.begin(h, p.trailing)
	p.setInput(data)

	if _, ok := p.run(0); !ok {
		p.finish()
	}
	p.check(h.Flush())
	return nil
}

// ParseOne parses a single JSON value from the front of data and delivers
// events to h. It returns the number of bytes of data consumed, which
// includes any leading whitespace and comments. ParseOne returns io.EOF if
// data contains no value.
func (p *Parser) ParseOne(data []byte, h Handler) (n int, err error) {
	defer p.recoverParseError(&err)
	p.begin(h, true)
	p.setInput(data)

	n, ok := p.run(0)
	if !ok {
		if n, ok = p.feed(len(p.in), cEnd); !ok {
			if len(p.gram.stack) == 0 {
				return len(data), io.EOF
			}
			p.checkComplete(len(p.in))
		}
	}
	p.check(h.Flush())
	return p.base + n, nil
}

// ParseReader parses a single JSON value read from r and delivers events to
// h. Input is read incrementally into a window that retains only the text
// of an unfinished lexeme, so the input need not fit in memory. An error
// reading from r is returned unchanged.
func (p *Parser) ParseReader(r io.Reader, h Handler) (err error) {
	defer p.recoverParseError(&err)
	p.begin(h, p.trailing)

	br := bufio.NewReader(r)
	if b, _ := br.Peek(len(bom)); bytes.Equal(b, bom) {
		br.Discard(len(bom))
		p.base = len(bom)
	}
	buf := p.window[:0]
	if cap(buf) == 0 {
		buf = make([]byte, 0, readBlockSize)
	}
	defer func() { p.window = buf[:0] }()

	for {
		// Discard processed input, keeping the text of an unfinished lexeme.
		keep := len(buf)
		if p.lex.inLexeme() {
			keep = p.lex.outset
			p.lex.outset = 0
		}
		buf = buf[:copy(buf, buf[keep:])]
		p.base += keep
		if cap(buf)-len(buf) < readBlockSize/2 {
			nb := make([]byte, len(buf), 2*cap(buf))
			copy(nb, buf)
			buf = nb
		}

		start := len(buf)
		nr, rerr := br.Read(buf[start:cap(buf)])
		buf = buf[:start+nr]
		p.in = buf
		if _, ok := p.run(start); ok {
			break
		}
		if rerr == io.EOF {
			p.finish()
			break
		} else if rerr != nil {
			return rerr
		}
	}
	p.check(h.Flush())
	return nil
}

// Valid reports whether data is a single well-formed JSON value.
func Valid(data []byte) bool { return new(Parser).Parse(data, HandlerFuncs{}) == nil }

// Format parses src and returns the value re-encoded by a Writer with the
// given options.
func Format(src []byte, opts ...WriterOption) ([]byte, error) {
	return new(Parser).Format(src, opts...)
}

// Format parses src with the settings of p and returns the value
// re-encoded by a Writer with the given options.
func (p *Parser) Format(src []byte, opts ...WriterOption) ([]byte, error) {
	w := NewWriter(nil, opts...)
	if err := p.Parse(src, w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func (p *Parser) begin(h Handler, stop bool) {
	depth := p.maxDepth
	if depth <= 0 {
		depth = DefaultMaxDepth
	}
	p.lex.reset()
	p.gram.reset(depth)
	p.lines = lineTracker{}
	p.h = h
	p.in = nil
	p.base = 0
	p.stop = stop
}

// setInput sets data as the complete input, skipping a byte order mark.
func (p *Parser) setInput(data []byte) {
	if bytes.HasPrefix(data, bom) {
		p.in = data[len(bom):]
		p.base = len(bom)
	} else {
		p.in = data
	}
}

// run feeds the bytes of p.in starting at offset from. If the parser stops
// at the end of the root value, run returns the offset just past the value
// and true.
func (p *Parser) run(from int) (int, bool) {
	for i := from; i < len(p.in); i++ {
		b := p.in[i]
		if n, ok := p.feed(i, byteClass[b]); ok {
			return n, true
		}
		if b == '\n' {
			p.lines.advance(p.base + i)
		}
	}
	return 0, false
}

// finish feeds the end of input and checks that a complete value was read.
func (p *Parser) finish() {
	end := len(p.in)
	if _, ok := p.feed(end, cEnd); !ok {
		p.checkComplete(end)
	}
}

// checkComplete reports an error if the input ended at offset end before a
// complete value was read.
func (p *Parser) checkComplete(end int) {
	at := Span{Pos: end, End: end}
	if n := len(p.gram.stack); n != 0 {
		switch p.gram.stack[n-1] {
		case wAE, wAN, wAV:
			p.syntaxError(UnbalancedCollection, at, end, "unexpected end of input in array")
		default:
			p.syntaxError(UnbalancedCollection, at, end, "unexpected end of input in object")
		}
	}
	if !p.gram.done {
		p.syntaxError(InvalidChar, at, end, "no value")
	}
}

// feed delivers a byte of class c at offset pos to the lexer, and any word
// it completes to the grammar. If the parser stops at the end of the root
// value, feed returns the offset just past the value and true.
func (p *Parser) feed(pos int, c class) (int, bool) {
	for {
		t := p.lex.step(c)
		if t.next == tReject {
			p.lexError(pos, c)
		} else if t.next == tC1 && !p.comments {
			p.syntaxError(InvalidChar, Span{Pos: pos, End: pos + 1}, pos, "comments are not allowed")
		}
		p.lex.state = t.next

		switch t.act {
		case aNone:
			return 0, false
		case aBegin:
			p.lex.outset = pos
			return 0, false
		}

		w, _ := t.act.word()
		if t.act.retracts() {
			p.word(w, Span{Pos: p.lex.outset, End: pos})
			if p.stop && p.gram.done {
				return pos, true
			}
			continue // dispatch c again from the OK state
		}

		span := Span{Pos: pos, End: pos + 1}
		if t.act == aString {
			span.Pos = p.lex.outset
		}
		p.word(w, span)
		if p.stop && p.gram.done {
			return pos + 1, true
		}
		return 0, false
	}
}

// word delivers w, whose text spans the given offsets of p.in, to the
// grammar and reports it to the handler.
func (p *Parser) word(w Word, span Span) {
	isKey := w == String && p.gram.inKey()
	if err := p.gram.shift(w); err != nil {
		p.syntaxError(err.code, span, span.Pos, err.msg)
	}

	h := p.h
	switch w {
	case ArrayBegin:
		p.check(h.StartArray())
	case ArrayEnd:
		p.check(h.EndArray())
	case ObjectBegin:
		p.check(h.StartTable())
	case ObjectEnd:
		p.check(h.EndTable())
	case Colon:
		p.check(h.Key(p.gram.key))
	case Comma:
		// no event
	case Null:
		p.check(h.Null())
	case True:
		p.check(h.Bool(true))
	case False:
		p.check(h.Bool(false))
	case Integer:
		if v, f, ok := decodeInteger(p.in[span.Pos:span.End]); ok {
			p.check(h.Int(v))
		} else {
			p.check(h.Double(f))
		}
	case Float:
		p.check(h.Double(decodeFloat(p.in[span.Pos:span.End])))
	case String:
		s, err := p.decodeString(p.in[span.Pos+1 : span.End-1])
		if err != nil {
			msg := "invalid string"
			if err == OutOfMemory {
				msg = "string exceeds the scratch buffer limit"
			}
			p.syntaxError(err.(Code), span, span.Pos, msg)
		}
		if isKey {
			p.gram.key = s
		} else {
			p.check(h.String(s))
		}
	}
}

// lexError reports a byte of class c rejected by the lexer at offset pos.
func (p *Parser) lexError(pos int, c class) {
	span := Span{Pos: pos, End: pos + 1}
	if p.lex.inLexeme() {
		span.Pos = p.lex.outset
	}
	if c == cEnd {
		span.End = pos
	}
	p.syntaxError(rejectCode(p.lex.state), span, pos, rejectMessage(p.lex.state, c))
}

// syntaxError aborts the parse with a syntax error at offset pos of p.in.
func (p *Parser) syntaxError(code Code, span Span, pos int, msg string) {
	panic(&SyntaxError{
		Code:     code,
		Offset:   p.base + pos,
		Location: p.lines.at(p.base + pos),
		Span:     Span{Pos: p.base + span.Pos, End: p.base + span.End},
		Message:  msg,
	})
}

// check aborts the parse if a handler reported an error.
func (p *Parser) check(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

func (p *Parser) recoverParseError(errp *error) {
	p.h = nil
	if perr := recover(); perr != nil {
		switch err := perr.(type) {
		case *SyntaxError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(perr)
		}
	}
}
