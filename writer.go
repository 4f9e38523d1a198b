// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstate

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/creachadair/jstate/internal/escape"
	"go4.org/mem"
)

// A WriterOption configures a Writer.
type WriterOption func(*Writer)

// Pretty configures the writer to put each array element and object member
// on its own line, indented by depth (true), or to write compact output with
// no whitespace (false). The default is false.
func Pretty(ok bool) WriterOption { return func(w *Writer) { w.pretty = ok } }

// EscapeNonASCII configures the writer to escape every character outside
// ASCII as \uXXXX (true), or to copy it verbatim (false). The default is
// false.
func EscapeNonASCII(ok bool) WriterOption { return func(w *Writer) { w.ascii = ok } }

// Indent sets the string written once per level of nesting in pretty
// output. The default is a single tab.
func Indent(s string) WriterOption { return func(w *Writer) { w.indent = s } }

// A Writer is a Handler that encodes the events it receives as JSON text.
// Output is buffered until Flush is called, at which point it is written to
// the underlying io.Writer if there is one.
//
// A Writer reports ErrWriterState if the events it receives do not describe
// a well-formed value, and ErrUnsupportedValue for a NaN. After the first
// error, all further calls report the same error.
type Writer struct {
	out    io.Writer
	pretty bool
	ascii  bool
	indent string

	buf   []byte
	stack []wframe
	keyed bool // a key was written and its value is pending
	roots int  // number of top-level values written
	err   error
}

// A wframe records an open container in a Writer.
type wframe struct {
	table bool // an object rather than an array
	n     int  // number of elements or members written
}

var _ Handler = (*Writer)(nil)

// NewWriter constructs a Writer that writes to out when flushed. If out is
// nil, output accumulates until retrieved with Bytes.
func NewWriter(out io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{out: out, indent: "\t"}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Bytes returns the output buffered since the last Flush to an underlying
// io.Writer. The slice is valid until the next call to a method of w.
func (w *Writer) Bytes() []byte { return w.buf }

// Reset discards the state and output of w and directs future output to
// out. Options are not changed.
func (w *Writer) Reset(out io.Writer) {
	w.out = out
	w.buf = w.buf[:0]
	w.stack = w.stack[:0]
	w.keyed = false
	w.roots = 0
	w.err = nil
}

func (w *Writer) fail(err error) error {
	if w.err == nil {
		w.err = err
	}
	return w.err
}

func (w *Writer) stateError(msg string) error {
	return w.fail(fmt.Errorf("%w: %s", ErrWriterState, msg))
}

// value prepares to write a value at the current position.
func (w *Writer) value() error {
	if w.err != nil {
		return w.err
	}
	n := len(w.stack)
	if n == 0 {
		if w.roots > 0 {
			w.buf = append(w.buf, '\n')
		}
		w.roots++
		return nil
	}
	top := &w.stack[n-1]
	if !top.table {
		w.element(top)
		return nil
	}
	if !w.keyed {
		return w.stateError("object value without a key")
	}
	w.keyed = false
	return nil
}

// element writes the separator and indentation before an element of top.
func (w *Writer) element(top *wframe) {
	if top.n > 0 {
		w.buf = append(w.buf, ',')
	}
	top.n++
	w.newline(len(w.stack))
}

func (w *Writer) newline(depth int) {
	if !w.pretty {
		return
	}
	w.buf = append(w.buf, '\n')
	for range depth {
		w.buf = append(w.buf, w.indent...)
	}
}

func (w *Writer) start(table bool, c byte) error {
	if err := w.value(); err != nil {
		return err
	}
	w.buf = append(w.buf, c)
	w.stack = append(w.stack, wframe{table: table})
	return nil
}

func (w *Writer) end(table bool, c byte) error {
	if w.err != nil {
		return w.err
	}
	n := len(w.stack)
	if n == 0 || w.stack[n-1].table != table {
		return w.stateError(fmt.Sprintf("unbalanced %q", c))
	} else if w.keyed {
		return w.stateError("object key without a value")
	}
	top := w.stack[n-1]
	w.stack = w.stack[:n-1]
	if top.n > 0 {
		w.newline(n - 1)
	}
	w.buf = append(w.buf, c)
	return nil
}

// StartArray implements part of the Handler interface.
func (w *Writer) StartArray() error { return w.start(false, '[') }

// StartTable implements part of the Handler interface.
func (w *Writer) StartTable() error { return w.start(true, '{') }

// EndArray implements part of the Handler interface.
func (w *Writer) EndArray() error { return w.end(false, ']') }

// EndTable implements part of the Handler interface.
func (w *Writer) EndTable() error { return w.end(true, '}') }

// Key implements part of the Handler interface.
func (w *Writer) Key(key string) error {
	if w.err != nil {
		return w.err
	}
	n := len(w.stack)
	if n == 0 || !w.stack[n-1].table {
		return w.stateError("key outside an object")
	} else if w.keyed {
		return w.stateError("object key without a value")
	}
	w.element(&w.stack[n-1])
	w.buf = escape.AppendQuote(w.buf, mem.S(key), w.ascii)
	if w.pretty {
		w.buf = append(w.buf, " : "...)
	} else {
		w.buf = append(w.buf, ':')
	}
	w.keyed = true
	return nil
}

// Null implements part of the Handler interface.
func (w *Writer) Null() error {
	if err := w.value(); err != nil {
		return err
	}
	w.buf = append(w.buf, "null"...)
	return nil
}

// Bool implements part of the Handler interface.
func (w *Writer) Bool(v bool) error {
	if err := w.value(); err != nil {
		return err
	}
	w.buf = strconv.AppendBool(w.buf, v)
	return nil
}

// Int implements part of the Handler interface.
func (w *Writer) Int(v int32) error {
	if err := w.value(); err != nil {
		return err
	}
	w.buf = strconv.AppendInt(w.buf, int64(v), 10)
	return nil
}

// Double implements part of the Handler interface. Infinities are written
// as 1e999 and -1e999, which decode to infinities again.
func (w *Writer) Double(v float64) error {
	if math.IsNaN(v) {
		return w.fail(fmt.Errorf("%w: NaN", ErrUnsupportedValue))
	} else if err := w.value(); err != nil {
		return err
	}
	w.buf = appendDouble(w.buf, v)
	return nil
}

// String implements part of the Handler interface.
func (w *Writer) String(v string) error {
	if err := w.value(); err != nil {
		return err
	}
	w.buf = escape.AppendQuote(w.buf, mem.S(v), w.ascii)
	return nil
}

// Flush implements part of the Handler interface. It reports an error if
// any array or object is unclosed. If w has an underlying io.Writer, the
// buffered output is written to it.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	} else if len(w.stack) != 0 {
		return w.stateError("unclosed container")
	}
	if w.out == nil {
		return nil
	}
	_, err := w.out.Write(w.buf)
	w.buf = w.buf[:0]
	if err != nil {
		return w.fail(err)
	}
	return nil
}

// appendDouble appends the shortest encoding of v that decodes to the same
// value. The encoding always includes a decimal point or an exponent, so
// that it decodes as a Double rather than an Int.
func appendDouble(dst []byte, v float64) []byte {
	switch {
	case math.IsInf(v, 1):
		return append(dst, "1e999"...)
	case math.IsInf(v, -1):
		return append(dst, "-1e999"...)
	}
	abs := math.Abs(v)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, v, format, -1, 64)
	if format == 'e' {
		// Clean up e-09 to e-9.
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
		return dst
	}
	for _, c := range dst[start:] {
		if c == '.' {
			return dst
		}
	}
	return append(dst, ".0"...)
}
