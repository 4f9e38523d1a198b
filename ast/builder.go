// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"io"

	"github.com/creachadair/jstate"
)

// Parse parses data as a single JSON value and returns its syntax tree.
func Parse(data []byte) (Value, error) { return ParseWith(new(jstate.Parser), data) }

// ParseWith parses data as a single JSON value using p, and returns its
// syntax tree.
func ParseWith(p *jstate.Parser, data []byte) (Value, error) {
	var b TreeBuilder
	if err := p.Parse(data, &b); err != nil {
		return nil, err
	}
	return b.Result(), nil
}

// ParseReader parses a single JSON value read from r and returns its syntax
// tree.
func ParseReader(r io.Reader) (Value, error) {
	var b TreeBuilder
	if err := new(jstate.Parser).ParseReader(r, &b); err != nil {
		return nil, err
	}
	return b.Result(), nil
}

// ParseAll parses and returns the JSON values concatenated in data. In case
// of error, any complete values already parsed are returned along with the
// error.
func ParseAll(data []byte) ([]Value, error) {
	var p jstate.Parser
	var b TreeBuilder
	var vs []Value
	for {
		n, err := p.ParseOne(data, &b)
		if err == io.EOF {
			return vs, nil
		} else if err != nil {
			return vs, err
		}
		vs = append(vs, b.Result())
		b.Reset()
		data = data[n:]
	}
}

// MustParse parses data as a single JSON value and returns its syntax tree.
// It panics if data is not valid. It is intended for use in tests and for
// initializing variables from constant text.
func MustParse(data string) Value {
	v, err := Parse([]byte(data))
	if err != nil {
		panic(err)
	}
	return v
}

// A TreeBuilder implements the jstate.Handler interface to construct a tree
// of values from parser events. After a successful parse, Result returns the
// root of the tree. A TreeBuilder may be reused after calling Reset.
type TreeBuilder struct {
	root Value
	stk  []frame
}

// A frame is an open array or object, and the pending key of an object.
type frame struct {
	v   Value
	key string
}

var _ jstate.Handler = (*TreeBuilder)(nil)

// Result returns the most recent complete value, or nil if there is none.
func (b *TreeBuilder) Result() Value {
	if len(b.stk) != 0 {
		return nil
	}
	return b.root
}

// Reset discards the state of b.
func (b *TreeBuilder) Reset() {
	b.root = nil
	b.stk = b.stk[:0]
}

// add adds v to the innermost open container, or makes it the root.
func (b *TreeBuilder) add(v Value) error {
	if len(b.stk) == 0 {
		if b.root != nil {
			return errors.New("multiple root values")
		}
		b.root = v
		return nil
	}
	top := &b.stk[len(b.stk)-1]
	switch c := top.v.(type) {
	case *Array:
		c.Values = append(c.Values, v)
	case *Object:
		c.Set(top.key, v)
	}
	return nil
}

func (b *TreeBuilder) push(v Value) error {
	if err := b.add(v); err != nil {
		return err
	}
	b.stk = append(b.stk, frame{v: v})
	return nil
}

func (b *TreeBuilder) pop() error {
	if len(b.stk) == 0 {
		return errors.New("unbalanced end of container")
	}
	b.stk = b.stk[:len(b.stk)-1]
	return nil
}

func (b *TreeBuilder) StartArray() error { return b.push(new(Array)) }
func (b *TreeBuilder) StartTable() error { return b.push(new(Object)) }
func (b *TreeBuilder) EndArray() error { return b.pop() }
func (b *TreeBuilder) EndTable() error { return b.pop() }

func (b *TreeBuilder) Key(key string) error {
	if len(b.stk) == 0 {
		return errors.New("key outside an object")
	}
	b.stk[len(b.stk)-1].key = key
	return nil
}

func (b *TreeBuilder) Null() error { return b.add(Null{}) }
func (b *TreeBuilder) Bool(v bool) error { return b.add(Bool(v)) }
func (b *TreeBuilder) Int(v int32) error { return b.add(Int(v)) }
func (b *TreeBuilder) Double(v float64) error { return b.add(Double(v)) }
func (b *TreeBuilder) String(v string) error { return b.add(String(v)) }
func (b *TreeBuilder) Flush() error { return nil }
