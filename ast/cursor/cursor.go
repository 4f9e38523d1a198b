// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements navigation through a tree of ast values.
package cursor

import (
	"fmt"

	"github.com/creachadair/jstate/ast"
)

// Path follows path from v as described for Cursor.Down, and returns the
// value reached if it has type T. This is a shorthand for constructing a
// Cursor, calling Down and checking the result.
func Path[T ast.Value](v ast.Value, path ...any) (T, error) {
	c := New(v).Down(path...)
	var zero T
	if err := c.Err(); err != nil {
		return zero, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return zero, fmt.Errorf("found %v, want %T", kindOf(c.Value()), zero)
	}
	return out, nil
}

// A Cursor records a position in the tree rooted at an origin value, along
// with the values on the way to it from the origin.
type Cursor struct {
	org ast.Value
	stk []ast.Value
	err error
}

// New constructs a Cursor positioned at origin.
func New(origin ast.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the value at which c was created.
func (c *Cursor) Origin() ast.Value { return c.org }

// AtOrigin reports whether c is positioned at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value returns the value at the position of c.
func (c *Cursor) Value() ast.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path returns the values from the origin to the position of c, inclusive.
func (c *Cursor) Path() []ast.Value {
	return append([]ast.Value{c.org}, c.stk...)
}

// Err returns the error from the most recent call to Down, or nil.
func (c *Cursor) Err() error { return c.err }

// Up moves c to the parent of its position, unless c is at its origin.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset moves c back to its origin and clears its error.
func (c *Cursor) Reset() {
	c.stk = c.stk[:0]
	c.err = nil
}

// Down moves c along path from its position. Each element of path must be
// one of:
//
//   - a string, selecting the member of an object with that key
//   - an int, selecting an element of an array, or the value of a member of
//     an object, by position; negative offsets count back from the end
//   - a func(ast.Value) (ast.Value, error), whose result becomes the next
//     position
//
// If an element cannot be followed, c stops at the last position reached
// and records an error, which Err reports. It returns c to permit chaining.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			obj, ok := cur.(*ast.Object)
			if !ok {
				return c.setErrorf("key %q: cannot index %v", t, kindOf(cur))
			}
			next, ok := obj.Get(t)
			if !ok {
				return c.setErrorf("key %q not found", t)
			}
			cur = c.push(next)

		case int:
			switch e := cur.(type) {
			case *ast.Array:
				i, ok := fixBound(e.Len(), t)
				if !ok {
					return c.setErrorf("array index %d out of bounds (n=%d)", t, e.Len())
				}
				cur = c.push(e.Values[i])
			case *ast.Object:
				i, ok := fixBound(e.Len(), t)
				if !ok {
					return c.setErrorf("object index %d out of bounds (n=%d)", t, e.Len())
				}
				cur = c.push(e.Members()[i].Value)
			default:
				return c.setErrorf("index %d: cannot index %v", t, kindOf(cur))
			}

		case func(ast.Value) (ast.Value, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v ast.Value) ast.Value {
	c.stk = append(c.stk, v)
	return v
}

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

func kindOf(v ast.Value) string {
	if v == nil {
		return "nil"
	}
	return v.Kind().String()
}
