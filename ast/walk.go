// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"

	"github.com/creachadair/jstate"
	"github.com/creachadair/mds/mapset"
)

// Walk delivers the events describing v to h, followed by a call to Flush.
// A nil Value, or a nil *Array or *Object, is delivered as null.
// It reports jstate.ErrCycle if v contains the same array or object more
// than once, whether or not it is its own ancestor. If a method of h reports
// an error, Walk stops and returns that error.
func Walk(v Value, h jstate.Handler) error {
	w := walker{h: h, seen: mapset.New[Value]()}
	if err := w.walk(v); err != nil {
		return err
	}
	return h.Flush()
}

// Marshal encodes v as JSON text using a jstate.Writer with the given
// options.
func Marshal(v Value, opts ...jstate.WriterOption) ([]byte, error) {
	w := jstate.NewWriter(nil, opts...)
	if err := Walk(v, w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// JSON returns the compact JSON encoding of v, or a description of the error
// if v cannot be encoded.
func JSON(v Value) string {
	data, err := Marshal(v)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return string(data)
}

type walker struct {
	h    jstate.Handler
	seen mapset.Set[Value]
}

// enter records a visit to container c, and reports an error if it has been
// visited before.
func (w walker) enter(c Value) error {
	if w.seen.Has(c) {
		return fmt.Errorf("%w: %v visited more than once", jstate.ErrCycle, c.Kind())
	}
	w.seen.Add(c)
	return nil
}

func (w walker) walk(v Value) error {
	if isNull(v) {
		return w.h.Null()
	}
	switch t := v.(type) {
	case Bool:
		return w.h.Bool(bool(t))
	case Int:
		return w.h.Int(int32(t))
	case Double:
		return w.h.Double(float64(t))
	case String:
		return w.h.String(string(t))
	case *Array:
		if err := w.enter(t); err != nil {
			return err
		} else if err := w.h.StartArray(); err != nil {
			return err
		}
		for _, elt := range t.Values {
			if err := w.walk(elt); err != nil {
				return err
			}
		}
		return w.h.EndArray()
	case *Object:
		if err := w.enter(t); err != nil {
			return err
		} else if err := w.h.StartTable(); err != nil {
			return err
		}
		for _, m := range t.members {
			if err := w.h.Key(m.Key); err != nil {
				return err
			} else if err := w.walk(m.Value); err != nil {
				return err
			}
		}
		return w.h.EndTable()
	default:
		return fmt.Errorf("%w: %T", jstate.ErrUnsupportedValue, v)
	}
}
