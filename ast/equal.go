// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"math"
)

// Len returns the length of v: the number of members of an object, the
// number of elements of an array, or the length in bytes of a string. It
// reports an error for other kinds of value.
func Len(v Value) (Value, error) {
	switch t := v.(type) {
	case *Object:
		return Int(t.Len()), nil
	case *Array:
		return Int(t.Len()), nil
	case String:
		return Int(len(t)), nil
	}
	return nil, errors.New("value has no length")
}

// Equal reports whether a and b are structurally equal. Objects are equal
// if they have the same keys with equal values, regardless of order. Ints
// and Doubles are equal if they have the same numeric value, so that 1 and
// 1.0 compare equal. A nil Value, and a nil *Array or *Object, is equal to
// Null.
func Equal(a, b Value) bool {
	if isNull(a) || isNull(b) {
		return isNull(a) && isNull(b)
	}
	if x, ok := number(a); ok {
		y, ok := number(b)
		return ok && x == y
	}
	switch t := a.(type) {
	case Bool:
		u, ok := b.(Bool)
		return ok && t == u
	case String:
		u, ok := b.(String)
		return ok && t == u
	case *Array:
		u, ok := b.(*Array)
		if !ok || len(t.Values) != len(u.Values) {
			return false
		}
		for i, elt := range t.Values {
			if !Equal(elt, u.Values[i]) {
				return false
			}
		}
		return true
	case *Object:
		u, ok := b.(*Object)
		if !ok || t.Len() != u.Len() {
			return false
		}
		for _, m := range t.members {
			w, ok := u.Get(m.Key)
			if !ok || !Equal(m.Value, w) {
				return false
			}
		}
		return true
	}
	return false
}

// isNull reports whether v encodes as null: Null itself, a nil Value, or a
// nil *Array or *Object.
func isNull(v Value) bool {
	switch t := v.(type) {
	case nil, Null:
		return true
	case *Array:
		return t == nil
	case *Object:
		return t == nil
	}
	return false
}

// number returns the numeric value of v, if it is an Int or a Double.
func number(v Value) (float64, bool) {
	switch t := v.(type) {
	case Int:
		return float64(t), true
	case Double:
		if math.IsNaN(float64(t)) {
			return 0, false
		}
		return float64(t), true
	}
	return 0, false
}
