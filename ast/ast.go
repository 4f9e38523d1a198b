// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a tree of JSON values, a handler that constructs trees
// from parser events, and functions to encode trees as JSON text.
package ast

import "slices"

// A Kind identifies the type of a Value.
type Kind byte

// Constants defining the kinds of values.
const (
	NullKind Kind = iota
	BoolKind
	IntKind
	DoubleKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindStr = [...]string{
	NullKind: "null", BoolKind: "bool", IntKind: "int", DoubleKind: "double",
	StringKind: "string", ArrayKind: "array", ObjectKind: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return "invalid kind"
}

// A Value is an arbitrary JSON value.
type Value interface{ Kind() Kind }

// Null represents the null constant.
type Null struct{}

// Kind satisfies the Value interface.
func (Null) Kind() Kind { return NullKind }

// A Bool is a Boolean constant, true or false.
type Bool bool

// Kind satisfies the Value interface.
func (Bool) Kind() Kind { return BoolKind }

// An Int is an integer value that fits in 32 bits.
type Int int32

// Kind satisfies the Value interface.
func (Int) Kind() Kind { return IntKind }

// A Double is a floating-point value.
type Double float64

// Kind satisfies the Value interface.
func (Double) Kind() Kind { return DoubleKind }

// A String is a string value.
type String string

// Kind satisfies the Value interface.
func (String) Kind() Kind { return StringKind }

// An Array is a sequence of values.
type Array struct {
	Values []Value
}

// NewArray constructs an array containing the given values.
func NewArray(vs ...Value) *Array { return &Array{Values: vs} }

// Kind satisfies the Value interface.
func (*Array) Kind() Kind { return ArrayKind }

// Len returns the number of elements in a. A nil *Array is empty.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Values)
}

// Append adds vs to the end of a.
func (a *Array) Append(vs ...Value) { a.Values = append(a.Values, vs...) }

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, v Value) Member { return Member{Key: key, Value: v} }

// An Object is a collection of key-value members with distinct keys. Members
// are kept in the order their keys were first added.
type Object struct {
	members []Member
	index   map[string]int // key → offset in members
}

// NewObject constructs an object containing the given members. If multiple
// members have the same key, the last one wins.
func NewObject(ms ...Member) *Object {
	o := new(Object)
	for _, m := range ms {
		o.Set(m.Key, m.Value)
	}
	return o
}

// Kind satisfies the Value interface.
func (*Object) Kind() Kind { return ObjectKind }

// Len returns the number of members in o. A nil *Object is empty.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Get returns the value of the member of o with the given key, and reports
// whether it was found.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	if i, ok := o.index[key]; ok {
		return o.members[i].Value, true
	}
	return nil, false
}

// Set sets the value of the member of o with the given key. If o already has
// a member with that key, its value is replaced in place.
func (o *Object) Set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	if o.index == nil {
		o.index = make(map[string]int)
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

// Delete removes the member of o with the given key, and reports whether it
// was present.
func (o *Object) Delete(key string) bool {
	if o == nil {
		return false
	}
	i, ok := o.index[key]
	if !ok {
		return false
	}
	o.members = slices.Delete(o.members, i, i+1)
	delete(o.index, key)
	for j := i; j < len(o.members); j++ {
		o.index[o.members[j].Key] = j
	}
	return true
}

// Keys returns the keys of o in order.
func (o *Object) Keys() []string {
	keys := make([]string, o.Len())
	for i, m := range o.Members() {
		keys[i] = m.Key
	}
	return keys
}

// Members returns the members of o in order. The caller must not modify the
// slice; use Set and Delete to change o.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	return o.members
}
