// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstate

// A Handler handles events from parsing an input. If a method reports an
// error, parsing stops and that error is returned to the caller unchanged.
// The parser ensures that StartArray and EndArray, and StartTable and
// EndTable, are correctly paired, and that each value inside a table is
// preceded by exactly one call to Key.
//
// Numbers without a fraction or exponent that fit in 32 bits are reported
// through Int; all other numbers are reported through Double.
type Handler interface {
	// Begin a new array.
	StartArray() error

	// Begin a new object.
	StartTable() error

	// End the most-recently-opened array.
	EndArray() error

	// End the most-recently-opened object.
	EndTable() error

	// Report the decoded key of the next member of the current object. Key
	// is called when the colon following the key has been read.
	Key(key string) error

	// Report a null value.
	Null() error

	// Report a true or false value.
	Bool(v bool) error

	// Report an integer value.
	Int(v int32) error

	// Report a floating-point value, or an integer that does not fit in an
	// int32.
	Double(v float64) error

	// Report a decoded string value.
	String(v string) error

	// Flush is called once after a complete value has been parsed without
	// error.
	Flush() error
}

// HandlerFuncs implements the Handler interface by delegating to optional
// callback functions. A method whose callback is nil does nothing and
// reports no error. The zero value accepts every event.
type HandlerFuncs struct {
	OnStartArray func() error
	OnStartTable func() error
	OnEndArray   func() error
	OnEndTable   func() error
	OnKey        func(string) error
	OnNull       func() error
	OnBool       func(bool) error
	OnInt        func(int32) error
	OnDouble     func(float64) error
	OnString     func(string) error
	OnFlush      func() error
}

var _ Handler = HandlerFuncs{}

func call0(f func() error) error {
	if f == nil {
		return nil
	}
	return f()
}

func call1[T any](f func(T) error, v T) error {
	if f == nil {
		return nil
	}
	return f(v)
}

func (h HandlerFuncs) StartArray() error { return call0(h.OnStartArray) }
func (h HandlerFuncs) StartTable() error { return call0(h.OnStartTable) }
func (h HandlerFuncs) EndArray() error { return call0(h.OnEndArray) }
func (h HandlerFuncs) EndTable() error { return call0(h.OnEndTable) }
func (h HandlerFuncs) Key(key string) error { return call1(h.OnKey, key) }
func (h HandlerFuncs) Null() error { return call0(h.OnNull) }
func (h HandlerFuncs) Bool(v bool) error { return call1(h.OnBool, v) }
func (h HandlerFuncs) Int(v int32) error { return call1(h.OnInt, v) }
func (h HandlerFuncs) Double(v float64) error { return call1(h.OnDouble, v) }
func (h HandlerFuncs) String(v string) error { return call1(h.OnString, v) }
func (h HandlerFuncs) Flush() error { return call0(h.OnFlush) }
