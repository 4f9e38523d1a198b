// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"fmt"
	"strconv"
)

// Recorder is a handler that records a readable description of each event
// it receives. If FailAt is positive, the event with that index (1-based)
// reports the error Err instead of being recorded.
type Recorder struct {
	Events []string
	FailAt int
	Err    error
}

func (r *Recorder) add(s string) error {
	if r.FailAt > 0 && len(r.Events)+1 == r.FailAt {
		r.FailAt = 0
		return r.Err
	}
	r.Events = append(r.Events, s)
	return nil
}

// Reset discards the recorded events.
func (r *Recorder) Reset() { r.Events = nil }

func (r *Recorder) StartArray() error { return r.add("[") }
func (r *Recorder) StartTable() error { return r.add("{") }
func (r *Recorder) EndArray() error { return r.add("]") }
func (r *Recorder) EndTable() error { return r.add("}") }

func (r *Recorder) Key(key string) error { return r.add("key " + strconv.Quote(key)) }
func (r *Recorder) Null() error { return r.add("null") }
func (r *Recorder) Bool(v bool) error { return r.add(strconv.FormatBool(v)) }
func (r *Recorder) Int(v int32) error { return r.add(fmt.Sprintf("int %d", v)) }
func (r *Recorder) String(v string) error {
	return r.add("string " + strconv.Quote(v))
}

func (r *Recorder) Double(v float64) error {
	return r.add("double " + strconv.FormatFloat(v, 'g', -1, 64))
}

func (r *Recorder) Flush() error { return r.add("flush") }
