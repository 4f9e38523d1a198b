// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstate

import (
	"errors"
	"fmt"
)

// A Code classifies a syntax error. Codes satisfy the error interface, so
// that callers may test for a class of error with errors.Is:
//
//	if errors.Is(err, jstate.InvalidNumber) { ... }
type Code byte

// Constants defining the syntax error codes.
const (
	InvalidChar            Code = iota + 1 // a byte that cannot begin or continue any token
	InvalidKeyword                         // a malformed true, false, or null
	InvalidEscapeSequence                  // a backslash escape that is not defined by JSON
	InvalidUnicodeSequence                 // a \u escape without four hex digits
	InvalidNumber                          // a malformed number
	NestingDepthReached                    // arrays and objects nested too deeply
	UnbalancedCollection                   // a value or closer where none is allowed
	ExpectedKey                            // an object member without a string key
	ExpectedColon                          // an object key not followed by a colon
	OutOfMemory                            // a decoded string exceeded the scratch limit
	TrailingData                           // more input after the root value
)

var codeStr = [...]string{
	InvalidChar:            "invalid character",
	InvalidKeyword:         "invalid keyword",
	InvalidEscapeSequence:  "invalid escape sequence",
	InvalidUnicodeSequence: "invalid unicode sequence",
	InvalidNumber:          "invalid number",
	NestingDepthReached:    "nesting depth reached",
	UnbalancedCollection:   "unbalanced collection",
	ExpectedKey:            "expected key",
	ExpectedColon:          "expected colon",
	OutOfMemory:            "out of memory",
	TrailingData:           "trailing data",
}

func (c Code) String() string {
	if int(c) < len(codeStr) && codeStr[c] != "" {
		return codeStr[c]
	}
	return fmt.Sprintf("Code(%d)", byte(c))
}

// Error satisfies the error interface.
func (c Code) Error() string { return c.String() }

// SyntaxError is the concrete type of errors reported by the parser.
type SyntaxError struct {
	Code     Code    // the class of error
	Offset   int     // offset of the offending byte, 0-based
	Location LineCol // line and column of the offending byte
	Span     Span    // the lexeme containing the offending byte
	Message  string
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s: %s", s.Location, s.Code, s.Message)
}

// Unwrap supports error wrapping. A *SyntaxError unwraps to its Code.
func (s *SyntaxError) Unwrap() error { return s.Code }

// Errors reported by a Writer and by tree serialization.
var (
	// ErrCycle is reported when a value tree refers to the same array or
	// object more than once.
	ErrCycle = errors.New("cycle in value")

	// ErrUnsupportedValue is reported for a value that has no JSON encoding,
	// such as a NaN.
	ErrUnsupportedValue = errors.New("unsupported value")

	// ErrWriterState is reported when the events delivered to a Writer do not
	// describe a well-formed value.
	ErrWriterState = errors.New("invalid writer state")
)

// handlerError wraps an error reported by a Handler so that it can be
// distinguished from a syntax error during recovery.
type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }
