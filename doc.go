// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jstate implements an event-driven JSON parser and writer built on
// table-driven state machines.
//
// # Parsing
//
// The Parser type reads JSON text one byte at a time. Each byte is mapped to
// a class and fed to a character-level lexer, whose transitions assemble
// lexemes (strings, numbers, keywords and punctuation). Each completed lexeme
// is a Word, which is fed to a grammar analyzer that tracks the nesting of
// arrays and objects on a stack. Both machines are driven by static tables.
//
// Construct a Parser and call its Parse method with a Handler:
//
//	var p jstate.Parser
//	if err := p.Parse(input, handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// Parse returns nil if the input was a single well-formed value. In case of a
// syntax error, the error has concrete type *jstate.SyntaxError, and wraps a
// Code that classifies the error:
//
//	if errors.Is(err, jstate.InvalidNumber) { ... }
//
// To parse a sequence of values from the front of an input, call ParseOne,
// which reports the number of bytes consumed. ParseOne returns io.EOF if no
// further values are available. To parse input from an io.Reader without
// reading it all into memory, call ParseReader.
//
// # Handlers
//
// The Handler interface accepts events from a Parser. The methods of a
// handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | StartTable, EndTable      | { ... }
//	array      | StartArray, EndArray      | [ ... ]
//	member     | Key                       | "key": value
//	value      | Null, Bool, Int, Double,  | null, true, false, number, string
//	           | String                    |
//	--         | Flush                     | end of a complete value
//
// Strings and keys are delivered decoded. Numbers that have no fraction or
// exponent and fit in 32 bits are delivered as Int; all others as Double.
//
// # Writing
//
// The Writer type is a Handler that encodes the events it receives as JSON
// text, either compact or indented. A Parser driving a Writer reformats its
// input without building a tree (see Format). The ast package provides a
// tree of values that can be built from parser events and written back out.
package jstate
