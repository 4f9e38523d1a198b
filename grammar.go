// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstate

// A Word is a grammatical unit of JSON produced by the lexer: a structural
// punctuator or a complete scalar literal.
type Word byte

// Constants defining the grammar words.
const (
	ArrayBegin  Word = iota // [
	ArrayEnd                // ]
	ObjectBegin             // {
	ObjectEnd               // }
	Integer                 // a number without fraction or exponent
	Float                   // a number with a fraction or exponent
	Null                    // null
	True                    // true
	False                   // false
	String                  // a quoted string
	Colon                   // :
	Comma                   // ,

	numWords
)

var wordStr = [...]string{
	ArrayBegin: `"["`, ArrayEnd: `"]"`, ObjectBegin: `"{"`, ObjectEnd: `"}"`,
	Integer: "integer", Float: "number", Null: "null", True: "true", False: "false",
	String: "string", Colon: `":"`, Comma: `","`,
}

func (w Word) String() string {
	if int(w) < len(wordStr) {
		return wordStr[w]
	}
	return "invalid word"
}

// isValue reports whether w begins or is a complete value.
func (w Word) isValue() bool {
	switch w {
	case ArrayEnd, ObjectEnd, Colon, Comma:
		return false
	}
	return true
}

// isCloser reports whether w closes a container.
func (w Word) isCloser() bool { return w == ArrayEnd || w == ObjectEnd }

// A wstate is a state of the grammar analyzer for a single open container.
type wstate byte

// Constants defining the grammar states.
const (
	wOE wstate = iota // object, empty
	wCO               // object, key read, need colon
	wOV               // object, need value
	wON               // object, have value
	wKY               // object, need key
	wAE               // array, empty
	wAN               // array, have value
	wAV               // array, need value

	numWStates

	wClose  wstate = 0xfe // close the container
	wReject wstate = 0xff // no valid transition
)

// wordTable is the grammar transition table, indexed by the state of the
// innermost open container and the next word. A transition on an opening
// word also pushes a new container.
var wordTable = func() [numWStates][numWords]wstate {
	const (
		__ = wReject
		CL = wClose
		OV = wOV
		ON = wON
		CO = wCO
		KY = wKY
		AN = wAN
		AV = wAV
	)
	return [numWStates][numWords]wstate{
		//     [   ]   {   }  int flt nul tru fls str  :   ,
		wOE: {__, __, __, CL, __, __, __, __, __, CO, __, __},
		wCO: {__, __, __, __, __, __, __, __, __, __, OV, __},
		wOV: {ON, __, ON, __, ON, ON, ON, ON, ON, ON, __, __},
		wON: {__, __, __, CL, __, __, __, __, __, __, __, KY},
		wKY: {__, __, __, __, __, __, __, __, __, CO, __, __},
		wAE: {AN, CL, AN, __, AN, AN, AN, AN, AN, AN, __, __},
		wAN: {__, CL, __, __, __, __, __, __, __, __, __, AV},
		wAV: {AN, __, AN, __, AN, AN, AN, AN, AN, AN, __, __},
	}
}()

// DefaultMaxDepth is the default limit on the nesting depth of arrays and
// objects.
const DefaultMaxDepth = 512

// A grammar tracks the nesting structure of the input. The stack holds one
// state per open container, innermost last.
type grammar struct {
	stack    []wstate
	maxDepth int
	key      string // the most recent key, pending a colon
	done     bool   // the root value is complete
}

func (g *grammar) reset(maxDepth int) {
	g.stack = g.stack[:0]
	g.maxDepth = maxDepth
	g.key = ""
	g.done = false
}

// A grammarError describes a word rejected by the grammar.
type grammarError struct {
	code Code
	msg  string
}

// inKey reports whether the innermost container expects a key.
func (g *grammar) inKey() bool {
	if n := len(g.stack); n > 0 {
		top := g.stack[n-1]
		return top == wOE || top == wKY
	}
	return false
}

// shift applies w to the grammar. It reports an error if w is not permitted
// in the current state, in which case the state is unchanged.
func (g *grammar) shift(w Word) *grammarError {
	n := len(g.stack)
	if n == 0 {
		return g.shiftRoot(w)
	}
	top := g.stack[n-1]
	next := wordTable[top][w]
	switch next {
	case wReject:
		return rejectWord(top, w)
	case wClose:
		g.stack = g.stack[:n-1]
		g.done = n == 1
		return nil
	}
	if err := g.push(w); err != nil {
		return err
	}
	g.stack[n-1] = next
	return nil
}

func (g *grammar) shiftRoot(w Word) *grammarError {
	switch {
	case g.done:
		return &grammarError{TrailingData, "unexpected " + w.String() + " after the root value"}
	case w.isCloser():
		return &grammarError{UnbalancedCollection, "unexpected " + w.String() + " with no open container"}
	case !w.isValue():
		return &grammarError{UnbalancedCollection, "unexpected " + w.String() + ", expected a value"}
	}
	if err := g.push(w); err != nil {
		return err
	}
	g.done = len(g.stack) == 0
	return nil
}

// push opens a new container if w is an opening word. It does not modify
// the stack if the depth limit would be exceeded.
func (g *grammar) push(w Word) *grammarError {
	var s wstate
	switch w {
	case ArrayBegin:
		s = wAE
	case ObjectBegin:
		s = wOE
	default:
		return nil
	}
	if len(g.stack) >= g.maxDepth {
		return &grammarError{NestingDepthReached, "nesting depth exceeds limit"}
	}
	g.stack = append(g.stack, s)
	return nil
}

// rejectWord reports the error for w rejected in state s.
func rejectWord(s wstate, w Word) *grammarError {
	switch s {
	case wOE, wKY:
		if w == ArrayEnd {
			return &grammarError{UnbalancedCollection, `"]" does not close an object`}
		}
		return &grammarError{ExpectedKey, "unexpected " + w.String() + ", expected a string key"}
	case wCO:
		return &grammarError{ExpectedColon, "unexpected " + w.String() + ", expected \":\" after key"}
	case wON:
		if w == ArrayEnd {
			return &grammarError{UnbalancedCollection, `"]" does not close an object`}
		}
		return &grammarError{UnbalancedCollection, "unexpected " + w.String() + `, expected "," or "}"`}
	case wAE, wAN:
		if w == ObjectEnd {
			return &grammarError{UnbalancedCollection, `"}" does not close an array`}
		}
		if s == wAN {
			return &grammarError{UnbalancedCollection, "unexpected " + w.String() + `, expected "," or "]"`}
		}
	}
	return &grammarError{UnbalancedCollection, "unexpected " + w.String() + ", expected a value"}
}
