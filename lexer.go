// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstate

// A tstate is a state of the character-level lexer.
type tstate byte

// Constants defining the lexer states.
const (
	tOK tstate = iota // between tokens; the only accepting state

	tST // inside a string
	tES // after a backslash in a string
	tU1 // \u, awaiting hex digit 1
	tU2 // \u, awaiting hex digit 2
	tU3 // \u, awaiting hex digit 3
	tU4 // \u, awaiting hex digit 4

	tMI // after a leading minus
	tZE // after a leading zero
	tIT // integer digits
	tFX // after a decimal point, before any fraction digit
	tFT // fraction digits
	tE1 // after e or E
	tE2 // after the exponent sign
	tE3 // exponent digits

	tT1 // t
	tT2 // tr
	tT3 // tru
	tT4 // true
	tF1 // f
	tF2 // fa
	tF3 // fal
	tF4 // fals
	tF5 // false
	tN1 // n
	tN2 // nu
	tN3 // nul
	tN4 // null

	tC1 // after "/"
	tC2 // inside a block comment
	tC3 // "*" inside a block comment
	tCL // inside a line comment

	numTStates

	tReject tstate = 0xff // no valid transition
)

var tstateStr = [...]string{
	tOK: "OK", tST: "ST", tES: "ES", tU1: "U1", tU2: "U2", tU3: "U3", tU4: "U4",
	tMI: "MI", tZE: "ZE", tIT: "IT", tFX: "FX", tFT: "FT", tE1: "E1", tE2: "E2", tE3: "E3",
	tT1: "T1", tT2: "T2", tT3: "T3", tT4: "T4",
	tF1: "F1", tF2: "F2", tF3: "F3", tF4: "F4", tF5: "F5",
	tN1: "N1", tN2: "N2", tN3: "N3", tN4: "N4",
	tC1: "C1", tC2: "C2", tC3: "C3", tCL: "CL",
}

func (s tstate) String() string {
	if int(s) < len(tstateStr) {
		return tstateStr[s]
	}
	return "reject"
}

// An action describes what a lexer transition completed, if anything.
type action byte

// Constants defining the lexer actions.
const (
	aNone        action = iota
	aBegin              // a literal begins at this byte
	aArrayBegin         // [
	aArrayEnd           // ]
	aObjectBegin        // {
	aObjectEnd          // }
	aColon              // :
	aComma              // ,
	aString             // closing quote of a string

	// The following actions report a literal that ended at the previous
	// byte. The current byte is not part of the literal, and must be
	// dispatched again from the OK state.
	aInteger
	aFloat
	aNull
	aTrue
	aFalse
)

// word reports the grammar word completed by a, if any.
func (a action) word() (Word, bool) {
	switch a {
	case aArrayBegin:
		return ArrayBegin, true
	case aArrayEnd:
		return ArrayEnd, true
	case aObjectBegin:
		return ObjectBegin, true
	case aObjectEnd:
		return ObjectEnd, true
	case aColon:
		return Colon, true
	case aComma:
		return Comma, true
	case aString:
		return String, true
	case aInteger:
		return Integer, true
	case aFloat:
		return Float, true
	case aNull:
		return Null, true
	case aTrue:
		return True, true
	case aFalse:
		return False, true
	}
	return 0, false
}

// retracts reports whether a completes a literal that does not include the
// byte that triggered it.
func (a action) retracts() bool { return a >= aInteger }

// A transition is a single entry of the lexer table.
type transition struct {
	next tstate
	act  action
}

// tokenTable is the lexer transition table, indexed by the current state and
// the class of the next byte. Entries not set by buildTokenTable have next
// state tReject.
var tokenTable = buildTokenTable()

// delimiters are the classes that may immediately follow a number or keyword
// without being part of it.
var delimiters = []class{cSpace, cWhite, cNewline, cRBrace, cRSquare, cComma, cSlash, cEnd}

var (
	digits    = []class{cZero, cDigit}
	hexDigits = []class{cZero, cDigit, cLowA, cLowB, cLowC, cLowD, cLowE, cLowF, cUpperHex, cUpperE}
	exponents = []class{cLowE, cUpperE}
)

func buildTokenTable() (t [numTStates][numClasses]transition) {
	for s := range t {
		for c := range t[s] {
			t[s][c] = transition{next: tReject}
		}
	}
	set := func(s tstate, next tstate, act action, cs ...class) {
		for _, c := range cs {
			t[s][c] = transition{next: next, act: act}
		}
	}

	// Between tokens.
	set(tOK, tOK, aNone, cSpace, cWhite, cNewline, cEnd)
	set(tOK, tOK, aObjectBegin, cLBrace)
	set(tOK, tOK, aObjectEnd, cRBrace)
	set(tOK, tOK, aArrayBegin, cLSquare)
	set(tOK, tOK, aArrayEnd, cRSquare)
	set(tOK, tOK, aColon, cColon)
	set(tOK, tOK, aComma, cComma)
	set(tOK, tST, aBegin, cQuote)
	set(tOK, tMI, aBegin, cMinus)
	set(tOK, tZE, aBegin, cZero)
	set(tOK, tIT, aBegin, cDigit)
	set(tOK, tT1, aBegin, cLowT)
	set(tOK, tF1, aBegin, cLowF)
	set(tOK, tN1, aBegin, cLowN)
	set(tOK, tC1, aNone, cSlash)

	// Strings. Raw control characters (including tab and newline) are not
	// permitted inside a string.
	for c := class(0); c < numClasses; c++ {
		switch c {
		case cWhite, cNewline, cInvalid, cEnd:
			// reject
		case cQuote:
			set(tST, tOK, aString, c)
		case cBackslash:
			set(tST, tES, aNone, c)
		default:
			set(tST, tST, aNone, c)
		}
	}
	set(tES, tST, aNone, cQuote, cBackslash, cSlash, cLowB, cLowF, cLowN, cLowR, cLowT)
	set(tES, tU1, aNone, cLowU)
	set(tU1, tU2, aNone, hexDigits...)
	set(tU2, tU3, aNone, hexDigits...)
	set(tU3, tU4, aNone, hexDigits...)
	set(tU4, tST, aNone, hexDigits...)

	// Numbers.
	set(tMI, tZE, aNone, cZero)
	set(tMI, tIT, aNone, cDigit)
	set(tZE, tOK, aInteger, delimiters...)
	set(tZE, tFX, aNone, cPoint)
	set(tZE, tE1, aNone, exponents...)
	set(tIT, tOK, aInteger, delimiters...)
	set(tIT, tIT, aNone, digits...)
	set(tIT, tFX, aNone, cPoint)
	set(tIT, tE1, aNone, exponents...)
	set(tFX, tFT, aNone, digits...)
	set(tFT, tOK, aFloat, delimiters...)
	set(tFT, tFT, aNone, digits...)
	set(tFT, tE1, aNone, exponents...)
	set(tE1, tE2, aNone, cPlus, cMinus)
	set(tE1, tE3, aNone, digits...)
	set(tE2, tE3, aNone, digits...)
	set(tE3, tOK, aFloat, delimiters...)
	set(tE3, tE3, aNone, digits...)

	// Keywords.
	set(tT1, tT2, aNone, cLowR)
	set(tT2, tT3, aNone, cLowU)
	set(tT3, tT4, aNone, cLowE)
	set(tT4, tOK, aTrue, delimiters...)
	set(tF1, tF2, aNone, cLowA)
	set(tF2, tF3, aNone, cLowL)
	set(tF3, tF4, aNone, cLowS)
	set(tF4, tF5, aNone, cLowE)
	set(tF5, tOK, aFalse, delimiters...)
	set(tN1, tN2, aNone, cLowU)
	set(tN2, tN3, aNone, cLowL)
	set(tN3, tN4, aNone, cLowL)
	set(tN4, tOK, aNull, delimiters...)

	// Comments. Any byte may appear inside a comment, but the input may not
	// end inside a block comment.
	set(tC1, tC2, aNone, cStar)
	set(tC1, tCL, aNone, cSlash)
	for c := class(0); c < numClasses; c++ {
		switch c {
		case cEnd:
			set(tCL, tOK, aNone, c)
		case cStar:
			set(tC2, tC3, aNone, c)
			set(tC3, tC3, aNone, c)
			set(tCL, tCL, aNone, c)
		case cSlash:
			set(tC2, tC2, aNone, c)
			set(tC3, tOK, aNone, c)
			set(tCL, tCL, aNone, c)
		case cNewline:
			set(tC2, tC2, aNone, c)
			set(tC3, tC2, aNone, c)
			set(tCL, tOK, aNone, c)
		default:
			set(tC2, tC2, aNone, c)
			set(tC3, tC2, aNone, c)
			set(tCL, tCL, aNone, c)
		}
	}
	return
}

// A lexer is the character-level state machine. It records the current
// state and the offset where the current lexeme began.
type lexer struct {
	state  tstate
	outset int
}

func (x *lexer) reset() { *x = lexer{} }

// step looks up the transition for c from the current state, without
// applying it.
func (x *lexer) step(c class) transition { return tokenTable[x.state][c] }

// inLexeme reports whether the lexer is inside a literal whose text has not
// yet been decoded.
func (x *lexer) inLexeme() bool {
	switch x.state {
	case tOK, tC1, tC2, tC3, tCL:
		return false
	}
	return true
}

// rejectCode reports the error code for a byte rejected in state s.
func rejectCode(s tstate) Code {
	switch s {
	case tMI, tZE, tIT, tFX, tFT, tE1, tE2, tE3:
		return InvalidNumber
	case tT1, tT2, tT3, tT4, tF1, tF2, tF3, tF4, tF5, tN1, tN2, tN3, tN4:
		return InvalidKeyword
	case tES:
		return InvalidEscapeSequence
	case tU1, tU2, tU3, tU4:
		return InvalidUnicodeSequence
	}
	return InvalidChar
}

// rejectMessage describes a byte of class c rejected in state s.
func rejectMessage(s tstate, c class) string {
	if c == cEnd {
		switch s {
		case tST, tES, tU1, tU2, tU3, tU4:
			return "unterminated string"
		case tC2, tC3:
			return "unterminated comment"
		case tMI, tFX, tE1, tE2:
			return "incomplete number"
		}
		return "unexpected end of input"
	}
	switch rejectCode(s) {
	case InvalidNumber:
		return "invalid " + c.String() + " in number"
	case InvalidKeyword:
		return "invalid " + c.String() + " in keyword"
	case InvalidEscapeSequence:
		return "invalid escape sequence"
	case InvalidUnicodeSequence:
		return "invalid Unicode escape sequence"
	}
	if s == tST {
		return "unescaped " + c.String() + " in string"
	}
	if s == tC1 {
		return "invalid " + c.String() + " after \"/\""
	}
	return "unexpected " + c.String()
}
