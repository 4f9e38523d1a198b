// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/creachadair/jstate"
	"github.com/creachadair/jstate/ast"
	"github.com/creachadair/jstate/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestWalk(t *testing.T) {
	v := ast.NewObject(
		ast.Field("a", ast.NewArray(ast.Int(1), ast.Double(0.5), nil)),
		ast.Field("b", ast.String("x")),
	)
	var r testutil.Recorder
	if err := ast.Walk(v, &r); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	want := []string{
		"{", `key "a"`, "[", "int 1", "double 0.5", "null", "]",
		`key "b"`, `string "x"`, "}", "flush",
	}
	if diff := cmp.Diff(r.Events, want); diff != "" {
		t.Errorf("Events (-got, +want):\n%s", diff)
	}
}

func TestMarshal(t *testing.T) {
	const input = `{"name":"jstate","tags":["json","parser"],"depth":512,"ratio":0.25,"ok":true,"none":null}`
	v := ast.MustParse(input)

	got, err := ast.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(got) != input {
		t.Errorf("Marshal:\ngot:  %s\nwant: %s", got, input)
	}

	pretty, err := ast.Marshal(v, jstate.Pretty(true), jstate.Indent("  "))
	if err != nil {
		t.Fatalf("Marshal pretty failed: %v", err)
	}
	const wantPretty = `{
  "name" : "jstate",
  "tags" : [
    "json",
    "parser"
  ],
  "depth" : 512,
  "ratio" : 0.25,
  "ok" : true,
  "none" : null
}`
	if diff := diffLines(string(pretty), wantPretty); diff != "" {
		t.Errorf("Marshal pretty (-got, +want):\n%s", diff)
	}
	if back := ast.MustParse(string(pretty)); !ast.Equal(back, v) {
		t.Errorf("Reparse pretty: got %s, want %s", ast.JSON(back), input)
	}
}

func diffLines(got, want string) string {
	return cmp.Diff(strings.Split(got, "\n"), strings.Split(want, "\n"))
}

func TestCycle(t *testing.T) {
	self := ast.NewArray(ast.Int(1))
	self.Append(self)

	obj := ast.NewObject()
	obj.Set("inner", ast.NewArray(obj))

	shared := ast.NewObject(ast.Field("k", ast.Int(1)))
	twice := ast.NewArray(shared, shared)

	for _, v := range []ast.Value{self, obj, twice} {
		if got, err := ast.Marshal(v); !errors.Is(err, jstate.ErrCycle) {
			t.Errorf("Marshal: got (%q, %v), want %v", got, err, jstate.ErrCycle)
		}
	}

	// Equal values in distinct containers are not a cycle.
	distinct := ast.NewArray(ast.NewArray(), ast.NewArray())
	if got, err := ast.Marshal(distinct); err != nil || string(got) != "[[],[]]" {
		t.Errorf("Marshal distinct: got (%q, %v), want [[],[]]", got, err)
	}
}

func TestMarshalNil(t *testing.T) {
	var nilArray *ast.Array
	var nilObject *ast.Object
	tests := []struct {
		input ast.Value
		want  string
	}{
		{nil, "null"},
		{nilArray, "null"},
		{nilObject, "null"},
		{ast.NewArray(nilArray, nilObject, nil), "[null,null,null]"},
		{ast.NewObject(ast.Field("a", nilArray), ast.Field("b", nilArray)), `{"a":null,"b":null}`},
	}
	for _, test := range tests {
		got, err := ast.Marshal(test.input)
		if err != nil {
			t.Errorf("Marshal %#v: unexpected error: %v", test.input, err)
		} else if string(got) != test.want {
			t.Errorf("Marshal %#v: got %s, want %s", test.input, got, test.want)
		}
	}
}

func TestMarshalErrors(t *testing.T) {
	v := ast.NewArray(ast.Double(math.NaN()))
	if _, err := ast.Marshal(v); !errors.Is(err, jstate.ErrUnsupportedValue) {
		t.Errorf("Marshal NaN: got %v, want %v", err, jstate.ErrUnsupportedValue)
	}
	if got := ast.JSON(v); !strings.HasPrefix(got, "<") {
		t.Errorf("JSON of NaN: got %q, want an error description", got)
	}

	errBoom := errors.New("boom")
	r := &testutil.Recorder{FailAt: 3, Err: errBoom}
	if err := ast.Walk(ast.MustParse(`[1,2,3]`), r); err != errBoom {
		t.Errorf("Walk with failing handler: got %v, want %v", err, errBoom)
	}
}

func TestTreeBuilder(t *testing.T) {
	var b ast.TreeBuilder
	h := jstate.Handler(&b)
	steps := []func() error{
		h.StartTable,
		func() error { return h.Key("x") },
		h.StartArray,
		func() error { return h.Double(math.Inf(1)) },
		h.EndArray,
		h.EndTable,
		h.Flush,
	}
	for i, step := range steps {
		if b.Result() != nil && i < len(steps)-2 {
			t.Errorf("Step %d: result available before the value is complete", i+1)
		}
		if err := step(); err != nil {
			t.Fatalf("Step %d: %v", i+1, err)
		}
	}
	got, err := ast.Marshal(b.Result())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"x":[1e999]}`; string(got) != want {
		t.Errorf("Result: got %s, want %s", got, want)
	}

	if err := b.Int(1); err == nil {
		t.Error("Second root: got nil, want error")
	}
	b.Reset()
	if err := b.Int(1); err != nil {
		t.Errorf("Root after Reset: %v", err)
	}
	if err := b.EndArray(); err == nil {
		t.Error("Unbalanced end: got nil, want error")
	}
}
