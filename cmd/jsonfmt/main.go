// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jsonfmt reformats, minifies, or validates JSON text.
//
// Usage:
//
//	jsonfmt [flags] [file ...]
//
// With no files, jsonfmt reads standard input and writes standard output.
// With --write, each named file is rewritten in place. With --check, inputs
// are validated but not rewritten, and the command fails if any input is not
// valid. Multiple files are processed concurrently.
//
// Each --select flag adds one step of a path into the input, and only the
// value at the end of the path is written:
//
//	jsonfmt --select items --select -1 --select name data.json
//
// A step that is an integer selects an array element or object member by
// position (negative positions count from the end); any other step selects
// an object member by key.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "jsonfmt: %v\n", err)
		os.Exit(1)
	}
}
