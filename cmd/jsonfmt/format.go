// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/creachadair/jstate"
	"github.com/creachadair/jstate/ast"
	"github.com/creachadair/jstate/ast/cursor"
	"github.com/panjf2000/ants/v2"
	"github.com/tailscale/hujson"
	"go.uber.org/zap"
)

// format parses data with p and returns its encoding with a trailing
// newline, or nil if c.Check is set.
func (c Config) format(p *jstate.Parser, data []byte) ([]byte, error) {
	if c.JWCC {
		std, err := hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("standardize: %w", err)
		}
		data = std
	}
	if len(c.Select) != 0 {
		return c.formatSelected(p, data)
	}
	if c.Check {
		return nil, p.Parse(data, jstate.HandlerFuncs{})
	}
	out, err := p.Format(data, c.writerOptions()...)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// formatSelected parses data into a tree and encodes the value found at
// c.Select. In check mode only the parse and the path are checked.
func (c Config) formatSelected(p *jstate.Parser, data []byte) ([]byte, error) {
	root, err := ast.ParseWith(p, data)
	if err != nil {
		return nil, err
	}
	cur := cursor.New(root).Down(c.selectPath()...)
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	if c.Check {
		return nil, nil
	}
	out, err := ast.Marshal(cur.Value(), c.writerOptions()...)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// processStream formats the contents of r to w. In plain check mode the
// input is validated as it is read.
func (c Config) processStream(r io.Reader, w io.Writer) error {
	p := c.newParser()
	if c.Check && !c.JWCC && len(c.Select) == 0 {
		return p.ParseReader(r, jstate.HandlerFuncs{})
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	out, err := c.format(p, data)
	if err != nil || out == nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// processFile formats the file at path using p. If c.Write is set the file
// is rewritten when its contents change; otherwise the output is returned.
func (c Config) processFile(p *jstate.Parser, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out, err := c.format(p, data)
	if err != nil || out == nil || !c.Write {
		return out, err
	}
	if bytes.Equal(out, data) {
		return nil, nil
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return nil, os.WriteFile(path, out, fi.Mode().Perm())
}

// processFiles processes the named files concurrently on a worker pool. Each
// task uses its own parser. Output for files that are not rewritten is
// written to w in argument order. It reports an error if any file failed.
func (c Config) processFiles(logger *zap.Logger, paths []string, w io.Writer) error {
	return c.runTasks(logger, paths, w, func(path string) ([]byte, error) {
		return c.processFile(c.newParser(), path)
	})
}

// runTasks calls process for each path on a worker pool of c.Workers, and
// writes the outputs to w in the order of paths. A task that panics is
// counted as a failure of its path.
func (c Config) runTasks(logger *zap.Logger, paths []string, w io.Writer, process func(string) ([]byte, error)) error {
	pool, err := ants.NewPool(c.Workers, ants.WithPanicHandler(func(v any) {
		logger.Error("worker panic", zap.Any("value", v))
	}))
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	type result struct {
		out []byte
		err error
	}
	results := make([]result, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			defer func() {
				if v := recover(); v != nil {
					results[i] = result{err: fmt.Errorf("panic: %v", v)}
					panic(v)
				}
			}()
			out, err := process(path)
			results[i] = result{out: out, err: err}
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			results[i].err = fmt.Errorf("submit: %w", err)
		}
	}
	wg.Wait()

	var nfail int
	for i, r := range results {
		if r.err != nil {
			nfail++
			logger.Error("failed", zap.String("file", paths[i]), zap.Error(r.err))
			continue
		}
		logger.Debug("ok", zap.String("file", paths[i]))
		if r.out != nil {
			if _, err := w.Write(r.out); err != nil {
				return err
			}
		}
	}
	if nfail > 0 {
		return fmt.Errorf("%d of %d files failed", nfail, len(paths))
	}
	return nil
}
