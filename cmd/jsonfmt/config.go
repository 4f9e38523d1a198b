// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/creachadair/jstate"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the command. Settings may be read from a YAML
// file and overridden by flags.
type Config struct {
	Pretty       bool   `yaml:"pretty"`
	ASCII        bool   `yaml:"ascii"`
	Indent       string `yaml:"indent"`
	Comments     bool   `yaml:"comments"`
	JWCC         bool   `yaml:"jwcc"`
	Trailing     bool   `yaml:"trailing"`
	MaxDepth     int    `yaml:"maxDepth"`
	ScratchLimit int    `yaml:"scratchLimit"`
	Workers      int    `yaml:"workers"`
	Write        bool   `yaml:"write"`
	Check        bool   `yaml:"check"`

	Select []string `yaml:"select"`
}

// defaultConfig returns the settings used when neither a flag nor the
// config file specifies a value.
func defaultConfig() Config {
	return Config{
		Indent:   "\t",
		MaxDepth: jstate.DefaultMaxDepth,
		Workers:  runtime.GOMAXPROCS(0),
	}
}

// bindFlags registers flags that store into c.
func (c *Config) bindFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.Pretty, "pretty", "p", c.Pretty, "Indent output, one element per line")
	fs.BoolVar(&c.ASCII, "ascii", c.ASCII, "Escape all non-ASCII characters in strings")
	fs.StringVar(&c.Indent, "indent", c.Indent, "Indentation unit for pretty output")
	fs.BoolVarP(&c.Comments, "comments", "c", c.Comments, "Allow and discard comments in the input")
	fs.BoolVar(&c.JWCC, "jwcc", c.JWCC, "Accept JSON with commas and comments (JWCC) input")
	fs.BoolVar(&c.Trailing, "trailing", c.Trailing, "Ignore input following the first value")
	fs.IntVar(&c.MaxDepth, "max-depth", c.MaxDepth, "Maximum nesting depth of arrays and objects")
	fs.IntVar(&c.ScratchLimit, "scratch-limit", c.ScratchLimit, "Maximum decoded string size in bytes (0 means no limit)")
	fs.IntVarP(&c.Workers, "workers", "j", c.Workers, "Number of files to process concurrently")
	fs.BoolVarP(&c.Write, "write", "w", c.Write, "Rewrite files in place")
	fs.BoolVar(&c.Check, "check", c.Check, "Validate inputs without writing output")
	fs.StringArrayVar(&c.Select, "select", c.Select, "Output only the value at this path (repeat for each step)")
}

// flagNames maps flag names to the field of a Config they set.
var flagNames = map[string]func(dst, src *Config){
	"pretty":        func(d, s *Config) { d.Pretty = s.Pretty },
	"ascii":         func(d, s *Config) { d.ASCII = s.ASCII },
	"indent":        func(d, s *Config) { d.Indent = s.Indent },
	"comments":      func(d, s *Config) { d.Comments = s.Comments },
	"jwcc":          func(d, s *Config) { d.JWCC = s.JWCC },
	"trailing":      func(d, s *Config) { d.Trailing = s.Trailing },
	"max-depth":     func(d, s *Config) { d.MaxDepth = s.MaxDepth },
	"scratch-limit": func(d, s *Config) { d.ScratchLimit = s.ScratchLimit },
	"workers":       func(d, s *Config) { d.Workers = s.Workers },
	"write":         func(d, s *Config) { d.Write = s.Write },
	"check":         func(d, s *Config) { d.Check = s.Check },
	"select":        func(d, s *Config) { d.Select = s.Select },
}

// loadConfig reads settings from the YAML file at path, starting from the
// values in base. Settings whose flags were set explicitly in fs keep their
// values from base.
func loadConfig(path string, base Config, fs *pflag.FlagSet) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parse config %q: %w", path, err)
	}
	fs.Visit(func(f *pflag.Flag) {
		if set, ok := flagNames[f.Name]; ok {
			set(&cfg, &base)
		}
	})
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch {
	case c.Workers <= 0:
		return fmt.Errorf("workers must be positive (got %d)", c.Workers)
	case c.MaxDepth <= 0:
		return fmt.Errorf("max-depth must be positive (got %d)", c.MaxDepth)
	case c.ScratchLimit < 0:
		return fmt.Errorf("scratch-limit must not be negative (got %d)", c.ScratchLimit)
	case c.Write && c.Check:
		return fmt.Errorf("--write and --check are mutually exclusive")
	case c.Write && len(c.Select) != 0:
		return fmt.Errorf("--write and --select are mutually exclusive")
	}
	return nil
}

// newParser returns a parser configured by c.
func (c Config) newParser() *jstate.Parser {
	p := jstate.NewParser()
	p.AllowComments(c.Comments)
	p.AllowTrailingData(c.Trailing)
	p.SetMaxDepth(c.MaxDepth)
	p.SetScratchLimit(c.ScratchLimit)
	return p
}

// selectPath converts c.Select to cursor path elements. A step that parses
// as an integer selects by position; any other step selects an object key.
func (c Config) selectPath() []any {
	path := make([]any, len(c.Select))
	for i, step := range c.Select {
		if n, err := strconv.Atoi(step); err == nil {
			path[i] = n
		} else {
			path[i] = step
		}
	}
	return path
}

// writerOptions returns the output options selected by c.
func (c Config) writerOptions() []jstate.WriterOption {
	return []jstate.WriterOption{
		jstate.Pretty(c.Pretty),
		jstate.EscapeNonASCII(c.ASCII),
		jstate.Indent(c.Indent),
	}
}
