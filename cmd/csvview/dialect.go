package main

import (
	"fmt"
	"strings"

	"github.com/oleg578/csvview"
)

// dialectOptions holds the raw dialect flag values before they are turned into a csvview.Config.
type dialectOptions struct {
	Comma    string
	RowDelim string
	Quote    string
	Escape   string
	TSV      bool
	CRLF     bool
}

var namedBytes = map[string]byte{
	"tab":       '\t',
	"comma":     ',',
	"semicolon": ';',
	"pipe":      '|',
	"space":     ' ',
	"newline":   '\n',
	"nl":        '\n',
	"cr":        '\r',
	"\\t":       '\t',
	"\\n":       '\n',
	"\\r":       '\r',
	"\\\\":      '\\',
	"\\0":       0,
}

// parseByte converts a flag value into a single delimiter byte.
func parseByte(name, value string) (byte, error) {
	if b, ok := namedBytes[strings.ToLower(value)]; ok {
		return b, nil
	}
	if len(value) == 1 {
		return value[0], nil
	}
	return 0, fmt.Errorf("--%s: %q is not a single byte", name, value)
}

func (o dialectOptions) config() (csvview.Config, error) {
	var (
		cfg csvview.Config
		err error
	)
	if cfg.Comma, err = parseByte("comma", o.Comma); err != nil {
		return cfg, err
	}
	if cfg.RowDelim, err = parseByte("row-delim", o.RowDelim); err != nil {
		return cfg, err
	}
	if cfg.Quote, err = parseByte("quote", o.Quote); err != nil {
		return cfg, err
	}
	if cfg.Escape, err = parseByte("escape", o.Escape); err != nil {
		return cfg, err
	}
	if o.TSV {
		cfg.Comma = '\t'
	}
	cfg.CRLF = o.CRLF
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
