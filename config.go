package csvview

import "errors"

// ErrConfigConflict is returned by Config.Validate when two structural bytes coincide.
var ErrConfigConflict = errors.New("csvview: delimiter, row delimiter and quote must differ")

// Config controls tokenization. A zero byte selects the default for that position.
type Config struct {
	// Comma is the column delimiter. Default is ','.
	Comma byte
	// RowDelim terminates a row. Default is '\n'.
	RowDelim byte
	// Quote opens and closes a quoted field. Default is '"'.
	Quote byte
	// Escape keeps the following byte from closing a quoted field. Default is '\\'.
	// Setting it equal to Quote disables escaping.
	Escape byte
	// CRLF drops a '\r' preceding a '\n' row delimiter and makes Writer emit "\r\n".
	CRLF bool
}

// DefaultConfig returns the comma, newline, double-quote, backslash dialect.
func DefaultConfig() Config {
	return Config{
		Comma:    ',',
		RowDelim: '\n',
		Quote:    '"',
		Escape:   '\\',
	}
}

// TSV returns DefaultConfig with a tab column delimiter.
func TSV() Config {
	cfg := DefaultConfig()
	cfg.Comma = '\t'
	return cfg
}

// Validate reports ErrConfigConflict when Comma, RowDelim and Quote are not distinct.
// The tokenizer does not call it; overlapping bytes tokenize deterministically but the
// result is rarely useful.
func (c Config) Validate() error {
	c = c.normalize()
	if c.Comma == c.RowDelim || c.Comma == c.Quote || c.RowDelim == c.Quote {
		return ErrConfigConflict
	}
	return nil
}

func (c Config) normalize() Config {
	if c.Comma == 0 {
		c.Comma = ','
	}
	if c.RowDelim == 0 {
		c.RowDelim = '\n'
	}
	if c.Quote == 0 {
		c.Quote = '"'
	}
	if c.Escape == 0 {
		c.Escape = '\\'
	}
	return c
}
