package csvview

import (
	"errors"
	"fmt"
)

var (
	// ErrUnterminatedQuote is returned when a quoted field is not closed before the row ends.
	ErrUnterminatedQuote = errors.New("csvview: unterminated quoted field")
)

// ParseError contains location information for tokenizing errors.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

// Error formats the parse error message with the stored line, column, and Err values.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("csvview: parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Unwrap.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NextRow cuts the next row off the front of *buf. The row excludes its delimiter and *buf
// is advanced past both. It returns false once *buf is empty. Rows are split on the raw
// RowDelim byte; quoting is not considered at this level.
func NextRow[T Text](buf *T, cfg Config) (row T, ok bool) {
	if len(*buf) == 0 {
		return row, false
	}
	cfg = cfg.normalize()
	row, *buf, _ = chop(*buf, cfg.RowDelim)
	if cfg.CRLF && cfg.RowDelim == '\n' && len(row) > 0 && row[len(row)-1] == '\r' {
		row = row[:len(row)-1]
	}
	return row, true
}

// nextItem cuts one field off the front of a non-empty row. delimited reports whether a
// column delimiter was consumed after the field. cfg must be normalized.
func nextItem[T Text](row T, cfg Config) (item, rest T, quoted, delimited bool, err error) {
	if row[0] != cfg.Quote {
		item, rest, delimited = chop(row, cfg.Comma)
		return item, rest, false, delimited, nil
	}

	end := closingQuote(row[1:], cfg)
	if end < 0 {
		return item, row, true, false, ErrUnterminatedQuote
	}
	item = row[1 : 1+end]
	rest = row[2+end:]
	if len(rest) > 0 && rest[0] == cfg.Comma {
		rest = rest[1:]
		delimited = true
	}
	return item, rest, true, delimited, nil
}

// closingQuote returns the index of the first unescaped Quote in s, or -1.
func closingQuote[T Text](s T, cfg Config) int {
	escaping := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !escaping && c == cfg.Quote {
			return i
		}
		escaping = !escaping && c == cfg.Escape
	}
	return -1
}

// ReadAll tokenizes every row of data. Fields still alias data; only the slices holding
// them are allocated. The first parse error stops the scan.
func ReadAll[T Text](data T, cfg Config) (records [][]T, err error) {
	rows := NewRows(data, cfg)
	for rows.Next() {
		fields := rows.Fields()
		var record []T
		for fields.Next() {
			record = append(record, fields.Field())
		}
		if err := fields.Err(); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Unescape appends field to dst with every escape byte removed and the byte following it
// kept literally. A trailing lone escape byte is kept.
func Unescape[T Text](dst []byte, field T, cfg Config) []byte {
	esc := cfg.normalize().Escape
	start := 0
	for i := 0; i < len(field); i++ {
		if field[i] != esc || i+1 == len(field) {
			continue
		}
		dst = append(dst, field[start:i]...)
		start = i + 1
		i++
	}
	return append(dst, field[start:]...)
}
