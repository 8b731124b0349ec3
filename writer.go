package csvview

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const defaultBufferSize = 1 << 10 // 1024 bytes

var (
	errNilWriter      = errors.New("csvview: writer is nil")
	errWriterNoTarget = errors.New("csvview: writer destination cannot be nil")

	// ErrRowDelimInField is returned by Write for a field containing the row delimiter.
	// Rows are split on the raw delimiter byte, so such a field could not be read back.
	ErrRowDelimInField = errors.New("csvview: field contains the row delimiter")
)

// Writer emits records in a Config dialect that Rows and Fields read back field for field.
// Inside quoted fields every quote and escape byte is prefixed with the escape byte, so
// Unescape recovers the original text. The round trip needs Escape to differ from Quote.
type Writer struct {
	dst *bufio.Writer
	cfg Config

	// AlwaysQuote forces quoting for all fields when enabled.
	AlwaysQuote bool

	err error
}

// NewWriter creates a new Writer with internal buffering tuned for bulk writes.
func NewWriter(w io.Writer, cfg Config) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst: bufio.NewWriterSize(w, defaultBufferSize),
		cfg: cfg.normalize(),
	}
}

// Reset updates the underlying writer while preserving the dialect and flags.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		panic(errNilWriter.Error())
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if w.dst == nil {
		w.dst = bufio.NewWriterSize(dst, defaultBufferSize)
	} else {
		w.dst.Reset(dst)
	}
	w.err = nil
}

// Write emits a single record terminated with the configured row delimiter.
func (w *Writer) Write(record []string) error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	for _, field := range record {
		if strings.IndexByte(field, w.cfg.RowDelim) >= 0 {
			return ErrRowDelimInField
		}
	}

	for i := range record {
		if i > 0 {
			if err := w.dst.WriteByte(w.cfg.Comma); err != nil {
				return w.fail(err)
			}
		}
		// A lone empty field must be quoted or the row would read back with no fields.
		quote := w.AlwaysQuote || (len(record) == 1 && record[i] == "") || w.needsQuote(record[i])
		if err := w.writeField(record[i], quote); err != nil {
			return w.fail(err)
		}
	}

	if w.cfg.CRLF && w.cfg.RowDelim == '\n' {
		if err := w.dst.WriteByte('\r'); err != nil {
			return w.fail(err)
		}
	}
	if err := w.dst.WriteByte(w.cfg.RowDelim); err != nil {
		return w.fail(err)
	}
	return nil
}

// WriteAll writes multiple records, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	if w == nil {
		return errNilWriter
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		return w.fail(err)
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

func (w *Writer) fail(err error) error {
	w.err = err
	return err
}

func (w *Writer) writeField(field string, quote bool) error {
	if !quote {
		_, err := w.dst.WriteString(field)
		return err
	}
	if err := w.dst.WriteByte(w.cfg.Quote); err != nil {
		return err
	}

	start := 0
	for i := 0; i < len(field); i++ {
		if field[i] != w.cfg.Quote && field[i] != w.cfg.Escape {
			continue
		}
		if start < i {
			if _, err := w.dst.WriteString(field[start:i]); err != nil {
				return err
			}
		}
		if _, err := w.dst.Write([]byte{w.cfg.Escape, field[i]}); err != nil {
			return err
		}
		start = i + 1
	}
	if start < len(field) {
		if _, err := w.dst.WriteString(field[start:]); err != nil {
			return err
		}
	}
	return w.dst.WriteByte(w.cfg.Quote)
}

func (w *Writer) needsQuote(field string) bool {
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case w.cfg.Comma, w.cfg.Quote, '\r':
			return true
		}
	}
	return false
}
