package csvview

import (
	"errors"
	"fmt"
	"unsafe"

	"go.uber.org/zap"
)

// ErrInvalidNumber is returned by strict schemas for numeric fields that do not parse.
var ErrInvalidNumber = errors.New("csvview: invalid numeric field")

// FieldError locates a field that a strict schema rejected.
type FieldError struct {
	Line   int
	Column int
	Index  int
	Name   string
	Kind   Kind
	Err    error
}

func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("csvview: field %d (%s) on line %d, column %d as %s: %v",
		e.Index, e.Name, e.Line, e.Column, e.Kind, e.Err)
}

// Unwrap returns the underlying Err.
func (e *FieldError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Fill pulls one field per descriptor from fields and stores it into rec. It returns the
// number of record fields written. When the row runs out first Fill stops quietly with a
// count below Len and leaves the remaining record fields untouched. The error is the
// cursor's parse error, or a *FieldError from a strict schema.
//
// Text columns alias the input; no bytes are copied and nothing is allocated.
func (s *Schema[R, T]) Fill(rec *R, fields *Fields[T]) (int, error) {
	base := unsafe.Pointer(rec)
	for i := range s.fields {
		d := &s.fields[i]
		if !fields.Next() {
			return i, fields.Err()
		}
		item := fields.Field()
		p := unsafe.Add(base, d.Offset)

		switch d.Kind {
		case KindText:
			*(*T)(p) = item
		case KindInt32:
			v, ok := s.parseInt(item, 32)
			if !ok {
				return i, s.reject(i, fields)
			}
			*(*int32)(p) = int32(v)
		case KindInt64:
			v, ok := s.parseInt(item, 64)
			if !ok {
				return i, s.reject(i, fields)
			}
			*(*int64)(p) = v
		case KindFloat:
			v, ok := s.parseFloat(item)
			if !ok {
				return i, s.reject(i, fields)
			}
			*(*float64)(p) = v
		}
	}
	return len(s.fields), nil
}

// FillRow is Fill over a fresh cursor for row.
func (s *Schema[R, T]) FillRow(rec *R, row T, cfg Config) (int, error) {
	fields := NewFields(row, cfg)
	return s.Fill(rec, &fields)
}

func (s *Schema[R, T]) parseInt(item T, bits uint) (int64, bool) {
	if s.Strict {
		return strictInt(item, int(bits))
	}
	v, _, _ := parseInt(item, bits)
	return v, true
}

func (s *Schema[R, T]) parseFloat(item T) (float64, bool) {
	if s.Strict {
		return strictFloat(item)
	}
	v, _ := parseFloat(item)
	return v, true
}

func (s *Schema[R, T]) reject(i int, fields *Fields[T]) error {
	d := s.fields[i]
	err := &FieldError{
		Line:   fields.line,
		Column: fields.Column(),
		Index:  i,
		Name:   d.Name,
		Kind:   d.Kind,
		Err:    ErrInvalidNumber,
	}
	Logger().Debug("numeric field rejected",
		zap.Int("line", err.Line),
		zap.Int("column", err.Column),
		zap.String("field", d.Name),
		zap.Stringer("kind", d.Kind))
	return err
}
