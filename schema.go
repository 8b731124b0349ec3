package csvview

import (
	"fmt"
	"go/ast"
	"reflect"
	"strconv"
	"unsafe"

	"go.uber.org/zap"
)

// Kind is the primitive type a record field is projected as.
type Kind uint8

const (
	// KindText stores the field view itself.
	KindText Kind = iota
	// KindInt32 parses the field as a decimal int32.
	KindInt32
	// KindInt64 parses the field as a decimal int64.
	KindInt64
	// KindFloat parses the field as a float64.
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Field describes where one column of a row lands inside a record.
type Field struct {
	Name   string
	Offset uintptr
	Kind   Kind
}

// SchemaError reports a record field that cannot be projected.
type SchemaError struct {
	Record string
	Field  string
	Type   string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("csvview: record type %s is a %s, not a struct", e.Record, e.Type)
	}
	return fmt.Sprintf("csvview: %s.%s has unsupported type %s", e.Record, e.Field, e.Type)
}

// Schema is an ordered list of field descriptors for records of type R whose text columns
// are stored as T. It is read-only once built and may be shared between goroutines.
type Schema[R any, T Text] struct {
	// Strict makes Fill reject numeric fields that are not complete, in-range literals
	// instead of storing the permissively parsed prefix.
	Strict bool

	fields []Field
}

// NewSchema starts an empty schema. Columns are added in row order with the Text, Int32,
// Int64 and Float methods.
func NewSchema[R any, T Text]() *Schema[R, T] {
	return &Schema[R, T]{}
}

// Text appends a column stored as a view into the input.
func (s *Schema[R, T]) Text(field func(*R) *T) *Schema[R, T] {
	return s.add(fieldOffset(field), KindText, unsafe.Sizeof(*new(T)))
}

// Int32 appends a column parsed as an int32.
func (s *Schema[R, T]) Int32(field func(*R) *int32) *Schema[R, T] {
	return s.add(fieldOffset(field), KindInt32, 4)
}

// Int64 appends a column parsed as an int64.
func (s *Schema[R, T]) Int64(field func(*R) *int64) *Schema[R, T] {
	return s.add(fieldOffset(field), KindInt64, 8)
}

// Float appends a column parsed as a float64.
func (s *Schema[R, T]) Float(field func(*R) *float64) *Schema[R, T] {
	return s.add(fieldOffset(field), KindFloat, 8)
}

func (s *Schema[R, T]) add(off uintptr, kind Kind, size uintptr) *Schema[R, T] {
	var probe R
	if off+size > unsafe.Sizeof(probe) {
		panic(fmt.Sprintf("csvview: %s column %d accessor points outside %T", kind, len(s.fields), probe))
	}
	s.fields = append(s.fields, Field{
		Name:   strconv.Itoa(len(s.fields)),
		Offset: off,
		Kind:   kind,
	})
	return s
}

// fieldOffset evaluates the accessor once against a probe record and returns the distance
// of the returned pointer from the start of the record.
func fieldOffset[R, F any](field func(*R) *F) uintptr {
	probe := new(R)
	p := uintptr(unsafe.Pointer(field(probe)))
	base := uintptr(unsafe.Pointer(probe))
	if p < base {
		panic(fmt.Sprintf("csvview: accessor for %T points outside the record", *probe))
	}
	return p - base
}

// Reflect builds a schema from the exported, non-embedded fields of R in declaration order.
// Fields of kind int32, int64 and float64 (named types included) and fields of exactly
// type T are supported. A `csv:"-"` tag skips a field and `csv:"name"` renames it.
func Reflect[R any, T Text]() (*Schema[R, T], error) {
	recType := reflect.TypeFor[R]()
	if recType.Kind() != reflect.Struct {
		return nil, &SchemaError{Record: recType.String(), Type: recType.Kind().String()}
	}
	textType := reflect.TypeFor[T]()

	s := &Schema[R, T]{}
	for i := 0; i < recType.NumField(); i++ {
		p := recType.Field(i)
		if p.Anonymous || !ast.IsExported(p.Name) {
			continue
		}
		name := p.Name
		if tag, ok := p.Tag.Lookup("csv"); ok {
			if tag == "-" {
				Logger().Debug("field skipped by tag", zap.String("record", recType.Name()), zap.String("field", p.Name))
				continue
			}
			if tag != "" {
				name = tag
			}
		}

		var kind Kind
		switch {
		case p.Type == textType:
			kind = KindText
		case p.Type.Kind() == reflect.Int32:
			kind = KindInt32
		case p.Type.Kind() == reflect.Int64:
			kind = KindInt64
		case p.Type.Kind() == reflect.Float64:
			kind = KindFloat
		default:
			return nil, &SchemaError{Record: recType.Name(), Field: p.Name, Type: p.Type.String()}
		}
		s.fields = append(s.fields, Field{Name: name, Offset: p.Offset, Kind: kind})
	}
	return s, nil
}

// MustReflect is like Reflect but panics on error. Intended for package-level schemas.
func MustReflect[R any, T Text]() *Schema[R, T] {
	s, err := Reflect[R, T]()
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of columns the schema consumes per row.
func (s *Schema[R, T]) Len() int {
	return len(s.fields)
}

// Fields returns a copy of the descriptors in row order.
func (s *Schema[R, T]) Fields() []Field {
	return append([]Field(nil), s.fields...)
}
