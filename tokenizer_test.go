package csvview

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
	"unsafe"
)

func TestNextRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		cfg   Config
		want  []string
	}{
		{
			name:  "terminatedRows",
			input: "one,two\nthree,four\n",
			want:  []string{"one,two", "three,four"},
		},
		{
			name:  "finalRowWithoutTerminator",
			input: "alpha\nbeta",
			want:  []string{"alpha", "beta"},
		},
		{
			name:  "blankRowInMiddle",
			input: "a\n\nb",
			want:  []string{"a", "", "b"},
		},
		{
			name:  "singleTerminator",
			input: "\n",
			want:  []string{""},
		},
		{
			name:  "emptyBuffer",
			input: "",
			want:  nil,
		},
		{
			name:  "carriageReturnKeptByDefault",
			input: "a\r\nb\r\n",
			want:  []string{"a\r", "b\r"},
		},
		{
			name:  "windowsLineEndings",
			input: "a\r\nb\r\nc",
			cfg:   Config{CRLF: true},
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "customRowDelim",
			input: "a,b;c,d",
			cfg:   Config{RowDelim: ';'},
			want:  []string{"a,b", "c,d"},
		},
		{
			name:  "quotesIgnored",
			input: "\"a\nb\"\n",
			want:  []string{"\"a", "b\""},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			buf := tc.input
			var rows []string
			for {
				row, ok := NextRow(&buf, tc.cfg)
				if !ok {
					break
				}
				rows = append(rows, row)
			}
			if !reflect.DeepEqual(rows, tc.want) {
				t.Fatalf("NextRow() rows mismatch:\n got: %#v\nwant: %#v", rows, tc.want)
			}
			if buf != "" {
				t.Fatalf("NextRow() left %q unconsumed", buf)
			}
		})
	}
}

func TestNextRowEmptyLeavesRowUntouched(t *testing.T) {
	t.Parallel()

	buf := []byte{}
	row, ok := NextRow(&buf, DefaultConfig())
	if ok {
		t.Fatalf("NextRow() on empty buffer returned true")
	}
	if row != nil {
		t.Fatalf("NextRow() on empty buffer returned row %q, want nil", row)
	}
}

func TestFieldsNext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		cfg    Config
		want   []string
		quoted []bool
	}{
		{
			name:   "plainFields",
			input:  "one,two,three",
			want:   []string{"one", "two", "three"},
			quoted: []bool{false, false, false},
		},
		{
			name:   "quotedComma",
			input:  `"a,b",c`,
			want:   []string{"a,b", "c"},
			quoted: []bool{true, false},
		},
		{
			name:   "escapedQuoteKeepsEscape",
			input:  `"a\"b",c`,
			want:   []string{`a\"b`, "c"},
			quoted: []bool{true, false},
		},
		{
			name:   "escapedEscapeThenClose",
			input:  `"a\\",b`,
			want:   []string{`a\\`, "b"},
			quoted: []bool{true, false},
		},
		{
			name:   "trailingEmptyField",
			input:  "a,b,",
			want:   []string{"a", "b", ""},
			quoted: []bool{false, false, false},
		},
		{
			name:   "trailingEmptyAfterQuoted",
			input:  `"a",`,
			want:   []string{"a", ""},
			quoted: []bool{true, false},
		},
		{
			name:   "onlyDelimiter",
			input:  ",",
			want:   []string{"", ""},
			quoted: []bool{false, false},
		},
		{
			name:   "emptyQuoted",
			input:  `"",x`,
			want:   []string{"", "x"},
			quoted: []bool{true, false},
		},
		{
			name:   "quotedLastField",
			input:  `a,"b"`,
			want:   []string{"a", "b"},
			quoted: []bool{false, true},
		},
		{
			name:   "bytesAfterClosingQuote",
			input:  `"a"b,c`,
			want:   []string{"a", "b", "c"},
			quoted: []bool{true, false, false},
		},
		{
			name:   "spacesPreserved",
			input:  " a , b ",
			want:   []string{" a ", " b "},
			quoted: []bool{false, false},
		},
		{
			name:   "rowDelimInsideQuotes",
			input:  "\"a\nb\",c",
			want:   []string{"a\nb", "c"},
			quoted: []bool{true, false},
		},
		{
			name:   "customQuoteAndComma",
			input:  "'x;y';z",
			cfg:    Config{Comma: ';', Quote: '\''},
			want:   []string{"x;y", "z"},
			quoted: []bool{true, false},
		},
		{
			name:   "tabSeparated",
			input:  "x\ty",
			cfg:    TSV(),
			want:   []string{"x", "y"},
			quoted: []bool{false, false},
		},
		{
			name:   "emptyRow",
			input:  "",
			want:   nil,
			quoted: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fields := NewFields(tc.input, tc.cfg)
			var got []string
			var quoted []bool
			for fields.Next() {
				got = append(got, fields.Field())
				quoted = append(quoted, fields.Quoted())
			}
			if err := fields.Err(); err != nil {
				t.Fatalf("Fields.Err() = %v, want nil", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Fields.Next() fields mismatch:\n got: %#v\nwant: %#v", got, tc.want)
			}
			if !reflect.DeepEqual(quoted, tc.quoted) {
				t.Fatalf("Fields.Quoted() mismatch:\n got: %v\nwant: %v", quoted, tc.quoted)
			}
			if fields.Next() {
				t.Fatalf("Fields.Next() returned true after exhaustion")
			}
		})
	}
}

func TestFieldsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		fields []string
		line   int
		column int
	}{
		{
			name:   "unterminatedFirstField",
			input:  `"abc`,
			line:   1,
			column: 1,
		},
		{
			name:   "unterminatedAfterPlainField",
			input:  `a,"bc`,
			fields: []string{"a"},
			line:   1,
			column: 3,
		},
		{
			name:   "escapedClosingQuote",
			input:  `a,"b\"`,
			fields: []string{"a"},
			line:   1,
			column: 3,
		},
		{
			name:   "quoteAloneAtRowEnd",
			input:  `x,y,"`,
			fields: []string{"x", "y"},
			line:   1,
			column: 5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fields := NewFields(tc.input, DefaultConfig())
			var got []string
			for fields.Next() {
				got = append(got, fields.Field())
			}
			if !reflect.DeepEqual(got, tc.fields) {
				t.Fatalf("fields before error = %#v, want %#v", got, tc.fields)
			}

			var perr *ParseError
			if !errors.As(fields.Err(), &perr) {
				t.Fatalf("Fields.Err() returned %T, want *ParseError", fields.Err())
			}
			if !errors.Is(perr, ErrUnterminatedQuote) {
				t.Fatalf("ParseError.Err = %v, want %v", perr.Err, ErrUnterminatedQuote)
			}
			if perr.Line != tc.line || perr.Column != tc.column {
				t.Fatalf("ParseError location = line %d column %d, want line %d column %d", perr.Line, perr.Column, tc.line, tc.column)
			}
			if fields.Next() {
				t.Fatalf("Fields.Next() should stay false after an error")
			}
		})
	}
}

func TestRowsReportLine(t *testing.T) {
	t.Parallel()

	rows := NewRows("ok,row\nx,\"bad\nnever", DefaultConfig())
	var lastErr error
	for rows.Next() {
		fields := rows.Fields()
		for fields.Next() {
		}
		if err := fields.Err(); err != nil {
			lastErr = err
			break
		}
	}

	var perr *ParseError
	if !errors.As(lastErr, &perr) {
		t.Fatalf("expected *ParseError, got %v", lastErr)
	}
	if perr.Line != 2 || perr.Column != 3 {
		t.Fatalf("ParseError location = line %d column %d, want line 2 column 3", perr.Line, perr.Column)
	}
	if rows.Line() != 2 {
		t.Fatalf("Rows.Line() = %d, want 2", rows.Line())
	}
	if got := rows.Remaining(); got != "never" {
		t.Fatalf("Rows.Remaining() = %q, want %q", got, "never")
	}
}

func TestFieldsColumn(t *testing.T) {
	t.Parallel()

	fields := NewFields(`ab,"cd",,e`, DefaultConfig())
	var columns []int
	for fields.Next() {
		columns = append(columns, fields.Column())
	}
	want := []int{1, 4, 9, 10}
	if !reflect.DeepEqual(columns, want) {
		t.Fatalf("Fields.Column() = %v, want %v", columns, want)
	}
}

func TestFieldsRejoinReproducesRow(t *testing.T) {
	t.Parallel()

	rows := []string{
		"a,b,c",
		"a,b,",
		",,",
		"single",
		"with spaces, and\ttabs ,x",
	}
	for _, row := range rows {
		fields := NewFields(row, DefaultConfig())
		var parts []string
		for fields.Next() {
			parts = append(parts, fields.Field())
		}
		if got := strings.Join(parts, ","); got != row {
			t.Fatalf("rejoined %q, want %q", got, row)
		}
	}
}

func TestFieldsAliasInput(t *testing.T) {
	t.Parallel()

	data := []byte("id,\"name\"\n7,x")
	rows := NewRows(data, DefaultConfig())
	if !rows.Next() {
		t.Fatalf("Rows.Next() returned false")
	}
	fields := rows.Fields()
	if !fields.Next() || !fields.Next() {
		t.Fatalf("expected two fields")
	}
	name := fields.Field()
	if string(name) != "name" {
		t.Fatalf("field = %q, want %q", name, "name")
	}
	if &name[0] != &data[4] {
		t.Fatalf("field does not alias the input buffer")
	}

	str := "id,\"name\"\n7,x"
	srows := NewRows(str, DefaultConfig())
	srows.Next()
	sfields := srows.Fields()
	sfields.Next()
	sfields.Next()
	if unsafe.StringData(sfields.Field()) != unsafe.StringData(str[4:]) {
		t.Fatalf("string field does not alias the input")
	}
}

type myView []byte

func TestNamedViewType(t *testing.T) {
	t.Parallel()

	records, err := ReadAll(myView("a,b\nc"), DefaultConfig())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(records) != 2 || string(records[0][1]) != "b" || string(records[1][0]) != "c" {
		t.Fatalf("ReadAll() = %q", records)
	}
}

func TestTabSeparatedMatchesComma(t *testing.T) {
	t.Parallel()

	tsv, err := ReadAll("x\ty\n", TSV())
	if err != nil {
		t.Fatalf("ReadAll(TSV) error = %v", err)
	}
	csv, err := ReadAll("x,y\n", DefaultConfig())
	if err != nil {
		t.Fatalf("ReadAll(CSV) error = %v", err)
	}
	if !reflect.DeepEqual(tsv, csv) {
		t.Fatalf("TSV records %q differ from CSV records %q", tsv, csv)
	}
	if !reflect.DeepEqual(tsv, [][]string{{"x", "y"}}) {
		t.Fatalf("TSV records = %q", tsv)
	}
}

func TestIndependentBuffersTokenizeIdentically(t *testing.T) {
	t.Parallel()

	const input = "a,\"b,c\",d\n\"e\\\"f\",,g\nlast,"
	first, err := ReadAll([]byte(input), DefaultConfig())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	second, err := ReadAll([]byte(input), DefaultConfig())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("records differ:\n%q\n%q", first, second)
	}
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	const input = "a,b,c\n\"d\",\"e,f\",\"g\\\"h\"\nlast,row,\n"
	want := [][]string{
		{"a", "b", "c"},
		{"d", "e,f", "g\\\"h"},
		{"last", "row", ""},
	}

	records, err := ReadAll(input, DefaultConfig())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("ReadAll() records mismatch:\n got: %#v\nwant: %#v", records, want)
	}
}

func TestReadAllError(t *testing.T) {
	t.Parallel()

	records, err := ReadAll("a,b\na,\"b\n", DefaultConfig())
	if records != nil {
		t.Fatalf("ReadAll() returned records %+v, want nil on error", records)
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("ReadAll() error type %T, want *ParseError", err)
	}
	if !errors.Is(perr.Err, ErrUnterminatedQuote) {
		t.Fatalf("ReadAll() error = %v, want ErrUnterminatedQuote", perr.Err)
	}
	if perr.Line != 2 {
		t.Fatalf("ParseError.Line = %d, want 2", perr.Line)
	}
}

func TestParseErrorMethods(t *testing.T) {
	t.Parallel()

	err := &ParseError{Line: 3, Column: 7, Err: ErrUnterminatedQuote}
	if got := err.Error(); got == "" || !strings.Contains(got, "line 3") || !strings.Contains(got, "column 7") {
		t.Fatalf("Error() returned %q, want descriptive output", got)
	}
	if !errors.Is(err, ErrUnterminatedQuote) {
		t.Fatalf("ParseError should unwrap to ErrUnterminatedQuote")
	}

	var nilErr *ParseError
	if nilErr.Error() != "" {
		t.Fatalf("nil ParseError should return empty string")
	}
	if nilErr.Unwrap() != nil {
		t.Fatalf("nil ParseError should return nil from Unwrap")
	}
}

func TestUnescape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		cfg   Config
		want  string
	}{
		{name: "noEscapes", field: "plain", want: "plain"},
		{name: "escapedQuote", field: `a\"b`, want: `a"b`},
		{name: "escapedEscape", field: `a\\b`, want: `a\b`},
		{name: "trailingLoneEscape", field: `ab\`, want: `ab\`},
		{name: "escapedPlainByte", field: `\n`, want: "n"},
		{name: "customEscape", field: `x~'y`, cfg: Config{Escape: '~'}, want: "x'y"},
		{name: "empty", field: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Unescape([]byte(">"), tc.field, tc.cfg)
			if string(got) != ">"+tc.want {
				t.Fatalf("Unescape(%q) = %q, want %q", tc.field, got[1:], tc.want)
			}
		})
	}
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	t.Parallel()

	if got := (Config{}).normalize(); got != DefaultConfig() {
		t.Fatalf("zero Config normalizes to %+v, want %+v", got, DefaultConfig())
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if err := TSV().Validate(); err != nil {
		t.Fatalf("TSV().Validate() = %v", err)
	}
	if err := (Config{Comma: '\n'}).Validate(); !errors.Is(err, ErrConfigConflict) {
		t.Fatalf("Validate() = %v, want ErrConfigConflict", err)
	}
	if err := (Config{Quote: ','}).Validate(); !errors.Is(err, ErrConfigConflict) {
		t.Fatalf("Validate() = %v, want ErrConfigConflict", err)
	}
	if err := (Config{Escape: '"'}).Validate(); err != nil {
		t.Fatalf("Escape equal to Quote should validate, got %v", err)
	}
}

func TestEscapeEqualToQuoteDisablesEscaping(t *testing.T) {
	t.Parallel()

	records, err := ReadAll(`"a""b",c`, Config{Escape: '"'})
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	want := [][]string{{"a", "b", "c"}}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("ReadAll() = %q, want %q", records, want)
	}
}

func TestIterationDoesNotAllocate(t *testing.T) {
	input := string(benchmarkData())
	bin := []byte(input)

	var count int
	allocs := testing.AllocsPerRun(20, func() {
		rows := NewRows(input, DefaultConfig())
		for rows.Next() {
			fields := rows.Fields()
			for fields.Next() {
				count += len(fields.Field())
			}
		}
		brows := NewRows(bin, DefaultConfig())
		for brows.Next() {
			fields := brows.Fields()
			for fields.Next() {
				count += len(fields.Field())
			}
		}
	})
	if allocs != 0 {
		t.Fatalf("iteration allocated %.1f times per run, want 0", allocs)
	}
	if count == 0 {
		t.Fatalf("iteration saw no bytes")
	}
}

func TestZeroRowsCursor(t *testing.T) {
	t.Parallel()

	var rows Rows[[]byte]
	if rows.Next() {
		t.Fatalf("zero Rows should yield no rows")
	}
	var fields Fields[string]
	if fields.Next() {
		t.Fatalf("zero Fields should yield no fields")
	}
	if !bytes.Equal(rows.Row(), nil) {
		t.Fatalf("zero Rows.Row() = %q", rows.Row())
	}
}
