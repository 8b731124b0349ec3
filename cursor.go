package csvview

// Rows pulls rows out of a resident buffer. The zero value yields no rows.
type Rows[T Text] struct {
	rest T
	row  T
	cfg  Config
	line int
}

// NewRows returns a row cursor over data.
func NewRows[T Text](data T, cfg Config) Rows[T] {
	return Rows[T]{rest: data, cfg: cfg.normalize()}
}

// Next advances to the next row, reporting false once the buffer is exhausted.
func (r *Rows[T]) Next() bool {
	row, ok := NextRow(&r.rest, r.cfg)
	if !ok {
		return false
	}
	r.row = row
	r.line++
	return true
}

// Row returns the current row without its delimiter.
func (r *Rows[T]) Row() T {
	return r.row
}

// Line returns the 1-based number of the current row, or 0 before the first Next.
func (r *Rows[T]) Line() int {
	return r.line
}

// Remaining returns the unconsumed part of the buffer.
func (r *Rows[T]) Remaining() T {
	return r.rest
}

// Fields returns a field cursor over the current row. Errors it reports carry the row's line.
func (r *Rows[T]) Fields() Fields[T] {
	f := NewFields(r.row, r.cfg)
	f.line = r.line
	return f
}

// Fields pulls fields out of a single row.
type Fields[T Text] struct {
	rest    T
	field   T
	cfg     Config
	err     error
	line    int
	offset  int // bytes of the row consumed so far
	column  int
	quoted  bool
	pending bool // a delimiter ended the row, one empty field is still owed
}

// NewFields returns a field cursor over row. Parse errors report line 1.
func NewFields[T Text](row T, cfg Config) Fields[T] {
	return Fields[T]{rest: row, cfg: cfg.normalize(), line: 1}
}

// Next advances to the next field. It returns false when the row is exhausted or a quoted
// field is not closed before the row ends; Err tells the two apart.
func (f *Fields[T]) Next() bool {
	if f.err != nil {
		return false
	}
	if len(f.rest) == 0 {
		if !f.pending {
			return false
		}
		f.pending = false
		f.field = f.rest
		f.quoted = false
		f.column = f.offset + 1
		return true
	}

	item, rest, quoted, delimited, err := nextItem(f.rest, f.cfg)
	if err != nil {
		f.err = &ParseError{Line: f.line, Column: f.offset + 1, Err: err}
		logUnterminatedQuote(f.line, f.offset+1)
		return false
	}
	f.column = f.offset + 1
	f.offset += len(f.rest) - len(rest)
	f.field = item
	f.quoted = quoted
	f.rest = rest
	f.pending = delimited && len(rest) == 0
	return true
}

// Field returns the current field. Quoted fields exclude their quotes but keep escape bytes.
func (f *Fields[T]) Field() T {
	return f.field
}

// Quoted reports whether the current field was enclosed in quotes.
func (f *Fields[T]) Quoted() bool {
	return f.quoted
}

// Column returns the 1-based byte column where the current field starts, including its
// opening quote.
func (f *Fields[T]) Column() int {
	return f.column
}

// Err returns the error that stopped the cursor, if any.
func (f *Fields[T]) Err() error {
	return f.err
}

// Remaining returns the unconsumed part of the row.
func (f *Fields[T]) Remaining() T {
	return f.rest
}
