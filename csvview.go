// # csvview: Zero-Copy CSV Tokenizing and Record Projection for Go
//
// csvview splits a resident byte buffer into rows and fields without copying a single byte.
// Every row and field it hands back is a view into the caller's buffer, so iteration performs
// no heap allocation.
//
// # Features
//
// - `Rows` and `Fields` cursors pull rows and fields out of any `string` or `[]byte` type.
// - Configurable column delimiter, row delimiter, quote and escape bytes (`Config`, `TSV`).
// - Bounded quoted-field scanning with `ParseError` and `ErrUnterminatedQuote` on malformed rows.
// - `Schema` projects a row onto a struct: text views, int32, int64 and float64 fields.
// - Permissive C-style numeric parsing by default, `Schema.Strict` for `ErrInvalidNumber`.
// - `Writer` emits records that tokenize back to the same fields, `Unescape` for post-processing.
//
// # Getting Started
//
//	rows := csvview.NewRows(data, csvview.DefaultConfig())
//	for rows.Next() {
//		fields := rows.Fields()
//		for fields.Next() {
//			fmt.Printf("%s\n", fields.Field())
//		}
//		if err := fields.Err(); err != nil {
//			return err
//		}
//	}
//
// Fields stay valid for as long as the input buffer does. Copy them if the buffer is reused.
package csvview
