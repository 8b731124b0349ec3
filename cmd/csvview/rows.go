package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/oleg578/csvview"
	"github.com/urfave/cli/v3"
)

type rowsOptions struct {
	Format   string
	Header   bool
	Limit    int
	Unescape bool
}

func rowsCmd() *cli.Command {
	var opts rowsOptions

	return &cli.Command{
		Name:      "rows",
		Usage:     "Print the rows and fields of a file",
		ArgsUsage: "<file>",
		Flags: commonFlags(
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &opts.Format,
			},
			&cli.BoolFlag{
				Name:        "header",
				Usage:       "treat the first row as column names (json emits objects)",
				Destination: &opts.Header,
			},
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "stop after this many rows (0 = all)",
				Destination: &opts.Limit,
			},
			&cli.BoolFlag{
				Name:        "unescape",
				Usage:       "strip escape bytes from quoted fields",
				Destination: &opts.Unescape,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			f, err := openInput(c, logger)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			out := bufio.NewWriter(os.Stdout)
			if err := writeRows(out, f.Data, cfg, opts); err != nil {
				_ = out.Flush()
				return cli.Exit(fmt.Sprintf("error: %s: %v", c.Args().First(), err), 1)
			}
			return out.Flush()
		},
	}
}

// writeRows prints every row of data to w in the requested format.
func writeRows(w io.Writer, data []byte, cfg csvview.Config, opts rowsOptions) error {
	switch opts.Format {
	case "text", "":
		return writeRowsText(w, data, cfg, opts)
	case "json":
		return writeRowsJSON(w, data, cfg, opts)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", opts.Format)
	}
}

func writeRowsText(w io.Writer, data []byte, cfg csvview.Config, opts rowsOptions) error {
	var scratch []byte
	rows := csvview.NewRows(data, cfg)
	for count := 0; rows.Next(); count++ {
		if opts.Limit > 0 && count == opts.Limit {
			break
		}
		if _, err := fmt.Fprintf(w, "Row %d:\n", rows.Line()); err != nil {
			return err
		}
		fields := rows.Fields()
		for fields.Next() {
			field := fields.Field()
			if opts.Unescape && fields.Quoted() {
				scratch = csvview.Unescape(scratch[:0], field, cfg)
				field = scratch
			}
			if _, err := fmt.Fprintf(w, "  Item: %s\n", field); err != nil {
				return err
			}
		}
		if err := fields.Err(); err != nil {
			return err
		}
	}
	return nil
}

func writeRowsJSON(w io.Writer, data []byte, cfg csvview.Config, opts rowsOptions) error {
	enc := json.NewEncoder(w)
	var header []string
	rows := csvview.NewRows(data, cfg)
	for count := 0; rows.Next(); {
		fields := rows.Fields()
		record, err := collect(&fields, cfg, opts.Unescape)
		if err != nil {
			return err
		}
		if opts.Header && header == nil {
			header = record
			continue
		}
		if opts.Limit > 0 && count == opts.Limit {
			break
		}
		count++

		var v any = record
		if header != nil {
			v = keyed(header, record)
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

// collect copies the fields of one row into strings.
func collect(fields *csvview.Fields[[]byte], cfg csvview.Config, unescape bool) ([]string, error) {
	var record []string
	for fields.Next() {
		if unescape && fields.Quoted() {
			record = append(record, string(csvview.Unescape(nil, fields.Field(), cfg)))
			continue
		}
		record = append(record, string(fields.Field()))
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}
	if record == nil {
		record = []string{}
	}
	return record, nil
}

// keyed pairs a record with the header names. Columns without a name are keyed by
// their 1-based position.
func keyed(header, record []string) map[string]string {
	m := make(map[string]string, len(record))
	for i, v := range record {
		key := strconv.Itoa(i + 1)
		if i < len(header) && header[i] != "" {
			key = header[i]
		}
		m[key] = v
	}
	return m
}
