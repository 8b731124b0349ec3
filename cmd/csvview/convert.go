package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oleg578/csvview"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

type convertOptions struct {
	Comma       string
	TSV         bool
	CRLF        bool
	AlwaysQuote bool
}

func (o convertOptions) config(in csvview.Config) (csvview.Config, error) {
	out := csvview.Config{
		Comma:    in.Comma,
		RowDelim: in.RowDelim,
		Quote:    in.Quote,
		Escape:   in.Escape,
		CRLF:     o.CRLF,
	}
	if o.Comma != "" {
		b, err := parseByte("out-comma", o.Comma)
		if err != nil {
			return out, err
		}
		out.Comma = b
	}
	if o.TSV {
		out.Comma = '\t'
	}
	if err := out.Validate(); err != nil {
		return out, fmt.Errorf("output dialect: %w", err)
	}
	return out, nil
}

func convertCmd() *cli.Command {
	var opts convertOptions

	return &cli.Command{
		Name:      "convert",
		Usage:     "Rewrite a file in another dialect on stdout",
		ArgsUsage: "<file>",
		Flags: commonFlags(
			&cli.StringFlag{
				Name:        "out-comma",
				Usage:       "output column delimiter (default: input delimiter)",
				Destination: &opts.Comma,
			},
			&cli.BoolFlag{
				Name:        "out-tsv",
				Usage:       "write tab-separated output",
				Destination: &opts.TSV,
			},
			&cli.BoolFlag{
				Name:        "out-crlf",
				Usage:       "terminate output rows with \\r\\n",
				Destination: &opts.CRLF,
			},
			&cli.BoolFlag{
				Name:        "always-quote",
				Usage:       "quote every output field",
				Destination: &opts.AlwaysQuote,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			in, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			out, err := opts.config(in)
			if err != nil {
				return err
			}

			f, err := openInput(c, logger)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			n, err := convert(os.Stdout, f.Data, in, out, opts.AlwaysQuote)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %s: %v", c.Args().First(), err), 1)
			}
			logger.Info("converted", zap.Int("rows", n))
			return nil
		},
	}
}

// convert re-encodes data from the in dialect to the out dialect and returns the
// number of rows written.
func convert(w io.Writer, data []byte, in, out csvview.Config, alwaysQuote bool) (int, error) {
	cw := csvview.NewWriter(w, out)
	cw.AlwaysQuote = alwaysQuote

	var record []string
	n := 0
	rows := csvview.NewRows(data, in)
	for rows.Next() {
		record = record[:0]
		fields := rows.Fields()
		for fields.Next() {
			field := fields.Field()
			if fields.Quoted() {
				field = csvview.Unescape(nil, field, in)
			}
			record = append(record, string(field))
		}
		if err := fields.Err(); err != nil {
			return n, err
		}
		if err := cw.Write(record); err != nil {
			return n, fmt.Errorf("line %d: %w", rows.Line(), err)
		}
		n++
	}
	return n, cw.Flush()
}
