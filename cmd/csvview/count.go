package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/oleg578/csvview"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// parseIssue describes a row that could not be split into fields.
type parseIssue struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Error  string `json:"error"`
}

// stats summarizes a file.
type stats struct {
	Rows   int          `json:"rows"`
	Fields int          `json:"fields"`
	Widest int          `json:"widest"`
	Issues []parseIssue `json:"issues,omitempty"`
}

// countRows walks every row of data. Rows with parse errors are recorded and skipped.
func countRows(data []byte, cfg csvview.Config, logger *zap.Logger) stats {
	var s stats
	rows := csvview.NewRows(data, cfg)
	for rows.Next() {
		s.Rows++
		width := 0
		fields := rows.Fields()
		for fields.Next() {
			width++
		}
		s.Fields += width
		if width > s.Widest {
			s.Widest = width
		}

		var perr *csvview.ParseError
		if err := fields.Err(); errors.As(err, &perr) {
			s.Issues = append(s.Issues, parseIssue{Line: perr.Line, Column: perr.Column, Error: perr.Err.Error()})
			logger.Warn("row skipped", zap.Int("line", perr.Line), zap.Int("column", perr.Column), zap.Error(perr.Err))
		}
	}
	return s
}

func printStats(w io.Writer, s stats, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(w).Encode(s)
	case "text", "":
		if _, err := fmt.Fprintf(w, "rows:   %d\nfields: %d\nwidest: %d\n", s.Rows, s.Fields, s.Widest); err != nil {
			return err
		}
		for _, issue := range s.Issues {
			if _, err := fmt.Fprintf(w, "line %d, column %d: %s\n", issue.Line, issue.Column, issue.Error); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}
}

func countCmd() *cli.Command {
	var format string

	return &cli.Command{
		Name:      "count",
		Usage:     "Count rows and fields and report malformed rows",
		ArgsUsage: "<file>",
		Flags: commonFlags(
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &format,
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

			s := countRows(f.Data, cfg, logger)
			if err := printStats(os.Stdout, s, format); err != nil {
				return err
			}
			if len(s.Issues) > 0 {
				return cli.Exit("", 2)
			}
			return nil
		},
	}
}
