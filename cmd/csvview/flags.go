package main

import "github.com/urfave/cli/v3"

var (
	dialect    dialectOptions
	configFile string
	logLevel   string
)

func dialectFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "comma",
			Aliases:     []string{"d"},
			Usage:       "column delimiter (a byte, \\t, or tab|comma|semicolon|pipe|space)",
			Value:       ",",
			Destination: &dialect.Comma,
		},
		&cli.StringFlag{
			Name:        "row-delim",
			Usage:       "row delimiter",
			Value:       "\\n",
			Destination: &dialect.RowDelim,
		},
		&cli.StringFlag{
			Name:        "quote",
			Usage:       "quote character",
			Value:       "\"",
			Destination: &dialect.Quote,
		},
		&cli.StringFlag{
			Name:        "escape",
			Usage:       "escape character inside quoted fields",
			Value:       "\\\\",
			Destination: &dialect.Escape,
		},
		&cli.BoolFlag{
			Name:        "tsv",
			Usage:       "tab-separated input (shorthand for --comma=tab)",
			Destination: &dialect.TSV,
		},
		&cli.BoolFlag{
			Name:        "crlf",
			Usage:       "strip \\r before \\n row delimiters",
			Destination: &dialect.CRLF,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "dialect config file (default: $XDG_CONFIG_HOME/csvview/config.yaml)",
			Destination: &configFile,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "warn",
			Destination: &logLevel,
		},
	}
}

func commonFlags(extra ...cli.Flag) []cli.Flag {
	flags := append(dialectFlags(), loggingFlags()...)
	return append(flags, extra...)
}
