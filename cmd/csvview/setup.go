package main

import (
	"fmt"

	"github.com/oleg578/csvview"
	"github.com/oleg578/csvview/internal/mmapfile"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// setup resolves the dialect from flags and the config file and installs the logger.
func setup(c *cli.Command) (csvview.Config, *zap.Logger, error) {
	file, err := LoadConfig(configFile)
	if err != nil {
		return csvview.Config{}, nil, err
	}
	opts := dialect
	level := logLevel
	file.apply(&opts, &level, c.IsSet)

	logger, err := newLogger(level)
	if err != nil {
		return csvview.Config{}, nil, err
	}
	csvview.SetLogger(logger)

	cfg, err := opts.config()
	if err != nil {
		return csvview.Config{}, nil, err
	}
	return cfg, logger, nil
}

func openInput(c *cli.Command, logger *zap.Logger) (*mmapfile.File, error) {
	path := c.Args().First()
	if path == "" {
		return nil, cli.Exit("error: missing input file", 1)
	}
	f, err := mmapfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	logger.Info("opened input",
		zap.String("path", path),
		zap.Int("size", len(f.Data)),
		zap.Bool("mmap", f.Mapped()),
	)
	return f, nil
}
