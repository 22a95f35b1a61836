package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/blackarck/batchren/internal/config"
	"github.com/blackarck/batchren/internal/logging"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "batchren:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	path := config.ConfigPath(args)
	saved, loadErr := config.Load(path)
	if loadErr != nil {
		saved = config.Default()
		saved.Path = path
	}

	cfg := saved
	if err := config.ParseFlags(&cfg, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer logger.Close()
	if loadErr != nil {
		logger.Warn().Err(loadErr).Str("path", path).Msg("settings not loaded, using defaults")
	}

	fs := afero.NewOsFs()
	if cfg.Headless {
		return runHeadless(cfg, logger.Logger, fs, os.Stdout, os.Stderr)
	}

	runWindow(&cfg, logger.Logger, fs)

	// flag overrides stay out of the settings file
	saved.Path = cfg.Path
	saved.LastDir = cfg.LastDir
	saved.Mode = cfg.Mode
	saved.Filter = cfg.Filter
	if err := saved.Save(); err != nil {
		logger.Warn().Err(err).Msg("settings not saved")
	}
	return nil
}
