package main

import (
	"errors"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/MatthiasKunnen/desktopfilter/desktop"
	"github.com/MatthiasKunnen/desktopfilter/mediatype"
	"github.com/MatthiasKunnen/desktopfilter/sanitize"
)

func (o *options) run(cmd *cobra.Command, args []string) error {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}

	level, _ := cfg.Level()
	logger := newLogger(o.stderr, level)

	paths, errs := expandPaths(args)
	for _, err := range errs {
		logger.Error(err)
	}
	if len(paths) == 0 && len(errs) == 0 {
		logger.Warn("No desktop files found")
	}
	if len(errs) > 0 && cfg.FailFast {
		return &filesFailedError{Failed: len(errs), Total: len(args), Err: errors.Join(errs...)}
	}

	writer := &sanitize.Writer{
		DryRun: o.dryRun,
		Out:    o.stdout,
		Label:  len(paths) > 1,
	}

	total := len(paths) + len(errs)
	for _, path := range paths {
		err := processFile(logger, writer, path)
		if err == nil {
			continue
		}

		logger.WithField("kind", sanitize.KindOf(err)).Error(err)
		errs = append(errs, err)

		if cfg.FailFast {
			logger.Debug("Stopping at first failure")
			break
		}
	}

	if len(errs) > 0 {
		return &filesFailedError{Failed: len(errs), Total: total, Err: errors.Join(errs...)}
	}

	return nil
}

func processFile(logger *log.Logger, writer *sanitize.Writer, path string) error {
	fileLog := logger.WithField("file", path)
	fileLog.Debug("Processing")

	result, err := sanitize.ProcessFile(path)
	if err != nil {
		return err
	}

	if len(result.Removed) > 0 {
		fileLog.WithField("removed", mediatype.JoinList(result.Removed)).Warn("Removing MIME types")
	}
	fileLog.WithField("kept", mediatype.JoinList(result.Kept)).Debug("Remaining MIME types")

	changed, err := writer.Write(path, result.Content)
	switch {
	case err != nil:
		return err
	case writer.DryRun:
		fileLog.Debug("Dry run, file not written")
	case changed:
		fileLog.Info("Rewrote file")
	default:
		fileLog.Debug("File already clean")
	}

	return nil
}

// expandPaths replaces directories in args by the desktop files they contain.
// Paths that cannot be inspected are passed on as is so the failure is reported when the file
// is processed.
func expandPaths(args []string) ([]string, []error) {
	var paths []string
	var errs []error

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		found, err := desktop.FindFiles([]string{arg})
		if err != nil {
			errs = append(errs, &sanitize.FileError{Path: arg, Kind: sanitize.KindIO, Err: err})
			continue
		}

		paths = append(paths, found...)
	}

	return paths, errs
}
