package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"emotecat/catalog"
	"emotecat/fetch"
	"emotecat/notify"
	"emotecat/parser"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outputPath string
	install    bool

	// dial overrides the fetcher's dialer; tests point it at a local server.
	dial fetch.DialFunc
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Download emoji-test.txt and rebuild the catalog",
	Args:  cobra.NoArgs,
	RunE:  runRefresh,
}

var parseCmd = &cobra.Command{
	Use:   "parse [emoji-test.txt]",
	Short: "Rebuild the catalog from a local copy of emoji-test.txt",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Catalog file to write (default from config)")
	cmd.Flags().BoolVar(&install, "install", false, "Write the catalog where the emote picker reads it")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	start := time.Now()

	f := fetch.New(logger, cfg.Fetch.ReadTimeout)
	if dial != nil {
		f.Dial = dial
	}

	raw, err := f.Fetch(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch %s%s: %w", fetch.Host, fetch.Path, err)
	}

	if err := publish(raw); err != nil {
		return err
	}

	logger.Info("Done", zap.Duration("elapsed", time.Since(start)))
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read source document: %w", err)
	}
	return publish(string(raw))
}

// publish parses raw and replaces the catalog with the result. Nothing is
// written unless the whole document parses.
func publish(raw string) error {
	var opts []parser.Option
	if cfg.Parser.SkipInvalid {
		opts = append(opts, parser.WithSkipInvalid(logger))
	}

	logger.Info("Parsing", zap.Int("bytes", len(raw)))
	entries, err := parser.Parse(raw, opts...)
	if err != nil {
		return fmt.Errorf("parse emoji test data: %w", err)
	}

	out, err := resolveOutput()
	if err != nil {
		return err
	}
	if err := catalog.Write(out, entries); err != nil {
		return err
	}

	counts := catalog.Summarize(entries)
	logger.Info("Catalog written",
		zap.String("path", out),
		zap.Int("entries", len(entries)),
		zap.Int("groups", len(counts)))

	if cfg.Notify.Enabled() {
		n, err := notify.New(cfg.Notify.TelegramToken, cfg.Notify.ChatID, logger)
		if err == nil {
			err = n.Announce(out, entries, counts)
		}
		if err != nil {
			logger.Warn("Refresh notice not sent", zap.Error(err))
		}
	}
	return nil
}

// resolveOutput picks the catalog path from --install, --output and config.
func resolveOutput() (string, error) {
	if install {
		path, err := catalog.DefaultPath()
		if err != nil {
			return "", err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return "", fmt.Errorf("failed to prepare catalog directory: %w", err)
		}
		return path, nil
	}
	if outputPath != "" {
		return outputPath, nil
	}
	return cfg.Output, nil
}
