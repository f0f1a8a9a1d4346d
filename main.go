package main

import (
	"fmt"
	"os"

	"emotecat/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "emotecat",
	Short: "Build the emote picker catalog from Unicode emoji test data",
	Long: `emotecat downloads the Unicode emoji-test.txt document, keeps every
fully-qualified emoji and writes them as a JSON catalog of
{text, name, group, tags} entries for the emote picker.

Run without a subcommand to refresh the catalog.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(cfg.Level())
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runRefresh,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	addOutputFlags(rootCmd)
	addOutputFlags(refreshCmd)
	addOutputFlags(parseCmd)
	addCatalogFlags(listCmd)
	addCatalogFlags(statsCmd)
	listCmd.Flags().StringVar(&query.Group, "group", "", "Only entries in this group")
	listCmd.Flags().StringVar(&query.Tag, "tag", "", "Only entries with this tag")
	listCmd.Flags().StringVar(&query.Name, "name", "", "Only entries whose name contains this text")

	rootCmd.AddCommand(refreshCmd, parseCmd, listCmd, statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
