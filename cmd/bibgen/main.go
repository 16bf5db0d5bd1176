// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bibgen CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/bibgen/internal/bibliography"
	"github.com/pdiddy/bibgen/internal/config"
	"github.com/pdiddy/bibgen/internal/httputil"
	"github.com/pdiddy/bibgen/internal/logging"
	"github.com/pdiddy/bibgen/internal/search"
	"github.com/pdiddy/bibgen/internal/secrets"
	"github.com/pdiddy/bibgen/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// app holds what PersistentPreRunE assembles for the subcommands.
var app struct {
	cfg     types.Config
	secrets *secrets.Store
	logger  *zap.Logger
}

// rootCmd is the base command for the bibgen CLI. Without a subcommand it
// opens the interactive form.
var rootCmd = &cobra.Command{
	Use:   "bibgen",
	Short: "Generate a bibliography for a topic",
	Long: `bibgen collects bibliographic references on a topic from the Together and
Serper web-search APIs and the Crossref metadata API, merges them, removes
duplicate titles, and lists at most 50 sources.

Run without arguments to open the interactive form. When standard input is
not a terminal, the first line is read as the topic and the bibliography is
printed as Markdown.

Credentials (TOGETHER_API_KEY, SERPER_API_KEY) are read from files in
.secrets/, from the environment, or from a .env file.`,
	SilenceUsage: true,
	RunE:         runInteractive,
}

func init() {
	// Assigned here rather than in the literal: setup refers to rootCmd.
	rootCmd.PersistentPreRunE = setup
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bibgen.yaml or ~/.config/bibgen/bibgen.yaml)")
	rootCmd.PersistentFlags().String("style", "", "citation style: none or apa")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file (default: stderr, or <cache dir>/bibgen/bibgen.log for the form)")
	_ = viper.BindPFlag("citation_style", rootCmd.PersistentFlags().Lookup("style"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bibgen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bibgen"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setup loads .env, validates the config, loads secrets and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	app.cfg = cfg

	s, err := secrets.Load(cfg.SecretsDir)
	if err != nil {
		return err
	}
	app.secrets = secrets.NewStore(s)
	if keys := app.secrets.Keys(); len(keys) > 0 {
		sort.Strings(keys)
		fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
	}

	logFile, _ := cmd.Flags().GetString("log-file")
	if logFile == "" && cmd == rootCmd {
		// Log lines would corrupt the form's alternate screen.
		logFile, err = logging.DefaultPath()
		if err != nil {
			return err
		}
	}
	logger, err := logging.New(cfg.Environment, logFile)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	app.logger = logger
	return nil
}

// newAggregator wires the three sources in their fixed order. A missing API
// key is reported here, before any request.
func newAggregator() (*bibliography.Aggregator, error) {
	client := httputil.NewClient(app.cfg.Timeout)
	sources, err := search.NewSources(app.cfg, client, app.secrets, app.logger)
	if err != nil {
		return nil, err
	}
	return bibliography.New(sources, bibliography.OptionsFromConfig(app.cfg), app.logger), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if app.logger != nil {
		_ = app.logger.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}
