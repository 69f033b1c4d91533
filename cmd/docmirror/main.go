// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docmirror CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docmirror/internal/output"
	"github.com/pdiddy/docmirror/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the docmirror CLI.
var rootCmd = &cobra.Command{
	Use:   "docmirror",
	Short: "Convert a tree of Markdown files into a mirrored tree of HTML",
	Long: `docmirror walks a source directory, converts every Markdown (.md) file to a
standalone HTML document with pandoc, and writes it to the same relative
location under a destination directory. Destination folders are created as
Markdown files are found; folders without Markdown files are not mirrored.

Settings come from flags, DOCMIRROR_* environment variables, or a
docmirror.yaml config file (see "docmirror init").`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docmirror.yaml or ~/.config/docmirror/config.yaml)")
	rootCmd.PersistentFlags().String("history-db", "", "SQLite database that records every run (disabled when empty)")
	rootCmd.PersistentFlags().String("color", types.DefaultColor, "color output: never, always, or auto")

	_ = viper.BindPFlag("history_db", rootCmd.PersistentFlags().Lookup("history-db"))
	_ = viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docmirror")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docmirror"))
		}
	}

	viper.SetDefault("converter", types.DefaultConverter)
	viper.SetDefault("color", types.DefaultColor)

	viper.SetEnvPrefix("DOCMIRROR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, environment, and file settings.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// newPrinter builds a Printer for cmd's writers honoring --color.
func newPrinter(cmd *cobra.Command, colorMode string) *output.Printer {
	stdout := cmd.OutOrStdout()
	color := output.ResolveColorMode(colorMode, output.IsTTY(stdout))
	return output.NewPrinter(stdout, color).WithStderr(cmd.ErrOrStderr())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		newPrinter(rootCmd, viper.GetString("color")).Error(err)
		os.Exit(output.GetExitCode(err))
	}
}
