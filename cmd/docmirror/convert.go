package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docmirror/internal/history"
	"github.com/pdiddy/docmirror/internal/mirror"
	"github.com/pdiddy/docmirror/internal/output"
	"github.com/pdiddy/docmirror/internal/pandoc"
	"github.com/pdiddy/docmirror/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [source-root] [dest-root]",
	Short: "Convert every Markdown file under a source tree into mirrored HTML",
	Long: `Convert walks the source root depth-first. Every file ending in .md is
converted with

  <converter> <file> --from markdown --to html --standalone --output <dest>

where <dest> is the file's path relative to the source root, under the
destination root, with .md replaced by .html. Missing destination folders
are created.

A converter failure is reported and the run continues; the command exits
with status 3 when any file failed. An unreadable source directory or a
destination folder that cannot be created stops the run (status 2).`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("converter", types.DefaultConverter, "path to the pandoc executable")
	convertCmd.Flags().String("source", "", "source root to scan for .md files")
	convertCmd.Flags().String("dest", "", "destination root for the mirrored .html tree")
	convertCmd.Flags().String("report", "", "write a run report to this file (.json for JSON, otherwise YAML)")

	for key, flag := range map[string]string{
		"converter": "converter",
		"source":    "source",
		"dest":      "dest",
		"report":    "report",
	} {
		_ = viper.BindPFlag(key, convertCmd.Flags().Lookup(flag))
	}

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return output.NewUserError(err.Error())
	}
	if len(args) > 0 {
		cfg.Source = args[0]
	}
	if len(args) > 1 {
		cfg.Dest = args[1]
	}
	if err := cfg.Validate(); err != nil {
		return output.NewUserError(err.Error())
	}

	printer := newPrinter(cmd, cfg.Color)
	return convertTree(cmd.Context(), cfg, printer, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// convertTree runs the mirror and persists its record. The converter's own
// output goes to stdout and stderr.
func convertTree(ctx context.Context, cfg types.Config, printer *output.Printer, stdout, stderr io.Writer) error {
	conv := pandoc.New(cfg.Converter, stdout, stderr)
	run, runErr := mirror.New(cfg, conv, printer).Run(ctx)

	saveRun(context.WithoutCancel(ctx), cfg, run, printer)

	if runErr != nil {
		return output.NewSystemError(runErr)
	}
	if run.HasFailures() {
		return output.NewConversionError(fmt.Sprintf("%d file(s) failed conversion", run.Failed))
	}
	return nil
}

// saveRun writes the optional report and history record. Failures here are
// warnings; they never change the run's outcome.
func saveRun(ctx context.Context, cfg types.Config, run *types.Run, printer *output.Printer) {
	if run == nil {
		return
	}
	if cfg.Report != "" {
		if err := history.WriteReport(cfg.Report, run); err != nil {
			printer.Warn("run report not written: %v", err)
		}
	}
	if cfg.HistoryDB == "" {
		return
	}
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		printer.Warn("run history not recorded: %v", err)
		return
	}
	defer store.Close()
	if _, err := store.RecordRun(ctx, run); err != nil {
		printer.Warn("run history not recorded: %v", err)
	}
}
