package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docmirror/internal/history"
	"github.com/pdiddy/docmirror/internal/output"
	"github.com/pdiddy/docmirror/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversion runs",
	Long: `History reads the run database written by "docmirror convert --history-db"
and lists recent runs, newest first. With --run it lists every conversion of
that run in traversal order.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int64("run", 0, "show the conversions of this run ID")
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().String("format", "text", "output format: text, yaml, or json")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return output.NewUserError(err.Error())
	}
	if cfg.HistoryDB == "" {
		return output.NewUserError("no history database configured (use --history-db or the history_db config key)")
	}
	if _, err := os.Stat(cfg.HistoryDB); errors.Is(err, fs.ErrNotExist) {
		return output.NewUserError(fmt.Sprintf("no history database at %s", cfg.HistoryDB))
	}

	runID, _ := cmd.Flags().GetInt64("run")
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return output.NewSystemError(err)
	}
	defer store.Close()

	var data any
	if runID != 0 {
		run, err := store.Run(cmd.Context(), runID)
		if errors.Is(err, history.ErrRunNotFound) {
			return output.NewUserError(err.Error())
		}
		if err != nil {
			return output.NewSystemError(err)
		}
		data = run
	} else {
		runs, err := store.Runs(cmd.Context(), limit)
		if err != nil {
			return output.NewSystemError(err)
		}
		data = runs
	}

	if format != "text" {
		f, err := history.ParseFormat(format)
		if err != nil {
			return output.NewUserError(err.Error())
		}
		return history.Encode(cmd.OutOrStdout(), data, f)
	}

	printer := newPrinter(cmd, cfg.Color)
	switch v := data.(type) {
	case *types.Run:
		printConversions(printer, v)
	case []types.Run:
		printRuns(printer, v)
	}
	return nil
}

func printRuns(p *output.Printer, runs []types.Run) {
	if len(runs) == 0 {
		p.Println("No runs recorded.")
		return
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		status := "ok"
		switch {
		case r.Error != "":
			status = "aborted"
		case r.HasFailures():
			status = "failures"
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.StartedAt.Local().Format(time.DateTime),
			strconv.Itoa(r.Converted),
			strconv.Itoa(r.Failed),
			status,
			r.Source + " -> " + r.Dest,
		})
	}
	p.Table([]string{"ID", "STARTED", "CONVERTED", "FAILED", "STATUS", "TREE"}, rows)
}

func printConversions(p *output.Printer, run *types.Run) {
	p.Println(fmt.Sprintf("Run %d: %s -> %s (%d converted, %d failed)",
		run.ID, run.Source, run.Dest, run.Converted, run.Failed))
	if run.Error != "" {
		p.Println("Aborted: " + run.Error)
	}
	rows := make([][]string, 0, len(run.Conversions))
	for _, c := range run.Conversions {
		rows = append(rows, []string{
			string(c.Status),
			c.Duration.Round(time.Millisecond).String(),
			c.Source,
			c.Dest,
			c.Error,
		})
	}
	p.Table([]string{"STATUS", "DURATION", "SOURCE", "DEST", "ERROR"}, rows)
}
