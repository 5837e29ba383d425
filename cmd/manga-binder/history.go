// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manga-binder/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past bind runs",
	Long: `History lists bind runs recorded in the SQLite history database, newest
first. Use --run with a run ID to list the collections that run produced.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath := viper.GetString("history_db")
	if dbPath == "" {
		return fmt.Errorf("history is disabled: set --history-db or history_db in the config")
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, _ := cmd.Flags().GetInt64("run")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	if runID > 0 {
		cols, err := store.Collections(cmd.Context(), runID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(out, cols)
		}
		return formatCollections(out, runID, cols)
	}

	runs, err := store.Runs(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(out, runs)
	}
	return formatRuns(out, runs)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatRuns(w io.Writer, runs []history.Run) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-9s  %-7s  %-6s  %s\n",
		"ID", "Started", "Converted", "Skipped", "Failed", "Root")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, r := range runs {
		fmt.Fprintf(w, "%-5d  %-20s  %-9d  %-7d  %-6d  %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Converted, r.Skipped, r.Failed, r.Root)
	}
	return nil
}

func formatCollections(w io.Writer, runID int64, cols []history.CollectionRecord) error {
	if len(cols) == 0 {
		fmt.Fprintf(w, "No collections recorded for run %d.\n", runID)
		return nil
	}

	fmt.Fprintf(w, "%-30s  %-9s  %-9s  %-5s  %s\n", "Name", "Status", "Reason", "Pages", "Dir")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, c := range cols {
		name := c.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		fmt.Fprintf(w, "%-30s  %-9s  %-9s  %-5d  %s\n", name, c.Status, c.Reason, c.Pages, c.Dir)
		if c.Error != "" {
			fmt.Fprintf(w, "    %s\n", c.Error)
		}
	}
	return nil
}

func init() {
	historyCmd.Flags().Int64("run", 0, "show the collections of this run ID")
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list (0 = all)")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}
