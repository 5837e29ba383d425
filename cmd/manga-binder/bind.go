// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manga-binder/internal/convert"
	"github.com/pdiddy/manga-binder/internal/history"
	"github.com/pdiddy/manga-binder/internal/report"
	"github.com/pdiddy/manga-binder/pkg/types"
)

var bindCmd = &cobra.Command{
	Use:   "bind",
	Short: "Merge every image folder under the root into PDFs",
	Long: `Bind scans the root directory recursively. Each folder that directly
contains supported images (.jpg and .webp by default, any case) becomes one
PDF written to <root>/<collection>.pdf. Existing PDFs are overwritten.

A folder whose images cannot all be decoded is reported and skipped; the
run always continues with the next folder. The command fails only when
folders were found and none could be converted.`,
	RunE: runBind,
}

func runBind(cmd *cobra.Command, args []string) error {
	cfg, err := binderConfig(viper.GetViper())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	started := time.Now()
	result := convert.NewConverter(cfg).Run(cmd.Context(), cfg.Root, out)
	finished := time.Now()

	if cfg.ReportPath != "" {
		if err := report.Write(cfg.ReportPath, cfg.Root, result); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else {
			fmt.Fprintf(out, "report written to %s\n", cfg.ReportPath)
		}
	}

	if cfg.HistoryDB != "" {
		if err := recordHistory(cmd.Context(), cfg, started, finished, result, out); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	if result.Total() > 0 && !result.AnySucceeded() {
		return fmt.Errorf("no collections converted (%d failed, %d skipped)", result.Failed, result.Skipped)
	}
	return nil
}

func recordHistory(ctx context.Context, cfg types.BinderConfig, started, finished time.Time, result convert.BatchResult, w io.Writer) error {
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	// The run has already finished; record it even if ctx was interrupted.
	id, err := store.Record(context.WithoutCancel(ctx), cfg.Root, started, finished, result)
	if err != nil {
		return fmt.Errorf("recording run history: %w", err)
	}
	fmt.Fprintf(w, "recorded run %d in %s\n", id, cfg.HistoryDB)
	return nil
}

// binderConfig assembles a BinderConfig from flags, MANGA_BINDER_* env vars
// and the config file, in that order of precedence.
func binderConfig(v *viper.Viper) (types.BinderConfig, error) {
	cfg := types.DefaultBinderConfig()
	if s := v.GetString("root"); s != "" {
		cfg.Root = s
	}
	if exts := splitList(v.GetStringSlice("extensions")); len(exts) > 0 {
		cfg.Extensions = exts
	}
	if v.IsSet("jpeg_quality") {
		cfg.JPEGQuality = v.GetInt("jpeg_quality")
	}
	cfg.HistoryDB = v.GetString("history_db")
	cfg.ReportPath = v.GetString("report")

	if err := cfg.Normalize(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// splitList splits comma-separated entries. Env values such as
// MANGA_BINDER_EXTENSIONS=.jpg,.webp arrive as a single element.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func init() {
	bindCmd.Flags().String("root", types.DefaultRoot, "directory tree to scan; PDFs are written here")
	bindCmd.Flags().StringSlice("ext", types.DefaultExtensions, "image extensions to collect (case-insensitive)")
	bindCmd.Flags().Int("quality", types.DefaultJPEGQuality, "JPEG quality (1-100) for normalized pages")
	bindCmd.Flags().String("report", "", "write a YAML run report to this path")

	_ = viper.BindPFlag("root", bindCmd.Flags().Lookup("root"))
	_ = viper.BindPFlag("extensions", bindCmd.Flags().Lookup("ext"))
	_ = viper.BindPFlag("jpeg_quality", bindCmd.Flags().Lookup("quality"))
	_ = viper.BindPFlag("report", bindCmd.Flags().Lookup("report"))

	rootCmd.AddCommand(bindCmd)
}
