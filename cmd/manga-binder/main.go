// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the manga-binder CLI. It merges
// directories of sequential page images into one PDF per collection.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the manga-binder CLI.
var rootCmd = &cobra.Command{
	Use:   "manga-binder",
	Short: "Merge folders of page images into PDF collections",
	Long: `manga-binder walks a download directory, finds every folder that holds
JPEG or WebP page images, and merges each folder into a single PDF named
after the collection. Numbered chapter folders take the name of their
parent, so download/Title/1 becomes download/Title.pdf.

Pages are ordered by plain string comparison of their file names. Zero-pad
page numbers (001.jpg, 002.jpg, ...) to keep them in reading order.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env if present so MANGA_BINDER_* settings can live there.
		_ = godotenv.Load()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./manga-binder.yaml or ~/.config/manga-binder/manga-binder.yaml)")
	rootCmd.PersistentFlags().String("history-db", defaultHistoryDB(), "SQLite run history; empty disables recording")
	_ = viper.BindPFlag("history_db", rootCmd.PersistentFlags().Lookup("history-db"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("manga-binder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "manga-binder"))
		}
	}

	viper.SetEnvPrefix("MANGA_BINDER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// defaultHistoryDB returns ~/.local/state/manga-binder/history.db, or ""
// when the home directory is unknown.
func defaultHistoryDB() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "manga-binder", "history.db")
}

func main() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
