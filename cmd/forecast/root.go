package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagVerbose bool
	flagPretty  bool
)

var rootCmd = &cobra.Command{
	Use:           "forecast",
	Short:         "Cash-flow projection and growth simulation",
	Long:          "Project monthly income, expense and balance from a transaction snapshot, or simulate tiered compound growth.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagPretty, "pretty", true, "Indent JSON output")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).With("component", "cli")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if flagPretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
