package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/durafile/durafile"
)

var jsonLogs bool

var rootCmd = &cobra.Command{
	Use:   "durcp",
	Short: "Copy files with an explicit durability contract.",
	Long: `durcp copies a file and tells you which durability tier the data
actually reached: the process buffer, the kernel page cache, or the
physical storage device.

A plain copy that "succeeded" has only reached the page cache; unplug the
device and the data is gone even though the size looks right. Use
--commit physical to block until the device itself confirms the write.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json", false, "emit JSON-formatted logs")
}

func newLogger() *durafile.Logger {
	if jsonLogs {
		return durafile.NewJSONLogger(slog.LevelInfo)
	}
	return durafile.NewTextLogger(slog.LevelInfo)
}
