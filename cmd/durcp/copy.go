package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/durafile/durafile"
)

var (
	commitLevel string
	bufferSize  int
	syncDir     bool
)

var copyCmd = &cobra.Command{
	Use:   "copy <source> <destination>",
	Short: "Copy a file to the requested durability tier",
	Args:  cobra.ExactArgs(2),
	RunE:  runCopy,
}

func init() {
	copyCmd.Flags().StringVar(&commitLevel, "commit", "cache",
		"durability tier to commit to: cache or physical")
	copyCmd.Flags().IntVar(&bufferSize, "buffer-size", durafile.DefaultBufferSize,
		"in-process buffer size in bytes")
	copyCmd.Flags().BoolVar(&syncDir, "sync-dir", false,
		"also sync the parent directory after a physical commit")
	rootCmd.AddCommand(copyCmd)
}

func runCopy(cmd *cobra.Command, args []string) error {
	level, err := durafile.ParseLevel(commitLevel)
	if err != nil {
		return err
	}

	src, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer src.Close()

	opts := []durafile.Option{
		durafile.WithLogger(newLogger()),
		durafile.WithBufferSize(bufferSize),
	}
	if syncDir {
		opts = append(opts, durafile.WithSyncParentDir())
	}

	res, err := durafile.WriteFile(cmd.Context(), args[1], src, level, opts...)
	if err != nil {
		return fmt.Errorf("copy reached %s: %w", res.Level, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[1], res.Level)
	if res.Level < durafile.LevelPhysicallyCommitted {
		fmt.Fprintln(cmd.OutOrStdout(),
			"warning: data is in the OS cache only; removing the device now loses it")
	}
	return nil
}
