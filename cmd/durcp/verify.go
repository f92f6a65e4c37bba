package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/durafile/durafile"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <path>",
	Short: "Probe the apparent size of a path",
	Long: `verify reports the byte length the OS currently reports for a path.

The value reflects cache-committed state only: a correct size does not mean
the data has reached the physical medium. durcp prints the number with that
caveat so scripts cannot mistake it for a durability check.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	size, err := durafile.NewSizeProbe(nil).Size(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bytes (cache-level metadata; not a durability proof)\n",
		args[0], size)
	return nil
}
