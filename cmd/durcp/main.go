// durcp is a thin CLI over the durafile library: it copies a file and
// reports which durability tier the copy reached.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
