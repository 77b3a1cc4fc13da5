package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "ssc-billing-logger",
		Short:   "SSC billing collection helpers for OpenStack",
		Version: version,
	}

	root.AddCommand(
		newDeletedVolumesCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
