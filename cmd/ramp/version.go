package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/ramp"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ramp",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ramp version %s\n", strings.TrimSpace(ramp.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
