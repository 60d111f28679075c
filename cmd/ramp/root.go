package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ramp",
	Short: "Ramp is a structured color palette engine",
	Long: `Ramp stores colors as a dependency graph: raw values and generated ramps
addressed by page:line:column, edited only through reversible operations.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("name", "palette", "Name for a freshly created palette")
	rootCmd.PersistentFlags().String("policy", "Default", "Format policy: Default, Small or ZScreen")
	rootCmd.PersistentFlags().StringP("file", "f", "", "Palette document to load (YAML)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable verbose logging")
}

// optionsFromFlags collects the persistent flags into CLI options.
func optionsFromFlags(cmd *cobra.Command) (name, policy, file string, debug bool) {
	name, _ = cmd.Flags().GetString("name")
	policy, _ = cmd.Flags().GetString("policy")
	file, _ = cmd.Flags().GetString("file")
	debug, _ = cmd.Flags().GetBool("debug")
	return
}
