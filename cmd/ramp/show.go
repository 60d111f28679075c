package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/ramp/internal/cli"
	"github.com/aretw0/ramp/pkg/domain"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display a palette document",
	Long: `Loads a palette document (--file) and prints the listing: header with
policy label and history depth, metadata line, then per page blocks of
Address  Color  Order rows. An optional match pattern limits the listing,
e.g. "0:*:*" for page 0.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name, pol, file, debug := optionsFromFlags(cmd)
		if file == "" {
			fmt.Println("show requires --file")
			os.Exit(1)
		}

		pat := domain.PatternAll()
		if len(args) == 1 {
			var err error
			pat, err = domain.ParsePattern(args[0])
			if err != nil {
				fmt.Printf("Invalid pattern: %v\n", err)
				os.Exit(1)
			}
		}

		logger := cli.NewLogger(debug)
		pal, err := cli.CreatePalette(cli.Options{File: file, Name: name, Policy: pol, Debug: debug}, logger)
		if err != nil {
			fmt.Printf("Error loading palette: %v\n", err)
			os.Exit(1)
		}
		defer pal.Close()

		if pat == domain.PatternAll() {
			if err := cli.RenderPalette(os.Stdout, pal); err != nil {
				fmt.Printf("Error rendering palette: %v\n", err)
				os.Exit(1)
			}
			return
		}

		entries, err := pal.Entries(pat)
		if err != nil {
			fmt.Printf("Error querying palette: %v\n", err)
			os.Exit(1)
		}
		for _, e := range entries {
			fmt.Printf("%s  %s  %d\n", e.Address.HexString(), e.Color.Hex(), e.Order)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
