package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/ramp"
	"github.com/aretw0/ramp/internal/cli"
	"github.com/aretw0/ramp/internal/presentation/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Build and display a small demo palette",
	Long: `Creates a palette with two endpoint colors and a six step ramp between
them, then prints the listing. With --save the palette document is written
to the given file.`,
	Run: func(cmd *cobra.Command, args []string) {
		name, pol, _, debug := optionsFromFlags(cmd)
		save, _ := cmd.Flags().GetString("save")

		logger := cli.NewLogger(debug)
		pal, err := cli.CreatePalette(cli.Options{Name: name, Policy: pol, Debug: debug}, logger)
		if err != nil {
			fmt.Printf("Error initializing palette: %v\n", err)
			os.Exit(1)
		}
		defer pal.Close()

		tui.PrintBanner(ramp.Version)

		if err := cli.SeedDemo(context.Background(), pal); err != nil {
			fmt.Printf("Error seeding palette: %v\n", err)
			os.Exit(1)
		}
		if err := cli.RenderPalette(os.Stdout, pal); err != nil {
			fmt.Printf("Error rendering palette: %v\n", err)
			os.Exit(1)
		}

		if save != "" {
			if err := writeDocument(pal, save); err != nil {
				fmt.Printf("Error saving palette: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("\nPalette saved to %s\n", save)
		}
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().String("save", "", "Write the palette document to this file")
}
