package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/ramp"
	"github.com/aretw0/ramp/internal/cli"
	"github.com/aretw0/ramp/pkg/schema"
)

var exportCmd = &cobra.Command{
	Use:   "export [output]",
	Short: "Export a palette document as YAML",
	Long: `Loads a palette (--file) and writes its normalized document to the given
output path, or to stdout when no path is given. The policy's export element
limit applies.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name, pol, file, debug := optionsFromFlags(cmd)

		logger := cli.NewLogger(debug)
		pal, err := cli.CreatePalette(cli.Options{File: file, Name: name, Policy: pol, Debug: debug}, logger)
		if err != nil {
			fmt.Printf("Error loading palette: %v\n", err)
			os.Exit(1)
		}
		defer pal.Close()

		if len(args) == 0 {
			doc, err := pal.Document()
			if err != nil {
				fmt.Printf("Error exporting palette: %v\n", err)
				os.Exit(1)
			}
			if err := schema.EncodeYAML(os.Stdout, doc); err != nil {
				fmt.Printf("Error encoding palette: %v\n", err)
				os.Exit(1)
			}
			return
		}

		if err := writeDocument(pal, args[0]); err != nil {
			fmt.Printf("Error exporting palette: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Palette exported to %s\n", args[0])
	},
}

// writeDocument exports the palette document to a file.
func writeDocument(pal *ramp.Palette, path string) error {
	doc, err := pal.Document()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return schema.EncodeYAML(f, doc)
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
