package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner with the library version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`  _ __ __ _ _ __ ___  _ __ `, "#f97316"},
		{` | '__/ _' | '_ ' _ \| '_ \`, "#fb923c"},
		{` | | | (_| | | | | | | |_) |`, "#fdba74"},
		{` |_|  \__,_|_| |_| |_| .__/`, "#fed7aa"},
		{`                     |_|   `, "#ffedd5"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Printf("  v%s\n\n", strings.TrimSpace(version))
}
