package policy

import (
	"fmt"

	"github.com/aretw0/ramp/pkg/domain"
)

// Default is the unconstrained policy: 256 pages of 16x16, every element
// kind permitted, no export limit.
func Default() Policy {
	return Policy{
		Name:       "Default",
		Version:    "1.0.0",
		Wrap:       domain.Wrap{Columns: 16, Lines: 16},
		MaxPages:   256,
		MaxLines:   16,
		MaxColumns: 16,
	}
}

// Small is a compact policy for short palettes: 8 pages of 16x16.
func Small() Policy {
	return Policy{
		Name:       "Small",
		Version:    "0.1.0",
		Wrap:       domain.Wrap{Columns: 16, Lines: 16},
		MaxPages:   8,
		MaxLines:   16,
		MaxColumns: 16,
	}
}

// ZScreen mirrors the tiled-screen palette layout of the reference format:
// a "Main" page followed by level pages, 16x16 wrap, capped export size.
// Line groups on the main page carry CSET labels.
func ZScreen() Policy {
	return Policy{
		Name:              "ZScreen",
		Version:           "1.0.0",
		Wrap:              domain.Wrap{Columns: 16, Lines: 16},
		MaxPages:          515,
		MaxLines:          16,
		MaxColumns:        16,
		MaxExportElements: 512 * 16 * 16,
		PageName: func(page int) string {
			switch {
			case page == 0:
				return "Main"
			case page <= 512:
				return fmt.Sprintf("Level %d", page)
			default:
				return fmt.Sprintf("Sprite Page %d", page)
			}
		},
		LineName: func(page, line int) string {
			if page == 0 {
				return fmt.Sprintf("Main CSET %d", line)
			}
			if page <= 512 {
				return fmt.Sprintf("CSET %d", line)
			}
			return fmt.Sprintf("Sprite CSET %d", page-512+line)
		},
	}
}
