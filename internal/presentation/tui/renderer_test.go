package tui

import (
	"strings"
	"testing"

	"github.com/aretw0/ramp/pkg/domain"
	"github.com/aretw0/ramp/pkg/policy"
)

func sampleEntries() []domain.Entry {
	return []domain.Entry{
		{Address: domain.NewAddress(0, 0, 0), Color: domain.NewColor(50, 50, 78), Order: 0},
		{Address: domain.NewAddress(0, 0, 1), Color: domain.NewColor(0, 0, 255), Order: 0},
		{Address: domain.NewAddress(0, 1, 0), Color: domain.NewColor(43, 43, 103), Order: 2},
		{Address: domain.NewAddress(1, 0, 0), Color: domain.NewColor(255, 0, 0), Order: 0},
	}
}

func TestRenderPlain(t *testing.T) {
	var sb strings.Builder
	r := NewRenderer(&sb)

	meta := domain.Describe{
		Pages:        2,
		Elements:     4,
		Wrap:         domain.Wrap{Lines: 16, Columns: 16},
		HistoryDepth: 3,
	}
	if err := r.Render(policy.Default(), meta, sampleEntries()); err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	lines := strings.Split(out, "\n")
	if lines[0] != "Default 1.0.0 [History: 3 items]" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "[2 pages] [4 elements] [wrap 16:16]" {
		t.Errorf("metadata = %q", lines[1])
	}

	for _, want := range []string{
		"Page 0:",
		"Page 1:",
		"  00:00:00  #32324E  0",
		"  00:00:01  #0000FF  0",
		"  00:01:00  #2B2B67  2",
		"  01:00:00  #FF0000  0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderNamedPagesAndLines(t *testing.T) {
	var sb strings.Builder
	r := NewRenderer(&sb)

	meta := domain.Describe{Pages: 1, Elements: 1, Wrap: domain.Wrap{Lines: 16, Columns: 16}}
	entries := []domain.Entry{
		{Address: domain.NewAddress(0, 2, 0), Color: domain.NewColor(1, 2, 3), Order: 0},
	}
	if err := r.Render(policy.ZScreen(), meta, entries); err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	if !strings.Contains(out, `Page 0 "Main":`) {
		t.Errorf("missing named page header:\n%s", out)
	}
	if !strings.Contains(out, "Main CSET 2:") {
		t.Errorf("missing line group label:\n%s", out)
	}
}

func TestRenderEmptyPalette(t *testing.T) {
	var sb strings.Builder
	r := NewRenderer(&sb)

	meta := domain.Describe{Wrap: domain.Wrap{Lines: 16, Columns: 16}}
	if err := r.Render(policy.Small(), meta, nil); err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	if !strings.HasPrefix(out, "Small 0.1.0 [History: 0 items]") {
		t.Errorf("header = %q", out)
	}
	if strings.Contains(out, "Page") {
		t.Errorf("empty palette should list no pages:\n%s", out)
	}
}
