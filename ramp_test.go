package ramp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ramp"
	"github.com/aretw0/ramp/pkg/domain"
	"github.com/aretw0/ramp/pkg/engine"
	"github.com/aretw0/ramp/pkg/policy"
)

func buildSunset(t *testing.T) *ramp.Palette {
	t.Helper()
	pal := ramp.New("sunset")
	t.Cleanup(pal.Close)

	ctx := context.Background()
	a := domain.NewAddress(0, 0, 0)
	b := domain.NewAddress(0, 0, 1)

	_, err := pal.Apply(ctx, domain.InsertColor(domain.NewColor(50, 50, 78), a, false))
	require.NoError(t, err)
	_, err = pal.Apply(ctx, domain.InsertColor(domain.NewColor(0, 0, 255), b, false))
	require.NoError(t, err)
	_, err = pal.Apply(ctx, domain.InsertRamp(a, b, 6, domain.NewAddress(0, 1, 0), false))
	require.NoError(t, err)
	return pal
}

func TestPaletteLifecycle(t *testing.T) {
	pal := buildSunset(t)

	d := pal.Describe()
	assert.Equal(t, "sunset", d.Name)
	assert.Equal(t, 8, d.Elements)
	assert.Equal(t, 3, d.HistoryDepth)

	entries, err := pal.Entries(domain.PatternLine(0, 1))
	require.NoError(t, err)
	assert.Len(t, entries, 6)

	c, err := pal.ValueOf(domain.NewAddress(0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, "#32324E", c.Hex())

	order, err := pal.OrderOf(domain.NewAddress(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, order)
}

func TestPaletteUndoRedo(t *testing.T) {
	pal := buildSunset(t)
	ctx := context.Background()

	require.NoError(t, pal.Undo(ctx))
	assert.Equal(t, 2, pal.Describe().Elements)

	require.NoError(t, pal.Redo(ctx))
	assert.Equal(t, 8, pal.Describe().Elements)

	assert.ErrorIs(t, pal.Redo(ctx), domain.ErrNothingToRedo)
}

func TestPaletteDocumentRoundTrip(t *testing.T) {
	pal := buildSunset(t)

	doc, err := pal.Document()
	require.NoError(t, err)

	clone, err := ramp.Open(doc)
	require.NoError(t, err)
	t.Cleanup(clone.Close)

	srcEntries, err := pal.Entries(domain.PatternAll())
	require.NoError(t, err)
	dstEntries, err := clone.Entries(domain.PatternAll())
	require.NoError(t, err)
	assert.Equal(t, srcEntries, dstEntries)

	// Reopened palettes start with an empty history.
	assert.Equal(t, 0, clone.Describe().HistoryDepth)
}

func TestPaletteWithPolicy(t *testing.T) {
	pal := ramp.New("tiny", ramp.WithPolicy(policy.Small()))
	t.Cleanup(pal.Close)

	_, err := pal.Apply(context.Background(),
		domain.InsertColor(domain.NewColor(1, 1, 1), domain.NewAddress(8, 0, 0), false))
	assert.ErrorIs(t, err, domain.ErrAddressOutOfRange)
	assert.Equal(t, "Small", pal.Policy().Name)
}

func TestPaletteHooks(t *testing.T) {
	applied := 0
	pal := ramp.New("hooked", ramp.WithHooks(engine.Hooks{
		OnApply: func(domain.Summary) { applied++ },
	}))
	t.Cleanup(pal.Close)

	_, err := pal.Apply(context.Background(),
		domain.InsertColor(domain.NewColor(1, 1, 1), domain.NewAddress(0, 0, 0), false))
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
}
