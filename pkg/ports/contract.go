package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ramp/pkg/domain"
	"github.com/aretw0/ramp/pkg/schema"
)

// RunPaletteStoreContract runs a suite of tests to verify that a
// PaletteStore implementation adheres to the defined interface contract.
func RunPaletteStoreContract(t *testing.T, store PaletteStore) {
	ctx := context.Background()
	name := "contract-test-palette-" + time.Now().Format("20060102150405")

	doc := func(n string) *schema.Document {
		return &schema.Document{
			Name:    n,
			Policy:  "Default",
			Version: "0.1.0",
			Wrap:    domain.Wrap{Lines: 16, Columns: 16},
			Elements: []schema.DocumentElement{
				{
					At:      domain.NewAddress(0, 0, 0),
					Element: domain.ColorElement(domain.Color{R: 50, G: 50, B: 78}),
				},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, doc(name))
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, name, loaded.Name)
		assert.Equal(t, "Default", loaded.Policy)
		require.Len(t, loaded.Elements, 1)
		assert.Equal(t, domain.NewAddress(0, 0, 0), loaded.Elements[0].At)
		assert.Equal(t, domain.Color{R: 50, G: 50, B: 78}, loaded.Elements[0].Element.Color)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrPaletteNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, doc(name))
		require.NoError(t, err)

		err = store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrPaletteNotFound, "Load after Delete should return ErrPaletteNotFound")
	})

	t.Run("List", func(t *testing.T) {
		n1 := name + "-1"
		n2 := name + "-2"
		_ = store.Save(ctx, doc(n1))
		_ = store.Save(ctx, doc(n2))

		defer func() {
			_ = store.Delete(ctx, n1)
			_ = store.Delete(ctx, n2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, n1)
		assert.Contains(t, names, n2)
	})
}
