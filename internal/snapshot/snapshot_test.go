package snapshot

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenok69/ECLReborn-backend/internal/ledger"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/store"
)

type capturePublisher struct {
	target string
	snap   model.Snapshot
}

func (c *capturePublisher) Publish(_ context.Context, target string, snap model.Snapshot) error {
	c.target = target
	c.snap = snap
	return nil
}

func TestExportOrdersAndScores(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	// Insertion volontairement dans le désordre
	for _, p := range []int{3, 1, 2} {
		require.NoError(t, mem.Levels().Upsert(ctx, model.Level{
			ID:        fmt.Sprintf("lvl-%d", p),
			Placement: p,
		}))
	}
	e := NewExporter(ledger.New(mem.Levels(), nil), nil)

	snap, err := e.Export(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Levels, 3)
	assert.False(t, snap.Metadata.LastUpdated.IsZero())

	assert.Equal(t, []int{1, 2, 3}, []int{snap.Levels[0].Placement, snap.Levels[1].Placement, snap.Levels[2].Placement})
	assert.Equal(t, 150, snap.Levels[0].Points)
	assert.Equal(t, 76, snap.Levels[1].Points)
	assert.Equal(t, 1, snap.Levels[2].Points)
}

func TestExportTo(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Levels().Upsert(ctx, model.Level{ID: "lvl-1", Placement: 1}))
	e := NewExporter(ledger.New(mem.Levels(), nil), nil)

	pub := &capturePublisher{}
	snap, err := e.ExportTo(ctx, pub, "list-history")
	require.NoError(t, err)
	assert.Equal(t, "list-history", pub.target)
	assert.Len(t, pub.snap.Levels, 1)
	assert.Equal(t, snap.Metadata.LastUpdated, pub.snap.Metadata.LastUpdated)
}
