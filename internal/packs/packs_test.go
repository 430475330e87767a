package packs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenok69/ECLReborn-backend/internal/ledger"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/store"
)

func fixture(t *testing.T) (*Aggregator, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		require.NoError(t, mem.Levels().Upsert(ctx, model.Level{
			ID:        fmt.Sprintf("lvl-%d", i),
			Placement: i,
		}))
	}
	return New(ledger.New(mem.Levels(), nil), mem.Packs(), mem.Users()), mem
}

func TestResolveDropsDanglingIDs(t *testing.T) {
	a, _ := fixture(t)

	pack := model.Pack{ID: "p1", ItemIDs: []string{"lvl-2", "ghost", "lvl-4"}}
	resolved, err := a.Resolve(context.Background(), pack)
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, "lvl-2", resolved[0].ID)
	assert.Equal(t, "lvl-4", resolved[1].ID)
}

func TestProgressPercentBounds(t *testing.T) {
	a, mem := fixture(t)
	ctx := context.Background()

	require.NoError(t, mem.Users().Upsert(ctx, model.UserActivity{
		UserID: "u1",
		CompletedItems: []model.CompletedItem{
			{ItemID: "lvl-1", CompletedAt: time.Now()},
			{ItemID: "lvl-2", CompletedAt: time.Now()},
		},
	}))

	pack := model.Pack{ID: "p1", ItemIDs: []string{"lvl-1", "lvl-2", "lvl-3"}}
	progress, err := a.Progress(ctx, "u1", pack)
	require.NoError(t, err)
	assert.Equal(t, 2, progress.CompletedInPack)
	assert.Equal(t, 67, progress.Percent) // round(200/3)
	assert.False(t, progress.Completed)
	assert.GreaterOrEqual(t, progress.Percent, 0)
	assert.LessOrEqual(t, progress.Percent, 100)
}

func TestProgressEmptyPack(t *testing.T) {
	a, _ := fixture(t)

	progress, err := a.Progress(context.Background(), "u1", model.Pack{ID: "empty"})
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Percent)
	assert.Equal(t, 0, progress.TotalInPack)
}

func TestProgressUnknownUser(t *testing.T) {
	a, _ := fixture(t)

	progress, err := a.Progress(context.Background(), "ghost", model.Pack{ID: "p1", ItemIDs: []string{"lvl-1"}})
	require.NoError(t, err)
	assert.Equal(t, 0, progress.CompletedInPack)
}

func TestCompletedFlagIndependentOfPercent(t *testing.T) {
	a, mem := fixture(t)
	ctx := context.Background()

	// Pack marqué complété alors que la couverture n'est pas de 100%
	// (attribution manuelle) : les deux champs divergent volontairement.
	require.NoError(t, mem.Users().Upsert(ctx, model.UserActivity{
		UserID:         "u1",
		CompletedPacks: []model.CompletedPack{{PackID: "p1", CompletedAt: time.Now()}},
	}))

	progress, err := a.Progress(ctx, "u1", model.Pack{ID: "p1", ItemIDs: []string{"lvl-1"}})
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Percent)
	assert.True(t, progress.Completed)
}

func TestBonusPointsSkipsMissingPacks(t *testing.T) {
	a, mem := fixture(t)
	ctx := context.Background()

	require.NoError(t, mem.Packs().Upsert(ctx, model.Pack{ID: "p1", BonusPoints: 25}))
	require.NoError(t, mem.Packs().Upsert(ctx, model.Pack{ID: "p2", BonusPoints: 40}))
	require.NoError(t, mem.Users().Upsert(ctx, model.UserActivity{
		UserID: "u1",
		CompletedPacks: []model.CompletedPack{
			{PackID: "p1", CompletedAt: time.Now()},
			{PackID: "deleted", CompletedAt: time.Now()},
			{PackID: "p2", CompletedAt: time.Now()},
		},
	}))

	total, err := a.BonusPoints(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 65, total)
}

func TestBonusPointsUnknownUser(t *testing.T) {
	a, _ := fixture(t)
	total, err := a.BonusPoints(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestProgressAllHonorsCancellation(t *testing.T) {
	a, mem := fixture(t)
	require.NoError(t, mem.Packs().Upsert(context.Background(), model.Pack{ID: "p1"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := a.ProgressAll(ctx, "u1")
	assert.ErrorIs(t, err, context.Canceled)
}
