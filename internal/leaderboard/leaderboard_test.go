package leaderboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenok69/ECLReborn-backend/internal/apperr"
	"github.com/xenok69/ECLReborn-backend/internal/ledger"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/packs"
	"github.com/xenok69/ECLReborn-backend/internal/store"
)

func fixture(t *testing.T, levelCount int) (*Aggregator, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	ctx := context.Background()
	for i := 1; i <= levelCount; i++ {
		require.NoError(t, mem.Levels().Upsert(ctx, model.Level{
			ID:        fmt.Sprintf("lvl-%d", i),
			Placement: i,
		}))
	}
	l := ledger.New(mem.Levels(), nil)
	p := packs.New(l, mem.Packs(), mem.Users())
	return New(l, p, mem.Users(), nil), mem
}

func completions(ids ...string) []model.CompletedItem {
	out := make([]model.CompletedItem, len(ids))
	for i, id := range ids {
		out[i] = model.CompletedItem{ItemID: id, CompletedAt: time.Now()}
	}
	return out
}

func TestBoardOrdering(t *testing.T) {
	a, mem := fixture(t, 3)
	ctx := context.Background()

	// N=3 : points(1)=150, points(2)=76, points(3)=1
	require.NoError(t, mem.Users().Upsert(ctx, model.UserActivity{
		UserID: "top", Username: "top", CompletedItems: completions("lvl-1", "lvl-2"),
	}))
	require.NoError(t, mem.Users().Upsert(ctx, model.UserActivity{
		UserID: "mid", Username: "mid", CompletedItems: completions("lvl-2"),
	}))
	require.NoError(t, mem.Users().Upsert(ctx, model.UserActivity{
		UserID: "none", Username: "none",
	}))

	entries, err := a.Board(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "top", entries[0].UserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 226, entries[0].Total)

	assert.Equal(t, "mid", entries[1].UserID)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 76, entries[1].Total)

	// aucun complété = total 0
	assert.Equal(t, "none", entries[2].UserID)
	assert.Equal(t, 0, entries[2].Total)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestBoardIncludesPackBonuses(t *testing.T) {
	a, mem := fixture(t, 3)
	ctx := context.Background()

	require.NoError(t, mem.Packs().Upsert(ctx, model.Pack{ID: "p1", BonusPoints: 50}))
	require.NoError(t, mem.Users().Upsert(ctx, model.UserActivity{
		UserID:         "u1",
		Username:       "u1",
		CompletedItems: completions("lvl-3"),
		CompletedPacks: []model.CompletedPack{{PackID: "p1", CompletedAt: time.Now()}},
	}))

	entries, err := a.Board(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].LevelPoints)
	assert.Equal(t, 50, entries[0].PackPoints)
	assert.Equal(t, 51, entries[0].Total)
}

func TestBoardSkipsDanglingCompletions(t *testing.T) {
	a, mem := fixture(t, 2)
	ctx := context.Background()

	require.NoError(t, mem.Users().Upsert(ctx, model.UserActivity{
		UserID: "u1", Username: "u1", CompletedItems: completions("lvl-1", "deleted"),
	}))

	entries, err := a.Board(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 150, entries[0].Total)
}

func TestUserRank(t *testing.T) {
	a, mem := fixture(t, 2)
	ctx := context.Background()

	require.NoError(t, mem.Users().Upsert(ctx, model.UserActivity{
		UserID: "u1", Username: "u1", CompletedItems: completions("lvl-1"),
	}))
	require.NoError(t, mem.Users().Upsert(ctx, model.UserActivity{
		UserID: "u2", Username: "u2",
	}))

	rank, err := a.UserRank(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 2, rank.Rank)
	assert.Equal(t, 2, rank.TotalUsers)
	assert.Equal(t, 100.0, rank.Percentile)

	_, err = a.UserRank(ctx, "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestProfilePrunesDeletedLevels(t *testing.T) {
	a, mem := fixture(t, 2)
	ctx := context.Background()

	require.NoError(t, mem.Users().Upsert(ctx, model.UserActivity{
		UserID: "u1", Username: "u1", CompletedItems: completions("lvl-1", "deleted", "lvl-2"),
	}))

	profile, err := a.Profile(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, profile.CompletedItems, 2)

	// la purge est persistée (auto-réparation)
	stored, err := mem.Users().Get(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, stored.CompletedItems, 2)
}

func TestTotalsUnknownUserIsZero(t *testing.T) {
	a, _ := fixture(t, 3)
	levelPoints, packPoints, err := a.Totals(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, 0, levelPoints)
	assert.Equal(t, 0, packPoints)
}

func TestBoardHonorsCancellation(t *testing.T) {
	a, mem := fixture(t, 1)
	require.NoError(t, mem.Users().Upsert(context.Background(), model.UserActivity{UserID: "u1"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := a.Board(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTiedTotalsKeepStableOrder(t *testing.T) {
	a, mem := fixture(t, 2)
	ctx := context.Background()

	require.NoError(t, mem.Users().Upsert(ctx, model.UserActivity{UserID: "a", Username: "a"}))
	require.NoError(t, mem.Users().Upsert(ctx, model.UserActivity{UserID: "b", Username: "b"}))

	first, err := a.Board(ctx)
	require.NoError(t, err)
	second, err := a.Board(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)
	// même entrée, même ordre d'une requête à l'autre
	assert.Equal(t, first[0].UserID, second[0].UserID)
	assert.Equal(t, first[1].UserID, second[1].UserID)
}
