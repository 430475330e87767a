package ledger

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenok69/ECLReborn-backend/internal/apperr"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/store"
)

func seedLedger(t *testing.T, n int) (*Ledger, store.LevelStore) {
	t.Helper()
	mem := store.NewMemory()
	levels := mem.Levels()
	for i := 1; i <= n; i++ {
		err := levels.Upsert(context.Background(), model.Level{
			ID:        fmt.Sprintf("lvl-%d", i),
			Placement: i,
			Name:      fmt.Sprintf("Level %d", i),
		})
		require.NoError(t, err)
	}
	return New(levels, nil), levels
}

func placements(t *testing.T, l *Ledger) []int {
	t.Helper()
	levels, err := l.List(context.Background())
	require.NoError(t, err)
	out := make([]int, len(levels))
	for i, level := range levels {
		out[i] = level.Placement
	}
	return out
}

func idsInOrder(t *testing.T, l *Ledger) []string {
	t.Helper()
	levels, err := l.List(context.Background())
	require.NoError(t, err)
	out := make([]string, len(levels))
	for i, level := range levels {
		out[i] = level.ID
	}
	return out
}

func TestInsertShiftsFollowers(t *testing.T) {
	l, _ := seedLedger(t, 3)

	inserted, err := l.Insert(context.Background(), model.Level{ID: "new", Name: "New"}, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted.Placement)

	// former placement-2 and placement-3 levels become 3 and 4
	assert.Equal(t, []int{1, 2, 3, 4}, placements(t, l))
	assert.Equal(t, []string{"lvl-1", "new", "lvl-2", "lvl-3"}, idsInOrder(t, l))
}

func TestInsertAppendsWhenPlacementUnspecified(t *testing.T) {
	l, _ := seedLedger(t, 3)

	inserted, err := l.Insert(context.Background(), model.Level{ID: "new"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, inserted.Placement)
	assert.Equal(t, []int{1, 2, 3, 4}, placements(t, l))
}

func TestInsertRejectsDuplicateID(t *testing.T) {
	l, _ := seedLedger(t, 2)

	_, err := l.Insert(context.Background(), model.Level{ID: "lvl-1"}, 1)
	assert.True(t, apperr.IsValidation(err))
}

func TestInsertRefusesDriftedList(t *testing.T) {
	l, levels := seedLedger(t, 3)
	require.NoError(t, levels.UpdatePlacement(context.Background(), "lvl-3", 2))

	_, err := l.Insert(context.Background(), model.Level{ID: "new"}, 1)
	assert.ErrorIs(t, err, apperr.ErrDuplicatePlacement)
}

func TestRemoveCompacts(t *testing.T) {
	l, _ := seedLedger(t, 4)

	require.NoError(t, l.Remove(context.Background(), "lvl-2"))

	assert.Equal(t, []int{1, 2, 3}, placements(t, l))
	assert.Equal(t, []string{"lvl-1", "lvl-3", "lvl-4"}, idsInOrder(t, l))
}

func TestRemoveUnknownLevel(t *testing.T) {
	l, _ := seedLedger(t, 2)
	err := l.Remove(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestInsertThenRemoveRoundTrip(t *testing.T) {
	l, _ := seedLedger(t, 5)
	before := idsInOrder(t, l)

	_, err := l.Insert(context.Background(), model.Level{ID: "tmp"}, 3)
	require.NoError(t, err)
	require.NoError(t, l.Remove(context.Background(), "tmp"))

	assert.Equal(t, before, idsInOrder(t, l))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, placements(t, l))
}

func TestMoveDown(t *testing.T) {
	l, _ := seedLedger(t, 5)

	moved, err := l.Move(context.Background(), "lvl-1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, moved.Placement)

	assert.Equal(t, []string{"lvl-2", "lvl-3", "lvl-4", "lvl-1", "lvl-5"}, idsInOrder(t, l))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, placements(t, l))
}

func TestMoveUp(t *testing.T) {
	l, _ := seedLedger(t, 5)

	moved, err := l.Move(context.Background(), "lvl-4", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, moved.Placement)

	assert.Equal(t, []string{"lvl-1", "lvl-4", "lvl-2", "lvl-3", "lvl-5"}, idsInOrder(t, l))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, placements(t, l))
}

func TestMoveValidatesRange(t *testing.T) {
	l, _ := seedLedger(t, 3)

	_, err := l.Move(context.Background(), "lvl-1", 0)
	assert.True(t, apperr.IsValidation(err))

	_, err = l.Move(context.Background(), "lvl-1", 4)
	assert.True(t, apperr.IsValidation(err))

	_, err = l.Move(context.Background(), "ghost", 2)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateKeepsPlacement(t *testing.T) {
	l, _ := seedLedger(t, 3)

	updated, err := l.Update(context.Background(), model.Level{
		ID:        "lvl-2",
		Placement: 99, // ignoré : le placement appartient au ledger
		Name:      "Renamed",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Placement)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestListAlwaysSorted(t *testing.T) {
	mem := store.NewMemory()
	levels := mem.Levels()
	// Insertion dans le désordre
	for _, p := range []int{3, 1, 2} {
		require.NoError(t, levels.Upsert(context.Background(), model.Level{
			ID:        fmt.Sprintf("lvl-%d", p),
			Placement: p,
		}))
	}
	l := New(levels, nil)
	assert.Equal(t, []int{1, 2, 3}, placements(t, l))
}

func TestListDerivesPoints(t *testing.T) {
	l, _ := seedLedger(t, 3)

	levels, err := l.List(context.Background())
	require.NoError(t, err)
	require.Len(t, levels, 3)
	assert.Equal(t, 150, levels[0].Points)
	assert.Equal(t, 76, levels[1].Points)
	assert.Equal(t, 1, levels[2].Points)
}

func TestGetDerivesPoints(t *testing.T) {
	l, _ := seedLedger(t, 3)

	level, err := l.Get(context.Background(), "lvl-1")
	require.NoError(t, err)
	assert.Equal(t, 150, level.Points)
}

func TestInsertReturnsPoints(t *testing.T) {
	l, _ := seedLedger(t, 2)

	created, err := l.Insert(context.Background(), model.Level{ID: "lvl-new", Name: "New"}, 1)
	require.NoError(t, err)
	assert.Equal(t, 150, created.Points)
}
