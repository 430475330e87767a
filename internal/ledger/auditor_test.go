package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/store"
)

func TestDiagnoseCleanList(t *testing.T) {
	_, levels := seedLedger(t, 5)
	a := NewAuditor(levels)

	all, issues, err := a.Diagnose(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Empty(t, issues)

	ok, err := a.Verify(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDiagnoseFindsGap(t *testing.T) {
	_, levels := seedLedger(t, 4)
	// lvl-3 saute de 3 à 7 : trou dans la séquence
	require.NoError(t, levels.UpdatePlacement(context.Background(), "lvl-3", 7))
	a := NewAuditor(levels)

	_, issues, err := a.Diagnose(context.Background())
	require.NoError(t, err)
	require.Len(t, issues, 2)
	// lvl-4 (stocké 4, attendu 3) puis lvl-3 (stocké 7, attendu 4)
	assert.Equal(t, "lvl-4", issues[0].ItemID)
	assert.Equal(t, 3, issues[0].Expected)
	assert.Equal(t, "lvl-3", issues[1].ItemID)
	assert.Equal(t, 4, issues[1].Expected)

	ok, err := a.Verify(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepairDryRunDoesNotWrite(t *testing.T) {
	_, levels := seedLedger(t, 3)
	require.NoError(t, levels.UpdatePlacement(context.Background(), "lvl-1", 9))
	a := NewAuditor(levels)

	planned, err := a.Repair(context.Background(), true)
	require.NoError(t, err)
	assert.NotEmpty(t, planned)

	// Rien n'a été appliqué
	ok, err := a.Verify(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepairConvergesAndIsIdempotent(t *testing.T) {
	_, levels := seedLedger(t, 5)
	ctx := context.Background()
	// Doublon + trou
	require.NoError(t, levels.UpdatePlacement(ctx, "lvl-2", 4))
	require.NoError(t, levels.UpdatePlacement(ctx, "lvl-5", 11))
	a := NewAuditor(levels)

	applied, err := a.Repair(ctx, false)
	require.NoError(t, err)
	assert.NotEmpty(t, applied)

	// Convergence : plus aucun écart
	_, issues, err := a.Diagnose(ctx)
	require.NoError(t, err)
	assert.Empty(t, issues)

	// Idempotence : la seconde passe ne répare rien
	applied, err = a.Repair(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestRepairPreservesRelativeOrder(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	levels := mem.Levels()
	// Placements stockés 2, 5, 9 : l'ordre relatif b < e < i fait foi
	for _, lv := range []model.Level{
		{ID: "b", Placement: 2},
		{ID: "e", Placement: 5},
		{ID: "i", Placement: 9},
	} {
		require.NoError(t, levels.Upsert(ctx, lv))
	}
	a := NewAuditor(levels)

	_, err := a.Repair(ctx, false)
	require.NoError(t, err)

	all, issues, err := a.Diagnose(ctx)
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, all, 3)
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, "e", all[1].ID)
	assert.Equal(t, "i", all[2].ID)
	assert.Equal(t, []int{1, 2, 3}, []int{all[0].Placement, all[1].Placement, all[2].Placement})
}
