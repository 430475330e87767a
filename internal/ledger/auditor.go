package ledger

import (
	"context"
	"fmt"

	"github.com/xenok69/ECLReborn-backend/internal/apperr"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/store"
)

// Issue décrit un niveau dont le placement stocké ne correspond pas au
// placement attendu dans la séquence 1..N.
type Issue struct {
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	Stored   int    `json:"stored"`
	Expected int    `json:"expected"`
}

// Auditor diagnostique et répare le drift de placement (trous, doublons,
// séquence non contiguë) en travaillant directement sur la collection
// stockée, indépendamment du ledger.
type Auditor struct {
	levels store.LevelStore
}

// NewAuditor crée un auditeur sur un LevelStore
func NewAuditor(levels store.LevelStore) *Auditor {
	return &Auditor{levels: levels}
}

// Diagnose parcourt les niveaux triés par placement stocké en assignant
// expected = 1, 2, 3… et relève chaque écart. L'ordre relatif courant fait
// foi : la réparation préserve cet ordre, pas les valeurs absolues.
func (a *Auditor) Diagnose(ctx context.Context) ([]model.Level, []Issue, error) {
	levels, err := a.levels.List(ctx)
	if err != nil {
		return nil, nil, apperr.Upstream("list levels", err)
	}
	sortByPlacement(levels)

	var issues []Issue
	for i, level := range levels {
		expected := i + 1
		if level.Placement != expected {
			issues = append(issues, Issue{
				ItemID:   level.ID,
				Name:     level.Name,
				Stored:   level.Placement,
				Expected: expected,
			})
		}
	}
	return levels, issues, nil
}

// Repair applique (ou simule si dryRun) les écritures correctives du
// diagnostic. L'application est séquentielle et non atomique : un échec en
// cours laisse certains niveaux renumérotés et d'autres non ; relancer
// Diagnose ensuite pour confirmer la convergence. Idempotent : un second
// passage sans mutation intermédiaire rapporte zéro réparation.
func (a *Auditor) Repair(ctx context.Context, dryRun bool) ([]Issue, error) {
	_, issues, err := a.Diagnose(ctx)
	if err != nil {
		return nil, err
	}
	if dryRun {
		return issues, nil
	}

	for _, issue := range issues {
		if err := a.levels.UpdatePlacement(ctx, issue.ItemID, issue.Expected); err != nil {
			return issues, apperr.Upstream(fmt.Sprintf("repair level %s", issue.ItemID), err)
		}
	}
	return issues, nil
}

// Verify retourne vrai si la séquence de placements est saine
func (a *Auditor) Verify(ctx context.Context) (bool, error) {
	_, issues, err := a.Diagnose(ctx)
	if err != nil {
		return false, err
	}
	return len(issues) == 0, nil
}
