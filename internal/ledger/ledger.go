// Package ledger détient la collection ordonnée des niveaux classés et fait
// respecter l'invariant de contiguïté : pour N niveaux, les placements forment
// exactement {1..N}. Toute mutation de placement passe par ici ; aucun autre
// composant n'écrit le placement directement.
//
// Le store ne propose pas de transaction multi-lignes : chaque décalage est
// calculé en une passe en mémoire sur la collection complète puis persisté
// ligne par ligne. Un échec en cours de route laisse un drift que l'auditeur
// détecte et répare ; aucun rollback automatique n'est tenté.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/xenok69/ECLReborn-backend/internal/apperr"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/scoring"
	"github.com/xenok69/ECLReborn-backend/internal/store"
)

// Ledger est le registre de placement de la liste
type Ledger struct {
	levels store.LevelStore
	points scoring.Func
}

// New crée un ledger sur un LevelStore. points nil = barème par défaut.
func New(levels store.LevelStore, points scoring.Func) *Ledger {
	if points == nil {
		points = scoring.Points
	}
	return &Ledger{levels: levels, points: points}
}

// List retourne les niveaux triés par placement croissant, points dérivés.
// L'ordre natif du store ne fait jamais foi : on retrie toujours explicitement.
func (l *Ledger) List(ctx context.Context) ([]model.Level, error) {
	levels, err := l.levels.List(ctx)
	if err != nil {
		return nil, apperr.Upstream("list levels", err)
	}
	sortByPlacement(levels)
	l.applyPoints(levels)
	return levels, nil
}

// Get retourne un niveau par identifiant stable, points dérivés
func (l *Ledger) Get(ctx context.Context, id string) (*model.Level, error) {
	level, err := l.levels.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	n, err := l.Count(ctx)
	if err != nil {
		return nil, err
	}
	level.Points = l.pointsFor(level.Placement, n)
	return level, nil
}

// applyPoints dérive la valeur en points de chaque niveau à partir de
// (placement, N). Jamais persisté : recalculé à chaque lecture car N change.
func (l *Ledger) applyPoints(levels []model.Level) {
	n := len(levels)
	for i := range levels {
		levels[i].Points = l.pointsFor(levels[i].Placement, n)
	}
}

// pointsFor vaut 0 quand le placement est hors domaine (liste en drift) :
// une lecture dégrade, elle n'échoue pas.
func (l *Ledger) pointsFor(placement, n int) int {
	pts, err := l.points(placement, n)
	if err != nil {
		return 0
	}
	return pts
}

// Insert insère le niveau au placement demandé et décale d'un cran tout
// niveau au placement supérieur ou égal. at hors de [1, N+1] (notamment 0,
// placement non précisé) = ajout en fin de liste.
//
// Le ledger refuse d'insérer dans une liste déjà en drift : décaler par-dessus
// un doublon aggraverait l'incohérence. Réparer d'abord via l'auditeur.
func (l *Ledger) Insert(ctx context.Context, level model.Level, at int) (model.Level, error) {
	if level.ID == "" {
		return model.Level{}, apperr.Validation("id", "required")
	}

	levels, err := l.levels.List(ctx)
	if err != nil {
		return model.Level{}, apperr.Upstream("list levels", err)
	}
	if err := checkNoDuplicates(levels); err != nil {
		return model.Level{}, err
	}
	for _, existing := range levels {
		if existing.ID == level.ID {
			return model.Level{}, apperr.Validation("id", fmt.Sprintf("level %s already exists", level.ID))
		}
	}

	n := len(levels)
	if at < 1 || at > n+1 {
		at = n + 1
	}

	// Décalage en mémoire, persistance du haut vers le bas pour ne jamais
	// créer de doublon transitoire côté store.
	sortByPlacement(levels)
	var shifted []model.Level
	for _, existing := range levels {
		if existing.Placement >= at {
			existing.Placement++
			shifted = append(shifted, existing)
		}
	}
	for i := len(shifted) - 1; i >= 0; i-- {
		if err := l.levels.UpdatePlacement(ctx, shifted[i].ID, shifted[i].Placement); err != nil {
			return model.Level{}, apperr.Upstream(fmt.Sprintf("shift level %s", shifted[i].ID), err)
		}
	}

	level.Placement = at
	now := time.Now()
	level.CreatedAt = now
	level.UpdatedAt = now
	if err := l.levels.Upsert(ctx, level); err != nil {
		return model.Level{}, apperr.Upstream(fmt.Sprintf("insert level %s", level.ID), err)
	}
	level.Points = l.pointsFor(level.Placement, n+1)
	return level, nil
}

// Remove supprime le niveau puis compacte : tout placement supérieur au
// placement supprimé recule d'un cran.
func (l *Ledger) Remove(ctx context.Context, id string) error {
	levels, err := l.levels.List(ctx)
	if err != nil {
		return apperr.Upstream("list levels", err)
	}
	if err := checkNoDuplicates(levels); err != nil {
		return err
	}

	var removed *model.Level
	for i := range levels {
		if levels[i].ID == id {
			removed = &levels[i]
			break
		}
	}
	if removed == nil {
		return apperr.ErrNotFound
	}

	if err := l.levels.Delete(ctx, id); err != nil {
		return apperr.Upstream(fmt.Sprintf("delete level %s", id), err)
	}

	// Compactage du bas vers le haut
	sortByPlacement(levels)
	for _, existing := range levels {
		if existing.ID == id || existing.Placement <= removed.Placement {
			continue
		}
		if err := l.levels.UpdatePlacement(ctx, existing.ID, existing.Placement-1); err != nil {
			return apperr.Upstream(fmt.Sprintf("compact level %s", existing.ID), err)
		}
	}
	return nil
}

// Move déplace un niveau vers un nouveau placement. Traité comme un
// remove+insert calculé en une seule passe triée par placement courant, pour
// ne pas dupliquer la logique de décalage ni créer de doublon transitoire.
func (l *Ledger) Move(ctx context.Context, id string, newPlacement int) (model.Level, error) {
	levels, err := l.levels.List(ctx)
	if err != nil {
		return model.Level{}, apperr.Upstream("list levels", err)
	}
	if err := checkNoDuplicates(levels); err != nil {
		return model.Level{}, err
	}

	sortByPlacement(levels)
	idx := -1
	for i := range levels {
		if levels[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.Level{}, apperr.ErrNotFound
	}

	n := len(levels)
	if newPlacement < 1 || newPlacement > n {
		return model.Level{}, apperr.Validation("placement", fmt.Sprintf("must be between 1 and %d", n))
	}

	// Retirer puis réinsérer dans l'ordre, renuméroter 1..N
	moved := levels[idx]
	rest := append(append([]model.Level{}, levels[:idx]...), levels[idx+1:]...)
	reordered := make([]model.Level, 0, n)
	reordered = append(reordered, rest[:newPlacement-1]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, rest[newPlacement-1:]...)

	var result model.Level
	for i := range reordered {
		expected := i + 1
		if reordered[i].Placement == expected {
			if reordered[i].ID == id {
				result = reordered[i]
			}
			continue
		}
		if err := l.levels.UpdatePlacement(ctx, reordered[i].ID, expected); err != nil {
			return model.Level{}, apperr.Upstream(fmt.Sprintf("move level %s", reordered[i].ID), err)
		}
		reordered[i].Placement = expected
		if reordered[i].ID == id {
			result = reordered[i]
		}
	}
	result.Points = l.pointsFor(result.Placement, n)
	return result, nil
}

// Update remplace les champs descriptifs d'un niveau sans toucher au placement
func (l *Ledger) Update(ctx context.Context, level model.Level) (model.Level, error) {
	current, err := l.levels.Get(ctx, level.ID)
	if err != nil {
		return model.Level{}, err
	}
	// Le placement appartient au ledger, pas à l'appelant
	level.Placement = current.Placement
	level.CreatedAt = current.CreatedAt
	level.UpdatedAt = time.Now()
	if err := l.levels.Upsert(ctx, level); err != nil {
		return model.Level{}, apperr.Upstream(fmt.Sprintf("update level %s", level.ID), err)
	}
	n, err := l.Count(ctx)
	if err != nil {
		return model.Level{}, err
	}
	level.Points = l.pointsFor(level.Placement, n)
	return level, nil
}

// Count retourne la taille courante de la liste
func (l *Ledger) Count(ctx context.Context) (int, error) {
	levels, err := l.levels.List(ctx)
	if err != nil {
		return 0, apperr.Upstream("list levels", err)
	}
	return len(levels), nil
}

func sortByPlacement(levels []model.Level) {
	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Placement != levels[j].Placement {
			return levels[i].Placement < levels[j].Placement
		}
		return levels[i].ID < levels[j].ID
	})
}

func checkNoDuplicates(levels []model.Level) error {
	seen := make(map[int]string, len(levels))
	for _, level := range levels {
		if other, ok := seen[level.Placement]; ok {
			return fmt.Errorf("%w: levels %s and %s both at %d", apperr.ErrDuplicatePlacement, other, level.ID, level.Placement)
		}
		seen[level.Placement] = level.ID
	}
	return nil
}
