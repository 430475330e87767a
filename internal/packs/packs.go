// Package packs agrège l'appartenance, la progression et les bonus des packs.
// Les références de pack pointent sur Level.ID ; l'intégrité est souple et les
// références mortes (niveau retiré pendant une édition admin) sont filtrées à
// la lecture, jamais traitées comme une corruption.
package packs

import (
	"context"
	"errors"
	"math"

	"github.com/xenok69/ECLReborn-backend/internal/apperr"
	"github.com/xenok69/ECLReborn-backend/internal/ledger"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/store"
)

// Aggregator calcule les vues packs par utilisateur
type Aggregator struct {
	ledger *ledger.Ledger
	packs  store.PackStore
	users  store.UserStore
}

// New crée un agrégateur de packs
func New(l *ledger.Ledger, packs store.PackStore, users store.UserStore) *Aggregator {
	return &Aggregator{ledger: l, packs: packs, users: users}
}

// List retourne tous les packs
func (a *Aggregator) List(ctx context.Context) ([]model.Pack, error) {
	packs, err := a.packs.List(ctx)
	if err != nil {
		return nil, apperr.Upstream("list packs", err)
	}
	return packs, nil
}

// Get retourne un pack par id
func (a *Aggregator) Get(ctx context.Context, id string) (*model.Pack, error) {
	return a.packs.Get(ctx, id)
}

// Resolve mappe les ItemIDs du pack sur la collection courante de niveaux,
// en éliminant silencieusement les ids sans niveau correspondant.
func (a *Aggregator) Resolve(ctx context.Context, pack model.Pack) ([]model.Level, error) {
	levels, err := a.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Level, len(levels))
	for _, level := range levels {
		byID[level.ID] = level
	}

	resolved := make([]model.Level, 0, len(pack.ItemIDs))
	for _, id := range pack.ItemIDs {
		if level, ok := byID[id]; ok {
			resolved = append(resolved, level)
		}
	}
	return resolved, nil
}

// Progress calcule la progression d'un utilisateur sur un pack.
// percent est toujours dans [0,100] et vaut 0 pour un pack vide.
// Completed vient du champ completedPacks explicite de l'utilisateur, pas de
// percent == 100 : la complétion est un acte administratif, pas une déduction.
func (a *Aggregator) Progress(ctx context.Context, userID string, pack model.Pack) (model.PackProgress, error) {
	progress := model.PackProgress{
		PackID:      pack.ID,
		UserID:      userID,
		TotalInPack: len(pack.ItemIDs),
	}

	user, err := a.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			// utilisateur inconnu = aucune progression
			return progress, nil
		}
		return progress, apperr.Upstream("get user", err)
	}

	completed := make(map[string]bool, len(user.CompletedItems))
	for _, item := range user.CompletedItems {
		completed[item.ItemID] = true
	}
	for _, id := range pack.ItemIDs {
		if completed[id] {
			progress.CompletedInPack++
		}
	}
	if len(pack.ItemIDs) > 0 {
		progress.Percent = int(math.Round(100 * float64(progress.CompletedInPack) / float64(len(pack.ItemIDs))))
	}
	for _, cp := range user.CompletedPacks {
		if cp.PackID == pack.ID {
			progress.Completed = true
			break
		}
	}
	return progress, nil
}

// ProgressAll calcule la progression d'un utilisateur sur tous les packs.
// Vérifie l'annulation entre les lectures séquentielles.
func (a *Aggregator) ProgressAll(ctx context.Context, userID string) ([]model.PackProgress, error) {
	packs, err := a.packs.List(ctx)
	if err != nil {
		return nil, apperr.Upstream("list packs", err)
	}

	result := make([]model.PackProgress, 0, len(packs))
	for _, pack := range packs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		progress, err := a.Progress(ctx, userID, pack)
		if err != nil {
			return nil, err
		}
		result = append(result, progress)
	}
	return result, nil
}

// BonusPoints somme les bonus des packs complétés par l'utilisateur.
// Un pack complété qui n'existe plus contribue 0, silencieusement.
func (a *Aggregator) BonusPoints(ctx context.Context, userID string) (int, error) {
	user, err := a.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return 0, nil
		}
		return 0, apperr.Upstream("get user", err)
	}

	total := 0
	for _, cp := range user.CompletedPacks {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		pack, err := a.packs.Get(ctx, cp.PackID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				continue
			}
			return 0, apperr.Upstream("get pack", err)
		}
		total += pack.BonusPoints
	}
	return total, nil
}
