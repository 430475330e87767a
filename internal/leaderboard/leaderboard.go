// Package leaderboard recalcule à chaque requête le score total de chaque
// utilisateur (points de niveaux + bonus de packs) et le classement global.
// Rien n'est persisté : le rang est la position 1-indexée du tri décroissant.
package leaderboard

import (
	"context"
	"errors"
	"sort"

	"github.com/xenok69/ECLReborn-backend/internal/apperr"
	"github.com/xenok69/ECLReborn-backend/internal/ledger"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/packs"
	"github.com/xenok69/ECLReborn-backend/internal/scoring"
	"github.com/xenok69/ECLReborn-backend/internal/store"
)

// Aggregator calcule le classement global
type Aggregator struct {
	ledger *ledger.Ledger
	packs  *packs.Aggregator
	users  store.UserStore
	points scoring.Func
}

// New crée un agrégateur de classement avec la fonction de score donnée
func New(l *ledger.Ledger, p *packs.Aggregator, users store.UserStore, points scoring.Func) *Aggregator {
	if points == nil {
		points = scoring.Points
	}
	return &Aggregator{ledger: l, packs: p, users: users, points: points}
}

// Board calcule le classement complet. Tri stable décroissant par total :
// à égalité, l'ordre d'entrée est conservé (aucun second critère documenté).
// Vérifie l'annulation entre les lectures séquentielles.
func (a *Aggregator) Board(ctx context.Context) ([]model.LeaderboardEntry, error) {
	levels, err := a.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	users, err := a.users.List(ctx)
	if err != nil {
		return nil, apperr.Upstream("list users", err)
	}

	byID := make(map[string]model.Level, len(levels))
	for _, level := range levels {
		byID[level.ID] = level
	}
	n := len(levels)

	entries := make([]model.LeaderboardEntry, 0, len(users))
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		levelPoints, err := a.levelPoints(user, byID, n)
		if err != nil {
			return nil, err
		}
		packPoints, err := a.packs.BonusPoints(ctx, user.UserID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, model.LeaderboardEntry{
			UserID:      user.UserID,
			Username:    user.Username,
			Avatar:      user.Avatar,
			LevelPoints: levelPoints,
			PackPoints:  packPoints,
			Total:       levelPoints + packPoints,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// UserRank retourne la position d'un utilisateur dans le classement courant
func (a *Aggregator) UserRank(ctx context.Context, userID string) (model.UserRank, error) {
	entries, err := a.Board(ctx)
	if err != nil {
		return model.UserRank{}, err
	}
	for _, entry := range entries {
		if entry.UserID != userID {
			continue
		}
		rank := model.UserRank{
			UserID:     userID,
			Rank:       entry.Rank,
			Total:      entry.Total,
			TotalUsers: len(entries),
		}
		if rank.TotalUsers > 0 {
			rank.Percentile = float64(rank.Rank) / float64(rank.TotalUsers) * 100
		}
		return rank, nil
	}
	return model.UserRank{}, apperr.ErrNotFound
}

// Profile retourne l'activité d'un utilisateur, complétions purgées des
// niveaux disparus. La purge est auto-réparatrice : la liste nettoyée est
// réécrite quand quelque chose a changé.
func (a *Aggregator) Profile(ctx context.Context, userID string) (*model.UserActivity, error) {
	user, err := a.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	levels, err := a.ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(levels))
	for _, level := range levels {
		known[level.ID] = true
	}
	pruned := user.CompletedItems[:0:0]
	for _, item := range user.CompletedItems {
		if known[item.ItemID] {
			pruned = append(pruned, item)
		}
	}
	if len(pruned) != len(user.CompletedItems) {
		if err := a.users.UpdateCompletions(ctx, userID, pruned); err != nil {
			return nil, apperr.Upstream("prune user completions", err)
		}
		user.CompletedItems = pruned
	}
	return user, nil
}

// Totals calcule (points de niveaux, bonus de packs) pour un utilisateur
func (a *Aggregator) Totals(ctx context.Context, userID string) (int, int, error) {
	levels, err := a.ledger.List(ctx)
	if err != nil {
		return 0, 0, err
	}
	user, err := a.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return 0, 0, nil
		}
		return 0, 0, apperr.Upstream("get user", err)
	}

	byID := make(map[string]model.Level, len(levels))
	for _, level := range levels {
		byID[level.ID] = level
	}
	levelPoints, err := a.levelPoints(*user, byID, len(levels))
	if err != nil {
		return 0, 0, err
	}
	packPoints, err := a.packs.BonusPoints(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return levelPoints, packPoints, nil
}

// levelPoints somme les points des complétions qui résolvent encore vers un
// niveau existant ; les références mortes contribuent 0.
func (a *Aggregator) levelPoints(user model.UserActivity, byID map[string]model.Level, n int) (int, error) {
	total := 0
	for _, item := range user.CompletedItems {
		level, ok := byID[item.ItemID]
		if !ok {
			continue
		}
		points, err := a.points(level.Placement, n)
		if err != nil {
			return 0, err
		}
		total += points
	}
	return total, nil
}
