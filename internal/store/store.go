// Package store définit le collaborateur de stockage du moteur : des accès
// par entité get/list/upsert/delete plus quelques mises à jour partielles
// typées. Chaque appel n'est atomique qu'à la ligne ; aucune transaction
// multi-lignes n'est supposée.
package store

import (
	"context"
	"time"

	model "github.com/xenok69/ECLReborn-backend/internal/models"
)

// LevelStore persiste les niveaux classés. List ne garantit aucun ordre :
// les appelants trient toujours explicitement par placement.
type LevelStore interface {
	Get(ctx context.Context, id string) (*model.Level, error)
	List(ctx context.Context) ([]model.Level, error)
	Upsert(ctx context.Context, level model.Level) error
	Delete(ctx context.Context, id string) error
	UpdatePlacement(ctx context.Context, id string, placement int) error
}

// PackStore persiste les packs
type PackStore interface {
	Get(ctx context.Context, id string) (*model.Pack, error)
	List(ctx context.Context) ([]model.Pack, error)
	Upsert(ctx context.Context, pack model.Pack) error
	Delete(ctx context.Context, id string) error
}

// UserStore persiste l'activité des utilisateurs
type UserStore interface {
	Get(ctx context.Context, userID string) (*model.UserActivity, error)
	List(ctx context.Context) ([]model.UserActivity, error)
	Upsert(ctx context.Context, user model.UserActivity) error
	UpdateCompletions(ctx context.Context, userID string, items []model.CompletedItem) error
	UpdatePacks(ctx context.Context, userID string, packs []model.CompletedPack) error
}

// SubmissionStore persiste les soumissions. List avec status vide = toutes.
type SubmissionStore interface {
	Get(ctx context.Context, id string) (*model.Submission, error)
	List(ctx context.Context, status model.SubmissionStatus) ([]model.Submission, error)
	Upsert(ctx context.Context, sub model.Submission) error
	UpdateStatus(ctx context.Context, id string, status model.SubmissionStatus, resolvedBy string, resolvedAt time.Time) error
}
