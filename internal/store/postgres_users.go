package store

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenok69/ECLReborn-backend/internal/apperr"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/scanner"
)

const userColumns = `
	user_id, username, avatar, online,
	COALESCE(completed_items, '[]'), COALESCE(completed_packs, '[]'),
	created_at, updated_at`

// Les complétions vivent en jsonb sur la ligne utilisateur : une mise à jour
// de la liste complète reste une écriture mono-ligne atomique.
type pgUsers struct {
	pool *pgxpool.Pool
}

func (s *pgUsers) Get(ctx context.Context, userID string) (*model.UserActivity, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE user_id = $1
	`, userID)

	user, err := scanner.ScanUserActivity(row)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return user, nil
}

func (s *pgUsers) List(ctx context.Context) ([]model.UserActivity, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY user_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.UserActivity
	for rows.Next() {
		user, err := scanner.ScanUserActivity(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (s *pgUsers) Upsert(ctx context.Context, user model.UserActivity) error {
	items, err := json.Marshal(user.CompletedItems)
	if err != nil {
		return err
	}
	packs, err := json.Marshal(user.CompletedPacks)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO users (user_id, username, avatar, online, completed_items, completed_packs, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			avatar = EXCLUDED.avatar,
			online = EXCLUDED.online,
			completed_items = EXCLUDED.completed_items,
			completed_packs = EXCLUDED.completed_packs,
			updated_at = NOW()
	`,
		user.UserID, user.Username, user.Avatar, user.Online, items, packs,
	)
	return err
}

func (s *pgUsers) UpdateCompletions(ctx context.Context, userID string, items []model.CompletedItem) error {
	if items == nil {
		items = []model.CompletedItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET completed_items = $1, updated_at = NOW() WHERE user_id = $2
	`, payload, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *pgUsers) UpdatePacks(ctx context.Context, userID string, packs []model.CompletedPack) error {
	if packs == nil {
		packs = []model.CompletedPack{}
	}
	payload, err := json.Marshal(packs)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET completed_packs = $1, updated_at = NOW() WHERE user_id = $2
	`, payload, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
