package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"github.com/xenok69/ECLReborn-backend/internal/apperr"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/scanner"
)

const packColumns = `
	id, name, description, category, bonus_points, COALESCE(item_ids, '{}'),
	created_at, updated_at`

type pgPacks struct {
	pool *pgxpool.Pool
}

func (s *pgPacks) Get(ctx context.Context, id string) (*model.Pack, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+packColumns+`
		FROM packs
		WHERE id = $1
	`, id)

	pack, err := scanner.ScanPack(row)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return pack, nil
}

func (s *pgPacks) List(ctx context.Context) ([]model.Pack, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+packColumns+`
		FROM packs
		ORDER BY category, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packs []model.Pack
	for rows.Next() {
		pack, err := scanner.ScanPack(rows)
		if err != nil {
			return nil, err
		}
		packs = append(packs, *pack)
	}
	return packs, rows.Err()
}

func (s *pgPacks) Upsert(ctx context.Context, pack model.Pack) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO packs (id, name, description, category, bonus_points, item_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			bonus_points = EXCLUDED.bonus_points,
			item_ids = EXCLUDED.item_ids,
			updated_at = NOW()
	`,
		pack.ID, pack.Name, pack.Description, pack.Category,
		pack.BonusPoints, pq.Array(pack.ItemIDs),
	)
	return err
}

func (s *pgPacks) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM packs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
