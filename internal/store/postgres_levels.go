package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"github.com/xenok69/ECLReborn-backend/internal/apperr"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/scanner"
)

const levelColumns = `
	id, placement, name, creator, verifier,
	video_ref, difficulty, gamemode, decoration_style, COALESCE(extra_tags, '{}'),
	created_by, updated_by, created_at, updated_at`

type pgLevels struct {
	pool *pgxpool.Pool
}

func (s *pgLevels) Get(ctx context.Context, id string) (*model.Level, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+levelColumns+`
		FROM levels
		WHERE id = $1
	`, id)

	level, err := scanner.ScanLevel(row)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return level, nil
}

func (s *pgLevels) List(ctx context.Context) ([]model.Level, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+levelColumns+`
		FROM levels
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []model.Level
	for rows.Next() {
		level, err := scanner.ScanLevel(rows)
		if err != nil {
			return nil, err
		}
		levels = append(levels, *level)
	}
	return levels, rows.Err()
}

func (s *pgLevels) Upsert(ctx context.Context, level model.Level) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO levels (
			id, placement, name, creator, verifier,
			video_ref, difficulty, gamemode, decoration_style, extra_tags,
			created_by, updated_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			placement = EXCLUDED.placement,
			name = EXCLUDED.name,
			creator = EXCLUDED.creator,
			verifier = EXCLUDED.verifier,
			video_ref = EXCLUDED.video_ref,
			difficulty = EXCLUDED.difficulty,
			gamemode = EXCLUDED.gamemode,
			decoration_style = EXCLUDED.decoration_style,
			extra_tags = EXCLUDED.extra_tags,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at
	`,
		level.ID, level.Placement, level.Name, level.Creator, level.Verifier,
		level.VideoRef, level.Tags.Difficulty, level.Tags.Gamemode, level.Tags.DecorationStyle,
		pq.Array(level.Tags.ExtraTags),
		level.CreatedBy, level.UpdatedBy, level.CreatedAt, level.UpdatedAt,
	)
	return err
}

func (s *pgLevels) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM levels WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *pgLevels) UpdatePlacement(ctx context.Context, id string, placement int) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE levels SET placement = $1, updated_at = NOW() WHERE id = $2
	`, placement, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
