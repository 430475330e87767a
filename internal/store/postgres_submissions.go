package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenok69/ECLReborn-backend/internal/apperr"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/scanner"
)

const submissionColumns = `
	id, type, submitter_id, submitter_name, status, payload,
	submitted_at, resolved_at, resolved_by`

type pgSubmissions struct {
	pool *pgxpool.Pool
}

func (s *pgSubmissions) Get(ctx context.Context, id string) (*model.Submission, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+submissionColumns+`
		FROM submissions
		WHERE id = $1
	`, id)

	sub, err := scanner.ScanSubmission(row)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return sub, nil
}

func (s *pgSubmissions) List(ctx context.Context, status model.SubmissionStatus) ([]model.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		ORDER BY submitted_at ASC
	`
	args := []interface{}{}
	if status != "" {
		query = `
			SELECT ` + submissionColumns + `
			FROM submissions
			WHERE status = $1
			ORDER BY submitted_at ASC
		`
		args = append(args, status)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		sub, err := scanner.ScanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

func (s *pgSubmissions) Upsert(ctx context.Context, sub model.Submission) error {
	var payload interface{}
	switch sub.Type {
	case model.SubmissionTypeItem:
		payload = sub.Item
	case model.SubmissionTypeCompletion:
		payload = sub.Completion
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO submissions (id, type, submitter_id, submitter_name, status, payload, submitted_at, resolved_at, resolved_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			payload = EXCLUDED.payload,
			resolved_at = EXCLUDED.resolved_at,
			resolved_by = EXCLUDED.resolved_by
	`,
		sub.ID, sub.Type, sub.SubmitterID, sub.SubmitterName,
		sub.Status, raw, sub.SubmittedAt, sub.ResolvedAt, sub.ResolvedBy,
	)
	return err
}

func (s *pgSubmissions) UpdateStatus(ctx context.Context, id string, status model.SubmissionStatus, resolvedBy string, resolvedAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE submissions
		SET status = $1, resolved_by = $2, resolved_at = $3
		WHERE id = $4
	`, status, resolvedBy, resolvedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
