// Package scanner regroupe les helpers de scan SQL vers les modèles.
// Utilise les types sql.Null* et les convertit automatiquement.
package scanner

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"

	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/utils"
)

// RowScanner est l'interface commune à pgx.Row et pgx.Rows
type RowScanner interface {
	Scan(dest ...interface{}) error
}

// ScanLevel scanne une ligne SQL vers un Level
func ScanLevel(row RowScanner) (*model.Level, error) {
	var level model.Level
	var videoRef, difficulty, gamemode, decoration sql.NullString
	var createdBy, updatedBy sql.NullString

	err := row.Scan(
		&level.ID, &level.Placement, &level.Name, &level.Creator, &level.Verifier,
		&videoRef, &difficulty, &gamemode, &decoration, pq.Array(&level.Tags.ExtraTags),
		&createdBy, &updatedBy, &level.CreatedAt, &level.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Conversions
	level.VideoRef = utils.NullStringToString(videoRef)
	level.Tags.Difficulty = utils.NullStringToString(difficulty)
	level.Tags.Gamemode = utils.NullStringToString(gamemode)
	level.Tags.DecorationStyle = utils.NullStringToString(decoration)
	level.CreatedBy = utils.NullStringToPointer(createdBy)
	level.UpdatedBy = utils.NullStringToPointer(updatedBy)

	return &level, nil
}

// ScanPack scanne une ligne SQL vers un Pack
func ScanPack(row RowScanner) (*model.Pack, error) {
	var pack model.Pack
	var description sql.NullString

	err := row.Scan(
		&pack.ID, &pack.Name, &description, &pack.Category,
		&pack.BonusPoints, pq.Array(&pack.ItemIDs),
		&pack.CreatedAt, &pack.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	pack.Description = utils.NullStringToString(description)
	return &pack, nil
}

// ScanUserActivity scanne une ligne SQL vers une UserActivity.
// Les complétions sont stockées en jsonb et désérialisées ici.
func ScanUserActivity(row RowScanner) (*model.UserActivity, error) {
	var user model.UserActivity
	var avatar sql.NullString
	var online sql.NullBool
	var completedItems, completedPacks []byte

	err := row.Scan(
		&user.UserID, &user.Username, &avatar, &online,
		&completedItems, &completedPacks,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Avatar = utils.NullStringToString(avatar)
	// online est posé par la couche de présence, absent sur les lignes
	// créées côté moteur
	user.Online = utils.NullBoolToBool(online)
	if len(completedItems) > 0 {
		if err := json.Unmarshal(completedItems, &user.CompletedItems); err != nil {
			return nil, err
		}
	}
	if len(completedPacks) > 0 {
		if err := json.Unmarshal(completedPacks, &user.CompletedPacks); err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// ScanSubmission scanne une ligne SQL vers une Submission.
// La charge utile jsonb est désérialisée selon le type.
func ScanSubmission(row RowScanner) (*model.Submission, error) {
	var sub model.Submission
	var payload []byte
	var resolvedAt sql.NullTime
	var resolvedBy sql.NullString

	err := row.Scan(
		&sub.ID, &sub.Type, &sub.SubmitterID, &sub.SubmitterName,
		&sub.Status, &payload, &sub.SubmittedAt, &resolvedAt, &resolvedBy,
	)
	if err != nil {
		return nil, err
	}

	sub.ResolvedAt = utils.NullTimeToPointer(resolvedAt)
	sub.ResolvedBy = utils.NullStringToPointer(resolvedBy)

	if len(payload) > 0 {
		switch sub.Type {
		case model.SubmissionTypeItem:
			sub.Item = &model.ItemPayload{}
			if err := json.Unmarshal(payload, sub.Item); err != nil {
				return nil, err
			}
		case model.SubmissionTypeCompletion:
			sub.Completion = &model.CompletionPayload{}
			if err := json.Unmarshal(payload, sub.Completion); err != nil {
				return nil, err
			}
		}
	}
	return &sub, nil
}
