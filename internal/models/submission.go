package model

import (
	"time"
)

type SubmissionType string

const (
	SubmissionTypeItem       SubmissionType = "item"
	SubmissionTypeCompletion SubmissionType = "completion"
)

type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusDeclined SubmissionStatus = "declined"
)

// ItemPayload est la charge utile d'une soumission de niveau.
// SuggestedPlacement nil = ajout en fin de liste.
type ItemPayload struct {
	Name               string    `json:"name"`
	Creator            string    `json:"creator"`
	Verifier           string    `json:"verifier"`
	VideoRef           string    `json:"videoRef"`
	SuggestedPlacement *int      `json:"suggestedPlacement,omitempty"`
	Enjoyment          *int      `json:"enjoyment,omitempty"` // note de 0 à 10
	Tags               LevelTags `json:"tags"`
}

// CompletionPayload est la charge utile d'une revendication de complétion
type CompletionPayload struct {
	UserID    string `json:"userId"`
	ItemID    string `json:"itemId"`
	VideoRef  string `json:"videoRef"`
	Enjoyment *int   `json:"enjoyment,omitempty"`
}

// Submission représente une proposition en attente de validation admin.
// Le statut ne transitionne qu'une seule fois : pending -> approved ou declined.
type Submission struct {
	ID            string             `json:"id"`
	Type          SubmissionType     `json:"type"`
	SubmitterID   string             `json:"submitterId"`
	SubmitterName string             `json:"submitterName"`
	Status        SubmissionStatus   `json:"status"`
	Item          *ItemPayload       `json:"item,omitempty"`
	Completion    *CompletionPayload `json:"completion,omitempty"`
	SubmittedAt   time.Time          `json:"submittedAt"`
	ResolvedAt    *time.Time         `json:"resolvedAt,omitempty"`
	ResolvedBy    *string            `json:"resolvedBy,omitempty"`
}
