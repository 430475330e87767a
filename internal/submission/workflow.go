// Package submission implémente la machine à états des soumissions :
//
//	pending --approve--> approved  (charge matérialisée dans la liste / l'activité)
//	pending --decline--> declined  (aucun effet de bord)
//
// Les transitions sont terminales et irréversibles : une correction passe par
// une édition admin directe, jamais par une re-soumission. La validation a
// lieu à la création ; une soumission invalide n'entre jamais en pending.
package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xenok69/ECLReborn-backend/internal/apperr"
	"github.com/xenok69/ECLReborn-backend/internal/ledger"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/store"
)

// Workflow orchestre la revue des soumissions. Il ne produit que des charges
// candidates : l'assignation de placement reste déléguée au ledger.
type Workflow struct {
	subs   store.SubmissionStore
	users  store.UserStore
	ledger *ledger.Ledger
}

// New crée un workflow de soumissions
func New(subs store.SubmissionStore, users store.UserStore, l *ledger.Ledger) *Workflow {
	return &Workflow{subs: subs, users: users, ledger: l}
}

// Submit valide puis enregistre une soumission en pending
func (w *Workflow) Submit(ctx context.Context, sub model.Submission) (model.Submission, error) {
	if sub.SubmitterID == "" {
		return model.Submission{}, apperr.Validation("submitterId", "required")
	}

	switch sub.Type {
	case model.SubmissionTypeItem:
		if err := validateItemPayload(sub.Item); err != nil {
			return model.Submission{}, err
		}
		videoID, err := ExtractVideoID(sub.Item.VideoRef)
		if err != nil {
			return model.Submission{}, err
		}
		sub.Item.VideoRef = videoID
		sub.Completion = nil
	case model.SubmissionTypeCompletion:
		if err := validateCompletionPayload(sub.Completion); err != nil {
			return model.Submission{}, err
		}
		if sub.Completion.VideoRef != "" {
			videoID, err := ExtractVideoID(sub.Completion.VideoRef)
			if err != nil {
				return model.Submission{}, err
			}
			sub.Completion.VideoRef = videoID
		}
		sub.Item = nil
	default:
		return model.Submission{}, apperr.Validation("type", "must be item or completion")
	}

	sub.ID = uuid.NewString()
	sub.Status = model.SubmissionStatusPending
	sub.SubmittedAt = time.Now()
	sub.ResolvedAt = nil
	sub.ResolvedBy = nil

	if err := w.subs.Upsert(ctx, sub); err != nil {
		return model.Submission{}, apperr.Upstream("save submission", err)
	}
	return sub, nil
}

// Get retourne une soumission par id
func (w *Workflow) Get(ctx context.Context, id string) (*model.Submission, error) {
	return w.subs.Get(ctx, id)
}

// List retourne les soumissions, filtrées par statut si non vide
func (w *Workflow) List(ctx context.Context, status model.SubmissionStatus) ([]model.Submission, error) {
	subs, err := w.subs.List(ctx, status)
	if err != nil {
		return nil, apperr.Upstream("list submissions", err)
	}
	return subs, nil
}

// Approve matérialise la charge d'une soumission pending puis la marque
// approved. Soumission item : insertion dans le ledger au placement suggéré
// (fin de liste si absent). Soumission completion : ajout à l'activité de
// l'utilisateur cible, sans doublon pour une même paire (user, niveau) —
// la dernière approbation gagne.
func (w *Workflow) Approve(ctx context.Context, id, adminID string) (*model.Submission, error) {
	sub, err := w.subs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != model.SubmissionStatusPending {
		return nil, apperr.ErrTerminalSubmission
	}

	switch sub.Type {
	case model.SubmissionTypeItem:
		if err := w.materializeItem(ctx, sub); err != nil {
			return nil, err
		}
	case model.SubmissionTypeCompletion:
		if err := w.materializeCompletion(ctx, sub); err != nil {
			return nil, err
		}
	default:
		return nil, apperr.Validation("type", fmt.Sprintf("unknown submission type %q", sub.Type))
	}

	return w.resolve(ctx, sub, model.SubmissionStatusApproved, adminID)
}

// Decline marque une soumission pending comme declined, sans effet de bord
func (w *Workflow) Decline(ctx context.Context, id, adminID string) (*model.Submission, error) {
	sub, err := w.subs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != model.SubmissionStatusPending {
		return nil, apperr.ErrTerminalSubmission
	}
	return w.resolve(ctx, sub, model.SubmissionStatusDeclined, adminID)
}

func (w *Workflow) resolve(ctx context.Context, sub *model.Submission, status model.SubmissionStatus, adminID string) (*model.Submission, error) {
	now := time.Now()
	if err := w.subs.UpdateStatus(ctx, sub.ID, status, adminID, now); err != nil {
		return nil, apperr.Upstream("update submission status", err)
	}
	sub.Status = status
	sub.ResolvedBy = &adminID
	sub.ResolvedAt = &now
	return sub, nil
}

func (w *Workflow) materializeItem(ctx context.Context, sub *model.Submission) error {
	payload := sub.Item
	level := model.Level{
		ID:       uuid.NewString(),
		Name:     payload.Name,
		Creator:  payload.Creator,
		Verifier: payload.Verifier,
		VideoRef: payload.VideoRef,
		Tags:     payload.Tags,
	}
	at := 0
	if payload.SuggestedPlacement != nil {
		at = *payload.SuggestedPlacement
	}
	_, err := w.ledger.Insert(ctx, level, at)
	return err
}

func (w *Workflow) materializeCompletion(ctx context.Context, sub *model.Submission) error {
	payload := sub.Completion

	// Le niveau visé doit encore exister au moment de l'approbation
	level, err := w.ledger.Get(ctx, payload.ItemID)
	if err != nil {
		return fmt.Errorf("completion target: %w", err)
	}

	user, err := w.users.Get(ctx, payload.UserID)
	if errors.Is(err, apperr.ErrNotFound) {
		// Première activité de cet utilisateur : créer le profil vide.
		// Le nom du soumetteur ne vaut que pour lui-même ; une complétion
		// déposée pour un tiers laisse le nom à l'identité externe.
		username := ""
		if payload.UserID == sub.SubmitterID {
			username = sub.SubmitterName
		}
		user = &model.UserActivity{UserID: payload.UserID, Username: username}
		if err := w.users.Upsert(ctx, *user); err != nil {
			return apperr.Upstream("create user activity", err)
		}
	} else if err != nil {
		return fmt.Errorf("completion user: %w", err)
	}

	entry := model.CompletedItem{
		ItemID:      payload.ItemID,
		VideoRef:    payload.VideoRef,
		CompletedAt: time.Now(),
		IsVerifier:  level.Verifier != "" && level.Verifier == user.Username,
	}

	// Dédoublonnage sur la paire (user, niveau) : on remplace l'entrée
	// existante au lieu d'en ajouter une seconde.
	items := user.CompletedItems
	replaced := false
	for i := range items {
		if items[i].ItemID == payload.ItemID {
			items[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, entry)
	}

	if err := w.users.UpdateCompletions(ctx, payload.UserID, items); err != nil {
		return apperr.Upstream("update user completions", err)
	}
	return nil
}

func validateItemPayload(p *model.ItemPayload) error {
	if p == nil {
		return apperr.Validation("item", "payload required")
	}
	if p.Name == "" {
		return apperr.Validation("item.name", "required")
	}
	if p.Creator == "" {
		return apperr.Validation("item.creator", "required")
	}
	if p.SuggestedPlacement != nil && *p.SuggestedPlacement < 1 {
		return apperr.Validation("item.suggestedPlacement", "must be >= 1")
	}
	return validateEnjoyment(p.Enjoyment, "item.enjoyment")
}

func validateCompletionPayload(p *model.CompletionPayload) error {
	if p == nil {
		return apperr.Validation("completion", "payload required")
	}
	if p.UserID == "" {
		return apperr.Validation("completion.userId", "required")
	}
	if p.ItemID == "" {
		return apperr.Validation("completion.itemId", "required")
	}
	return validateEnjoyment(p.Enjoyment, "completion.enjoyment")
}

func validateEnjoyment(rating *int, field string) error {
	if rating != nil && (*rating < 0 || *rating > 10) {
		return apperr.Validation(field, "must be between 0 and 10")
	}
	return nil
}
