// Package apperr définit la taxonomie d'erreurs du moteur de liste :
// erreurs de validation (entrée appelant), absence d'entité, incohérence de
// placement (drift) et pannes du stockage amont.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound : l'entité référencée n'existe pas
	ErrNotFound = errors.New("not found")

	// ErrInvalidRank : placement hors domaine (< 1)
	ErrInvalidRank = errors.New("invalid rank")

	// ErrDuplicatePlacement : deux niveaux revendiquent le même placement.
	// Signale un drift, pas une erreur de l'appelant ; jamais corrigé
	// silencieusement, la réparation passe par l'auditeur.
	ErrDuplicatePlacement = errors.New("duplicate placement")

	// ErrPlacementGap : la séquence de placements contient un trou
	ErrPlacementGap = errors.New("placement gap")

	// ErrTerminalSubmission : la soumission a déjà été approuvée ou refusée
	ErrTerminalSubmission = errors.New("submission already resolved")
)

// ValidationError décrit une entrée appelant malformée, rejetée avant toute
// mutation. Field vaut "" quand le problème couvre la charge entière.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// Validation construit une ValidationError pour un champ donné
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation indique si err est (ou enveloppe) une erreur de validation
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Upstream enveloppe une panne du collaborateur de stockage. Les opérations
// multi-lignes interrompues peuvent laisser la liste transitoirement
// incohérente ; l'appelant doit relancer un diagnostic après l'échec.
func Upstream(op string, err error) error {
	return fmt.Errorf("storage: %s: %w", op, err)
}

// IsConsistency indique si err signale un drift de placement
func IsConsistency(err error) bool {
	return errors.Is(err, ErrDuplicatePlacement) || errors.Is(err, ErrPlacementGap)
}
