// Package scoring calcule la valeur en points d'un niveau à partir de son
// placement. Les points ne sont jamais stockés : ils se recalculent à chaque
// lecture, car l'échelle se renormalise quand la liste grandit.
package scoring

import (
	"math"

	"github.com/xenok69/ECLReborn-backend/internal/apperr"
)

const (
	// MaxPoints est la valeur du rang 1
	MaxPoints = 150

	// ScoredWindow est la fenêtre notée ; au-delà, un niveau est "legacy"
	// et vaut 0 point.
	ScoredWindow = 150
)

// Func est la signature commune aux deux formules de score
type Func func(placement, total int) (int, error)

// Strategy sélectionne une des deux formules. Les deux coexistent car elles ne
// sont pas numériquement identiques ; ne pas unifier sans confirmation.
type Strategy string

const (
	// Linear150 : rampe linéaire de 150 (rang 1) à 1 (rang min(N,150))
	Linear150 Strategy = "linear150"
	// Percent100 : variante héritée en pourcentage, de 100 à 1
	Percent100 Strategy = "percent100"
)

// For retourne la fonction de score associée à la stratégie.
// Stratégie inconnue = Linear150.
func For(s Strategy) Func {
	if s == Percent100 {
		return PercentPoints
	}
	return Points
}

// Points applique la rampe linéaire 150 -> 1 sur la fenêtre notée.
// total est la taille courante de la liste (N). Arrondi : math.Round, soit
// moitié loin de zéro (75.5 donne 76). Strictement décroissante en placement
// à N fixé.
func Points(placement, total int) (int, error) {
	if placement < 1 {
		return 0, apperr.ErrInvalidRank
	}
	if placement > ScoredWindow {
		// niveau legacy, hors fenêtre notée
		return 0, nil
	}

	m := total
	if m > ScoredWindow {
		m = ScoredWindow
	}
	if m <= 1 {
		// liste à un seul niveau noté : valeur maximale
		return MaxPoints, nil
	}

	raw := float64(MaxPoints) - float64(placement-1)*(float64(MaxPoints-1)/float64(m-1))
	return int(math.Round(raw)), nil
}

// PercentPoints applique la variante héritée 1 + 99*(N-p)/(N-1),
// plafonnée à 100 pour une liste à un seul niveau. Conservée pour les
// affichages qui en dépendent encore.
func PercentPoints(placement, total int) (int, error) {
	if placement < 1 {
		return 0, apperr.ErrInvalidRank
	}
	if total <= 1 {
		return 100, nil
	}

	raw := 1 + 99*float64(total-placement)/float64(total-1)
	return int(math.Round(raw)), nil
}
