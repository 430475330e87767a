// Package snapshot exporte l'état canonique de la liste en un document
// complet destiné au collaborateur de publication externe, qui le committe
// sur une ligne de révision nommée.
package snapshot

import (
	"context"
	"time"

	"github.com/xenok69/ECLReborn-backend/internal/ledger"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/scoring"
)

// Publisher est le puits de publication externe. target désigne la ligne de
// révision cible (branche, par exemple).
type Publisher interface {
	Publish(ctx context.Context, target string, snap model.Snapshot) error
}

// Exporter assemble le document de snapshot
type Exporter struct {
	ledger *ledger.Ledger
	points scoring.Func
}

// NewExporter crée un exporteur sur le ledger donné
func NewExporter(l *ledger.Ledger, points scoring.Func) *Exporter {
	if points == nil {
		points = scoring.Points
	}
	return &Exporter{ledger: l, points: points}
}

// Export construit le snapshot complet : niveaux triés par placement,
// points recalculés au moment de l'export.
func (e *Exporter) Export(ctx context.Context) (model.Snapshot, error) {
	levels, err := e.ledger.List(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}

	n := len(levels)
	for i := range levels {
		points, err := e.points(levels[i].Placement, n)
		if err != nil {
			return model.Snapshot{}, err
		}
		levels[i].Points = points
	}

	return model.Snapshot{
		Metadata: model.SnapshotMetadata{LastUpdated: time.Now()},
		Levels:   levels,
	}, nil
}

// ExportTo exporte puis remet le document au puits de publication
func (e *Exporter) ExportTo(ctx context.Context, pub Publisher, target string) (model.Snapshot, error) {
	snap, err := e.Export(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}
	if err := pub.Publish(ctx, target, snap); err != nil {
		return model.Snapshot{}, err
	}
	return snap, nil
}
