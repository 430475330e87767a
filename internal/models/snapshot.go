package model

import (
	"time"
)

// SnapshotMetadata accompagne chaque export complet de la liste
type SnapshotMetadata struct {
	LastUpdated time.Time `json:"lastUpdated"`
}

// Snapshot est le document complet remis au collaborateur de publication.
// Les niveaux sont ordonnés par placement croissant, points inclus.
type Snapshot struct {
	Metadata SnapshotMetadata `json:"metadata"`
	Levels   []Level          `json:"levels"`
}
