package model

import (
	"time"
)

// LevelTags regroupe les tags descriptifs d'un niveau
type LevelTags struct {
	Difficulty      string   `json:"difficulty"`
	Gamemode        string   `json:"gamemode"`
	DecorationStyle string   `json:"decorationStyle"`
	ExtraTags       []string `json:"extraTags,omitempty"`
}

// Level représente un niveau classé de la liste.
// ID est l'identifiant stable; Placement est la seule clé de tri et peut changer.
type Level struct {
	ID        string    `json:"id"`
	Placement int       `json:"placement"`
	Name      string    `json:"name"`
	Creator   string    `json:"creator"`
	Verifier  string    `json:"verifier"`
	VideoRef  string    `json:"videoRef,omitempty"`
	Tags      LevelTags `json:"tags"`
	Points    int       `json:"points"` // calculé à la lecture via scoring, jamais persisté
	CreatedBy *string   `json:"createdBy,omitempty"`
	UpdatedBy *string   `json:"updatedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
