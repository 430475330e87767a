package model

import (
	"time"
)

// Pack représente un lot de niveaux donnant des points bonus une fois complété.
// ItemIDs référence Level.ID (jamais le placement) ; l'intégrité est souple,
// les références mortes sont filtrées à la lecture.
type Pack struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	BonusPoints int       `json:"bonusPoints"`
	ItemIDs     []string  `json:"itemIds"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// PackProgress représente la progression d'un utilisateur sur un pack
type PackProgress struct {
	PackID          string `json:"packId"`
	UserID          string `json:"userId"`
	CompletedInPack int    `json:"completedInPack"`
	TotalInPack     int    `json:"totalInPack"`
	Percent         int    `json:"percent"`
	// Completed vient de completedPacks de l'utilisateur, pas de percent == 100.
	// Les deux peuvent diverger (attribution manuelle, niveau retiré).
	Completed bool `json:"completed"`
}
