package model

import (
	"time"
)

// CompletedItem représente un niveau complété par un utilisateur
type CompletedItem struct {
	ItemID      string    `json:"itemId"`
	VideoRef    string    `json:"videoRef,omitempty"`
	CompletedAt time.Time `json:"completedAt"`
	IsVerifier  bool      `json:"isVerifier"`
}

// CompletedPack représente un pack complété par un utilisateur
type CompletedPack struct {
	PackID      string    `json:"packId"`
	CompletedAt time.Time `json:"completedAt"`
}

// UserActivity représente le profil d'activité d'un utilisateur.
// UserID vient du fournisseur d'identité externe et sert de clé opaque.
// Les entrées de CompletedItems dont le niveau n'existe plus sont purgées
// paresseusement à la lecture.
type UserActivity struct {
	UserID         string          `json:"userId"`
	Username       string          `json:"username"`
	Avatar         string          `json:"avatar,omitempty"`
	Online         bool            `json:"online"`
	CompletedItems []CompletedItem `json:"completedItems"`
	CompletedPacks []CompletedPack `json:"completedPacks"`
	CreatedAt      time.Time       `json:"createdAt,omitempty"`
	UpdatedAt      time.Time       `json:"updatedAt,omitempty"`
}

// UserProfile correspond à l'acteur courant fourni par l'identité externe
type UserProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
	IsAdmin  bool   `json:"isAdmin"`
}
