package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenok69/ECLReborn-backend/internal/apperr"
)

// Postgres est l'implémentation de production du collaborateur de stockage.
// Chaque requête est un aller-retour mono-ligne (ou un scan de collection) :
// aucune transaction multi-lignes, conformément au contrat du store.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres crée le store Postgres sur un pool existant
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Levels retourne la vue LevelStore
func (p *Postgres) Levels() LevelStore { return &pgLevels{pool: p.pool} }

// Packs retourne la vue PackStore
func (p *Postgres) Packs() PackStore { return &pgPacks{pool: p.pool} }

// Users retourne la vue UserStore
func (p *Postgres) Users() UserStore { return &pgUsers{pool: p.pool} }

// Submissions retourne la vue SubmissionStore
func (p *Postgres) Submissions() SubmissionStore { return &pgSubmissions{pool: p.pool} }

// mapNoRows traduit pgx.ErrNoRows vers l'erreur métier
func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}
	return err
}
