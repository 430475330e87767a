package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xenok69/ECLReborn-backend/internal/apperr"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
)

// Memory est une implémentation en mémoire du collaborateur de stockage,
// utilisée par les tests du moteur et comme secours de développement.
// Chaque collection a son propre verrou ; chaque opération est atomique
// à la ligne, comme le vrai store.
type Memory struct {
	levelsMu sync.RWMutex
	levels   map[string]model.Level

	packsMu sync.RWMutex
	packs   map[string]model.Pack

	usersMu sync.RWMutex
	users   map[string]model.UserActivity

	subsMu sync.RWMutex
	subs   map[string]model.Submission
}

// NewMemory crée un store en mémoire vide
func NewMemory() *Memory {
	return &Memory{
		levels: make(map[string]model.Level),
		packs:  make(map[string]model.Pack),
		users:  make(map[string]model.UserActivity),
		subs:   make(map[string]model.Submission),
	}
}

// Levels retourne la vue LevelStore
func (m *Memory) Levels() LevelStore { return (*memoryLevels)(m) }

// Packs retourne la vue PackStore
func (m *Memory) Packs() PackStore { return (*memoryPacks)(m) }

// Users retourne la vue UserStore
func (m *Memory) Users() UserStore { return (*memoryUsers)(m) }

// Submissions retourne la vue SubmissionStore
func (m *Memory) Submissions() SubmissionStore { return (*memorySubs)(m) }

type memoryLevels Memory

func (s *memoryLevels) Get(_ context.Context, id string) (*model.Level, error) {
	s.levelsMu.RLock()
	defer s.levelsMu.RUnlock()
	level, ok := s.levels[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &level, nil
}

func (s *memoryLevels) List(_ context.Context) ([]model.Level, error) {
	s.levelsMu.RLock()
	defer s.levelsMu.RUnlock()
	// Copie pour empêcher toute modification externe. Ordre natif : par id,
	// comme le store réel ; jamais par placement.
	result := make([]model.Level, 0, len(s.levels))
	for _, level := range s.levels {
		result = append(result, level)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *memoryLevels) Upsert(_ context.Context, level model.Level) error {
	s.levelsMu.Lock()
	defer s.levelsMu.Unlock()
	s.levels[level.ID] = level
	return nil
}

func (s *memoryLevels) Delete(_ context.Context, id string) error {
	s.levelsMu.Lock()
	defer s.levelsMu.Unlock()
	if _, ok := s.levels[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.levels, id)
	return nil
}

func (s *memoryLevels) UpdatePlacement(_ context.Context, id string, placement int) error {
	s.levelsMu.Lock()
	defer s.levelsMu.Unlock()
	level, ok := s.levels[id]
	if !ok {
		return apperr.ErrNotFound
	}
	level.Placement = placement
	level.UpdatedAt = time.Now()
	s.levels[id] = level
	return nil
}

type memoryPacks Memory

func (s *memoryPacks) Get(_ context.Context, id string) (*model.Pack, error) {
	s.packsMu.RLock()
	defer s.packsMu.RUnlock()
	pack, ok := s.packs[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &pack, nil
}

func (s *memoryPacks) List(_ context.Context) ([]model.Pack, error) {
	s.packsMu.RLock()
	defer s.packsMu.RUnlock()
	result := make([]model.Pack, 0, len(s.packs))
	for _, pack := range s.packs {
		result = append(result, pack)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *memoryPacks) Upsert(_ context.Context, pack model.Pack) error {
	s.packsMu.Lock()
	defer s.packsMu.Unlock()
	s.packs[pack.ID] = pack
	return nil
}

func (s *memoryPacks) Delete(_ context.Context, id string) error {
	s.packsMu.Lock()
	defer s.packsMu.Unlock()
	if _, ok := s.packs[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.packs, id)
	return nil
}

type memoryUsers Memory

func (s *memoryUsers) Get(_ context.Context, userID string) (*model.UserActivity, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &user, nil
}

func (s *memoryUsers) List(_ context.Context) ([]model.UserActivity, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	result := make([]model.UserActivity, 0, len(s.users))
	for _, user := range s.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (s *memoryUsers) Upsert(_ context.Context, user model.UserActivity) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	s.users[user.UserID] = user
	return nil
}

func (s *memoryUsers) UpdateCompletions(_ context.Context, userID string, items []model.CompletedItem) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return apperr.ErrNotFound
	}
	user.CompletedItems = items
	user.UpdatedAt = time.Now()
	s.users[userID] = user
	return nil
}

func (s *memoryUsers) UpdatePacks(_ context.Context, userID string, packs []model.CompletedPack) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return apperr.ErrNotFound
	}
	user.CompletedPacks = packs
	user.UpdatedAt = time.Now()
	s.users[userID] = user
	return nil
}

type memorySubs Memory

func (s *memorySubs) Get(_ context.Context, id string) (*model.Submission, error) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	sub, ok := s.subs[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &sub, nil
}

func (s *memorySubs) List(_ context.Context, status model.SubmissionStatus) ([]model.Submission, error) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	result := make([]model.Submission, 0, len(s.subs))
	for _, sub := range s.subs {
		if status != "" && sub.Status != status {
			continue
		}
		result = append(result, sub)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SubmittedAt.Before(result[j].SubmittedAt) })
	return result, nil
}

func (s *memorySubs) Upsert(_ context.Context, sub model.Submission) error {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.subs[sub.ID] = sub
	return nil
}

func (s *memorySubs) UpdateStatus(_ context.Context, id string, status model.SubmissionStatus, resolvedBy string, resolvedAt time.Time) error {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub, ok := s.subs[id]
	if !ok {
		return apperr.ErrNotFound
	}
	sub.Status = status
	sub.ResolvedBy = &resolvedBy
	sub.ResolvedAt = &resolvedAt
	s.subs[id] = sub
	return nil
}
