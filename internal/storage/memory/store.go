// Package memory implements the storage interfaces in process memory.
//
// It enforces the same unique constraints as the PostgreSQL schema
// (users_email_key, games_name_key) so duplicate handling behaves the same
// in development and tests.
package memory

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mvaleed/catalog/internal/domain"
	"github.com/mvaleed/catalog/internal/storage"
)

type gameRow struct {
	id        uuid.UUID
	createdAt time.Time
	params    domain.GameParams
}

// Store holds committed rows. It is safe for concurrent use.
type Store struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]domain.UserRecord
	usersByEmail map[string]uuid.UUID
	games        map[uuid.UUID]gameRow
	gamesByName  map[string]uuid.UUID
}

func New() *Store {
	return &Store{
		users:        make(map[uuid.UUID]domain.UserRecord),
		usersByEmail: make(map[string]uuid.UUID),
		games:        make(map[uuid.UUID]gameRow),
		gamesByName:  make(map[string]uuid.UUID),
	}
}

// New implements storage.UnitOfWorkFactory.
func (s *Store) New() storage.UnitOfWork {
	return &unitOfWork{store: s}
}

// snapshot is a mutable copy of the store used to apply a batch before
// swapping it in.
type snapshot struct {
	users        map[uuid.UUID]domain.UserRecord
	usersByEmail map[string]uuid.UUID
	games        map[uuid.UUID]gameRow
	gamesByName  map[string]uuid.UUID
}

func (s *Store) snapshot() *snapshot {
	return &snapshot{
		users:        maps.Clone(s.users),
		usersByEmail: maps.Clone(s.usersByEmail),
		games:        maps.Clone(s.games),
		gamesByName:  maps.Clone(s.gamesByName),
	}
}

func (s *Store) commit(ctx context.Context, ops []op) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(ops) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	for _, o := range ops {
		if err := o(snap); err != nil {
			return 0, err
		}
	}
	s.users, s.usersByEmail = snap.users, snap.usersByEmail
	s.games, s.gamesByName = snap.games, snap.gamesByName
	return len(ops), nil
}

func (s *Store) userByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	rec, ok := s.users[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return restoreUser(rec)
}

func (s *Store) userIDByEmail(ctx context.Context, email string) (uuid.UUID, bool, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, false, err
	}
	s.mu.RLock()
	id, ok := s.usersByEmail[emailKey(email)]
	s.mu.RUnlock()
	return id, ok, nil
}

func (s *Store) gameByID(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	row, ok := s.games[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	r := domain.RestoreGame(row.id, row.createdAt, row.params)
	if !r.IsOK() {
		return nil, fmt.Errorf("game %s: %w: %s", row.id, storage.ErrCorruptRecord, r)
	}
	return r.Value(), nil
}

func restoreUser(rec domain.UserRecord) (*domain.User, error) {
	r := domain.RestoreUser(rec)
	if !r.IsOK() {
		return nil, fmt.Errorf("user %s: %w: %s", rec.ID, storage.ErrCorruptRecord, r)
	}
	return r.Value(), nil
}

func emailKey(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func nameKey(name string) string { return strings.ToLower(strings.TrimSpace(name)) }
