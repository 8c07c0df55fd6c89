package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/mvaleed/catalog/internal/domain"
	"github.com/mvaleed/catalog/internal/storage"
)

// op applies one staged change to a snapshot.
type op func(*snapshot) error

type unitOfWork struct {
	store *Store
	ops   []op
}

func (u *unitOfWork) Users() storage.UserRepository { return userRepository{u} }
func (u *unitOfWork) Games() storage.GameRepository { return gameRepository{u} }

// SaveChanges applies every staged change or none of them.
func (u *unitOfWork) SaveChanges(ctx context.Context) (int, error) {
	n, err := u.store.commit(ctx, u.ops)
	if err != nil {
		return 0, err
	}
	u.ops = nil
	return n, nil
}

type userRepository struct{ uow *unitOfWork }

func (r userRepository) Add(user *domain.User) {
	rec := user.Record()
	r.uow.ops = append(r.uow.ops, func(s *snapshot) error {
		key := emailKey(rec.Email)
		if _, taken := s.usersByEmail[key]; taken {
			return &storage.DuplicateKeyError{
				ConstraintName: storage.ConstraintUserEmail,
				TableName:      "users",
				ColumnName:     "email",
			}
		}
		s.users[rec.ID] = rec
		s.usersByEmail[key] = rec.ID
		return nil
	})
}

func (r userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.uow.store.userByID(ctx, id)
}

func (r userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	id, ok, err := r.uow.store.userIDByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.uow.store.userByID(ctx, id)
}

func (r userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok, err := r.uow.store.userIDByEmail(ctx, email)
	return ok, err
}

type gameRepository struct{ uow *unitOfWork }

func (r gameRepository) Add(game *domain.Game) {
	row := gameRow{id: game.ID(), createdAt: game.CreatedAt(), params: game.Params()}
	r.uow.ops = append(r.uow.ops, func(s *snapshot) error {
		key := nameKey(row.params.Name)
		if _, taken := s.gamesByName[key]; taken {
			return duplicateGameName()
		}
		s.games[row.id] = row
		s.gamesByName[key] = row.id
		return nil
	})
}

func (r gameRepository) Update(game *domain.Game) {
	row := gameRow{id: game.ID(), createdAt: game.CreatedAt(), params: game.Params()}
	r.uow.ops = append(r.uow.ops, func(s *snapshot) error {
		old, ok := s.games[row.id]
		if !ok {
			return domain.ErrNotFound
		}
		key := nameKey(row.params.Name)
		if owner, taken := s.gamesByName[key]; taken && owner != row.id {
			return duplicateGameName()
		}
		delete(s.gamesByName, nameKey(old.params.Name))
		s.games[row.id] = row
		s.gamesByName[key] = row.id
		return nil
	})
}

func (r gameRepository) Remove(id uuid.UUID) {
	r.uow.ops = append(r.uow.ops, func(s *snapshot) error {
		old, ok := s.games[id]
		if !ok {
			return domain.ErrNotFound
		}
		delete(s.games, id)
		delete(s.gamesByName, nameKey(old.params.Name))
		return nil
	})
}

func (r gameRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	return r.uow.store.gameByID(ctx, id)
}

func duplicateGameName() error {
	return &storage.DuplicateKeyError{
		ConstraintName: storage.ConstraintGameName,
		TableName:      "games",
		ColumnName:     "name",
	}
}
