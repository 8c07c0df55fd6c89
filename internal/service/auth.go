package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvaleed/catalog/internal/auth"
	"github.com/mvaleed/catalog/internal/domain"
	"github.com/mvaleed/catalog/internal/result"
)

// invalidCredentials is returned for both an unknown email and a wrong
// password so callers cannot probe for accounts.
const invalidCredentials = "invalid email or password"

// AuthenticateUser verifies an email and password pair.
func (s *UserService) AuthenticateUser(ctx context.Context, q AuthenticateUserQuery) (result.Result[*domain.User], error) {
	user, err := s.uow.New().Users().GetByEmail(ctx, q.Email)
	if errors.Is(err, domain.ErrNotFound) {
		_ = s.hasher.CompareDummy(q.Password)
		return result.Unauthorized[*domain.User](invalidCredentials), nil
	}
	if err != nil {
		return result.Error[*domain.User]("could not load user"), fmt.Errorf("authenticate: %w", err)
	}

	if err := s.hasher.Compare(q.Password, user.PasswordHash()); err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			return result.Unauthorized[*domain.User](invalidCredentials), nil
		}
		return result.Error[*domain.User]("could not verify password"), fmt.Errorf("compare password: %w", err)
	}

	return result.Success(user), nil
}
