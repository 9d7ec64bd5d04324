package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
)

// maxSaveRetries bounds the reload-and-retry loop on version conflicts.
const maxSaveRetries = 3

// loadUser fetches the aggregate, mapping a missing row to NotFound.
func loadUser(ctx context.Context, users repository.UserRepository, userID string) (*domain.User, error) {
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// mutateUser runs the load-mutate-save cycle under optimistic concurrency.
// A version conflict means another request saved the aggregate between our
// load and write; the cycle reloads and reapplies the mutation.
func mutateUser(ctx context.Context, users repository.UserRepository, userID string, mutate func(*domain.User) error) (*domain.User, error) {
	var lastErr error
	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		user, err := loadUser(ctx, users, userID)
		if err != nil {
			return nil, err
		}
		if err := mutate(user); err != nil {
			return nil, err
		}
		err = users.Update(ctx, user)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, apperrors.NewInternalError(err)
		}
		lastErr = err
	}
	return nil, apperrors.NewInternalError(lastErr)
}
