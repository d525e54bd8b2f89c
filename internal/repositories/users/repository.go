// Package users persists registered accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/doclocker/internal/models"
)

// Repository is the credential store. Create reports duplicates as
// common.ErrUsernameTaken or common.ErrEmailTaken; GetByUsername reports a
// missing user as common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
