// Package users provides storage of registered accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/orio/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
