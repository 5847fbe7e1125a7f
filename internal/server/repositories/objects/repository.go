// Package objects stores reported objects and implements the search query.
package objects

import (
	"context"

	"github.com/dmitrijs2005/orio/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, obj *models.Object) error
	Search(ctx context.Context, filter models.SearchFilter) ([]models.ObjectSummary, error)
}
