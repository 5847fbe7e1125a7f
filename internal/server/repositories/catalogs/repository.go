// Package catalogs manages the single-column lookup tables (categories,
// states) that objects reference.
package catalogs

import (
	"context"

	"github.com/dmitrijs2005/orio/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, kind models.CatalogKind) ([]string, error)
	EnsureDefaults(ctx context.Context, kind models.CatalogKind, values []string) error
	Ensure(ctx context.Context, kind models.CatalogKind, value string) error
}
