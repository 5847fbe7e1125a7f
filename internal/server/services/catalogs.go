package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/orio/internal/logging"
	"github.com/dmitrijs2005/orio/internal/server/models"
	"github.com/dmitrijs2005/orio/internal/server/repositories/repomanager"
)

// CatalogService serves the category and state catalogs, filling in the
// defaults the first time a catalog is found empty.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *CatalogService {
	return &CatalogService{
		db:          db,
		repomanager: m,
		log:         log.With("module", "catalogs"),
	}
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.list(ctx, models.CatalogCategories, models.DefaultCategories)
}

func (s *CatalogService) States(ctx context.Context) ([]string, error) {
	return s.list(ctx, models.CatalogStates, models.DefaultStates)
}

// Bootstrap seeds both catalogs at startup.
func (s *CatalogService) Bootstrap(ctx context.Context) error {
	if _, err := s.Categories(ctx); err != nil {
		return err
	}
	if _, err := s.States(ctx); err != nil {
		return err
	}
	return nil
}

func (s *CatalogService) list(ctx context.Context, kind models.CatalogKind, defaults []string) ([]string, error) {
	repo := s.repomanager.Catalogs(s.db)

	values, err := repo.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", kind, err)
	}
	if len(values) > 0 {
		return values, nil
	}

	if err := repo.EnsureDefaults(ctx, kind, defaults); err != nil {
		return nil, fmt.Errorf("error seeding %s: %w", kind, err)
	}
	s.log.Info(ctx, "catalog seeded", "catalog", kind, "values", len(defaults))

	values, err = repo.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", kind, err)
	}
	return values, nil
}
