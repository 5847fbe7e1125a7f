package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/orio/internal/common"
	"github.com/dmitrijs2005/orio/internal/server/models"
	"github.com/dmitrijs2005/orio/internal/server/repositories/repomanager"
)

const MsgInvalidReportKind = "Tipo de reporte inválido"

// SearchQuery is the raw search input; every field is optional.
type SearchQuery struct {
	Text     string
	Category string
	Color    string
	Kind     string
}

type SearchService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSearchService(db *sql.DB, m repomanager.RepositoryManager) *SearchService {
	return &SearchService{db: db, repomanager: m}
}

// Search returns matching objects ordered by name. No match is an empty
// slice, not an error.
func (s *SearchService) Search(ctx context.Context, q SearchQuery) ([]models.ObjectSummary, error) {
	kind, err := models.ParseReportKind(strings.ToLower(strings.TrimSpace(q.Kind)))
	if err != nil {
		return nil, common.NewUserError(common.ErrorValidation, MsgInvalidReportKind)
	}

	filter := models.SearchFilter{
		Text:     strings.TrimSpace(q.Text),
		Category: strings.TrimSpace(q.Category),
		Color:    strings.TrimSpace(q.Color),
		Kind:     kind,
	}

	result, err := s.repomanager.Objects(s.db).Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error searching objects: %w", err)
	}
	return result, nil
}
