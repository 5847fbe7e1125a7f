// Package reports stores lost and found reports. The two kinds live in
// separate tables with the same shape.
package reports

import (
	"context"

	"github.com/dmitrijs2005/orio/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, kind models.ReportKind, report *models.Report) error
	FoundDuplicateExists(ctx context.Context, userID, name, color, category string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.UserReport, error)
}
