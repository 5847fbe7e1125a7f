package objects

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/orio/internal/common"
	"github.com/dmitrijs2005/orio/internal/dbx"
	"github.com/dmitrijs2005/orio/internal/server/models"
	"github.com/dmitrijs2005/orio/internal/server/repositories/pgerr"
)

// PostgresRepository implements object storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts obj. When obj.ID is already taken nothing is written and
// common.ErrorConflict is returned so the caller can draw a new ID.
func (r *PostgresRepository) Create(ctx context.Context, obj *models.Object) error {
	query := `
		INSERT INTO public."Objetos"
		("ID_OBJETO", "NOMBRE", "COLOR", "ID_ESTADO", "LUGAR_ENCONTRADO", "ID_CATEGORIA", "IMAGEN")
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT ("ID_OBJETO") DO NOTHING`

	res, err := r.db.ExecContext(ctx, query,
		obj.ID, obj.Name, obj.Color, obj.State, obj.Place, obj.Category, nullString(obj.Image))
	if err != nil {
		return pgerr.Wrap(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorConflict
	}
	return nil
}

// Search runs the filter built by buildSearchQuery. No match yields an
// empty, non-nil slice.
func (r *PostgresRepository) Search(ctx context.Context, filter models.SearchFilter) ([]models.ObjectSummary, error) {
	query, args, err := buildSearchQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	result := make([]models.ObjectSummary, 0)
	for rows.Next() {
		var item models.ObjectSummary
		if err := rows.Scan(&item.ID, &item.Name, &item.Color, &item.Image, &item.Category); err != nil {
			return nil, pgerr.Wrap(err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err)
	}
	return result, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
