package catalogs

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/orio/internal/common"
	"github.com/dmitrijs2005/orio/internal/dbx"
	"github.com/dmitrijs2005/orio/internal/server/models"
	"github.com/dmitrijs2005/orio/internal/server/repositories/pgerr"
)

type table struct {
	name   string
	column string
}

var tables = map[models.CatalogKind]table{
	models.CatalogCategories: {name: `public."Categorias"`, column: `"ID_CATEGORIA"`},
	models.CatalogStates:     {name: `public."Estados"`, column: `"ID_ESTADO"`},
}

func tableFor(kind models.CatalogKind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, fmt.Errorf("%w: unknown catalog %q", common.ErrorValidation, kind)
	}
	return t, nil
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the catalog values in alphabetical order.
func (r *PostgresRepository) List(ctx context.Context, kind models.CatalogKind) ([]string, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`, t.column, t.name, t.column)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, pgerr.Wrap(err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err)
	}
	return values, nil
}

// EnsureDefaults inserts each of values that is not present yet.
func (r *PostgresRepository) EnsureDefaults(ctx context.Context, kind models.CatalogKind, values []string) error {
	for _, v := range values {
		if err := r.Ensure(ctx, kind, v); err != nil {
			return err
		}
	}
	return nil
}

// Ensure inserts value unless it already exists. Concurrent callers are safe.
func (r *PostgresRepository) Ensure(ctx context.Context, kind models.CatalogKind, value string) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) ON CONFLICT (%s) DO NOTHING`, t.name, t.column, t.column)

	if _, err := r.db.ExecContext(ctx, query, value); err != nil {
		return pgerr.Wrap(err)
	}
	return nil
}
