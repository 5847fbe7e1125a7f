package reports

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/orio/internal/common"
	"github.com/dmitrijs2005/orio/internal/dbx"
	"github.com/dmitrijs2005/orio/internal/server/models"
	"github.com/dmitrijs2005/orio/internal/server/repositories/pgerr"
)

type table struct {
	name     string
	idColumn string
}

var tables = map[models.ReportKind]table{
	models.ReportLost:  {name: `public."Reportes_perdidos"`, idColumn: `"ID_REPORTE"`},
	models.ReportFound: {name: `public."Reportes_encontrados"`, idColumn: `"ID_REPORTE_ENC"`},
}

func tableFor(kind models.ReportKind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, fmt.Errorf("%w: unknown report kind %q", common.ErrorValidation, kind)
	}
	return t, nil
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts report into the table for kind. A taken report ID yields
// common.ErrorConflict and nothing is written.
func (r *PostgresRepository) Create(ctx context.Context, kind models.ReportKind, report *models.Report) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		`INSERT INTO %s
		 (%s, "FECHA", "OBSERVACIONES", "ID_OBJETO", "ID_USUARIO", "FICHA", "ID_CATEGORIA")
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (%s) DO NOTHING`, t.name, t.idColumn, t.idColumn)

	res, err := r.db.ExecContext(ctx, query,
		report.ID, nullDate(report.Date), nullText(report.Observation),
		report.ObjectID, report.UserID, nullInt(report.FileNumber), report.Category)
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

// FoundDuplicateExists reports whether userID already filed a found report
// for an object with the same name, color and category.
func (r *PostgresRepository) FoundDuplicateExists(ctx context.Context, userID, name, color, category string) (bool, error) {
	query :=
		`SELECT EXISTS (
		   SELECT 1
		   FROM public."Reportes_encontrados" r
		   JOIN public."Objetos" o ON o."ID_OBJETO" = r."ID_OBJETO"
		   WHERE r."ID_USUARIO" = $1 AND o."NOMBRE" = $2 AND o."COLOR" = $3 AND o."ID_CATEGORIA" = $4
		 )`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, name, color, category).Scan(&exists); err != nil {
		return false, pgerr.Wrap(err)
	}
	return exists, nil
}

// ListByUser returns every report userID filed, newest date first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.UserReport, error) {
	query :=
		`SELECT 'perdido', r."ID_REPORTE", r."FECHA", COALESCE(r."OBSERVACIONES", ''), r."FICHA",
		        o."ID_OBJETO", o."NOMBRE", o."COLOR", o."ID_ESTADO", o."LUGAR_ENCONTRADO", o."ID_CATEGORIA", COALESCE(o."IMAGEN", '')
		 FROM public."Reportes_perdidos" r
		 JOIN public."Objetos" o ON o."ID_OBJETO" = r."ID_OBJETO"
		 WHERE r."ID_USUARIO" = $1
		 UNION ALL
		 SELECT 'encontrado', r."ID_REPORTE_ENC", r."FECHA", COALESCE(r."OBSERVACIONES", ''), r."FICHA",
		        o."ID_OBJETO", o."NOMBRE", o."COLOR", o."ID_ESTADO", o."LUGAR_ENCONTRADO", o."ID_CATEGORIA", COALESCE(o."IMAGEN", '')
		 FROM public."Reportes_encontrados" r
		 JOIN public."Objetos" o ON o."ID_OBJETO" = r."ID_OBJETO"
		 WHERE r."ID_USUARIO" = $1
		 ORDER BY 3 DESC NULLS LAST, 2`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	result := make([]models.UserReport, 0)
	for rows.Next() {
		var (
			item models.UserReport
			kind string
			date sql.NullTime
			file sql.NullInt64
		)
		if err := rows.Scan(&kind, &item.ReportID, &date, &item.Observation, &file,
			&item.Object.ID, &item.Object.Name, &item.Object.Color, &item.Object.State,
			&item.Object.Place, &item.Object.Category, &item.Object.Image); err != nil {
			return nil, pgerr.Wrap(err)
		}
		item.Kind = models.ReportKind(kind)
		if date.Valid {
			d := date.Time
			item.Date = &d
		}
		if file.Valid {
			f := int(file.Int64)
			item.FileNumber = &f
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err)
	}
	return result, nil
}

func nullText(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
