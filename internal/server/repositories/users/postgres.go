package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/orio/internal/common"
	"github.com/dmitrijs2005/orio/internal/dbx"
	"github.com/dmitrijs2005/orio/internal/server/models"
	"github.com/dmitrijs2005/orio/internal/server/repositories/pgerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts user. An existing ID yields common.ErrorConflict; the
// ON CONFLICT clause makes concurrent registrations of one ID race-free.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO public."Usuarios"
		 ("ID_USUARIO", "NOMBRE", "CONTRASENA", "PREGUNTA_1", "PREGUNTA_2", "RESPUESTA_1", "RESPUESTA_2")
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT ("ID_USUARIO") DO NOTHING`

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.PasswordHash, user.Question1, user.Question2, user.Answer1Hash, user.Answer2Hash)
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

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT "ID_USUARIO", COALESCE("NOMBRE", ''), "CONTRASENA", "PREGUNTA_1", "PREGUNTA_2", "RESPUESTA_1", "RESPUESTA_2"
		 FROM public."Usuarios"
		 WHERE "ID_USUARIO" = $1`

	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.PasswordHash, &u.Question1, &u.Question2, &u.Answer1Hash, &u.Answer2Hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, pgerr.Wrap(err)
	}

	return u, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	query :=
		`UPDATE public."Usuarios" SET "CONTRASENA" = $1
		 WHERE "ID_USUARIO" = $2`

	res, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return pgerr.Wrap(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
