package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/orio/internal/dbx"
	"github.com/dmitrijs2005/orio/internal/server/repositories/catalogs"
	"github.com/dmitrijs2005/orio/internal/server/repositories/objects"
	"github.com/dmitrijs2005/orio/internal/server/repositories/reports"
	"github.com/dmitrijs2005/orio/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code
// runs against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Objects(db dbx.DBTX) objects.Repository
	Reports(db dbx.DBTX) reports.Repository
	Catalogs(db dbx.DBTX) catalogs.Repository
}
