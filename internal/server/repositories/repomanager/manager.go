package repomanager

import (
	"context"
	"database/sql"

	"github.com/vaultcore/api/internal/dbx"
	"github.com/vaultcore/api/internal/server/repositories/projects"
	"github.com/vaultcore/api/internal/server/repositories/refreshtokens"
	"github.com/vaultcore/api/internal/server/repositories/techs"
	"github.com/vaultcore/api/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// several repositories inside one transaction by passing the same *sql.Tx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Techs(db dbx.DBTX) techs.Repository
	Projects(db dbx.DBTX) projects.Repository
}
