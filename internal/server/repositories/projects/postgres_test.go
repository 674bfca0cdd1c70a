package projects

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vaultcore/api/internal/common"
	"github.com/vaultcore/api/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func strPtr(s string) *string { return &s }

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+projects\b.*RETURNING\s+id\s*$`).
		WithArgs("VaultCore", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	got, err := repo.Create(context.Background(), &models.Project{Name: "VaultCore"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("unexpected id: %d", got.ID)
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT`).
		WithArgs("VaultCore", nil).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.Project{Name: "VaultCore"})
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("want common.ErrAlreadyExists, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).
		WithArgs(int64(44)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 44)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE`).
		WithArgs(int64(44), strPtr("X"), nil).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), 44, strPtr("X"), nil)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestLinkTechs_Idempotent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+project_techs\b.*ON\s+CONFLICT\s*\(project_id,\s*tech_id\)\s*DO\s+NOTHING\s*$`

	mock.ExpectExec(q).
		WithArgs(int64(1), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// second pair already linked: zero rows affected is fine
	mock.ExpectExec(q).
		WithArgs(int64(1), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.LinkTechs(context.Background(), 1, []int64{10, 11}); err != nil {
		t.Fatalf("LinkTechs error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLinkTechs_UnknownTech(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT`).
		WithArgs(int64(1), int64(999)).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.LinkTechs(context.Background(), 1, []int64{999})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestListTechs_ReturnsLinked(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "description"}).
		AddRow(10, "Go", nil).
		AddRow(11, "Postgres", "db")

	mock.ExpectQuery(`(?s)JOIN\s+project_techs\s+pt\s+ON\s+pt\.tech_id\s*=\s*t\.id`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	got, err := repo.ListTechs(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListTechs error: %v", err)
	}
	if len(got) != 2 || got[1].Name != "Postgres" {
		t.Fatalf("unexpected result: %+v", got)
	}
}
