package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"petcare/internal/adapters/storage/sqlstore"
	"petcare/internal/domain/pets"
	"petcare/internal/domain/users"
	"petcare/internal/ports/auth"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// newPgMock arma un *sqlx.DB con driver "pgx" para que Rebind genere $1, $2...
func newPgMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, sqlstore.DriverPostgres), mock
}

func TestPostgresUsersRepo_Create_UniqueViolation(t *testing.T) {
	db, mock := newPgMock(t)
	r := sqlstore.NewUsersRepo(db)

	mock.ExpectExec(`INSERT INTO users .* VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)`).
		WithArgs("u-1", "Ana", "ana@example.com", "hash", int(auth.RoleAdmin), sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := r.Create(context.Background(), users.User{
		ID: "u-1", FullName: "Ana", Email: "ana@example.com", PasswordHash: "hash",
		Role: auth.RoleAdmin, CreatedAt: time.Now(),
	})
	require.ErrorIs(t, err, users.ErrEmailTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUsersRepo_GetByEmail(t *testing.T) {
	db, mock := newPgMock(t)
	r := sqlstore.NewUsersRepo(db)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, full_name, email, password_hash, role, created_at FROM users WHERE email = \$1`).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "password_hash", "role", "created_at"}).
			AddRow("u-1", "Ana", "ana@example.com", "hash", 1, now))

	u, err := r.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, "u-1", u.ID)
	require.True(t, u.Role.IsAdmin())

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err = r.GetByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, users.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPetsRepo_Create_ForeignKeyViolation(t *testing.T) {
	db, mock := newPgMock(t)
	r := sqlstore.NewPetsRepo(db)

	mock.ExpectExec(`INSERT INTO pets`).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	now := time.Now()
	err := r.Create(context.Background(), pets.Pet{
		ID: "p-1", OwnerUserID: "ghost", Name: "Rex", Type: "dog", Age: 1, CreatedAt: now, UpdatedAt: now,
	})
	require.ErrorIs(t, err, pets.ErrOwnerNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPetsRepo_UpdateDelete_NoRows(t *testing.T) {
	db, mock := newPgMock(t)
	r := sqlstore.NewPetsRepo(db)

	mock.ExpectExec(`UPDATE pets SET name = \$1, type = \$2, age = \$3, updated_at = \$4 WHERE id = \$5`).
		WithArgs("Rex", "dog", 2, sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM pets WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM pets WHERE id = \$1`).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := r.Update(context.Background(), pets.Pet{ID: "missing", Name: "Rex", Type: "dog", Age: 2, UpdatedAt: time.Now()})
	require.ErrorIs(t, err, pets.ErrNotFound)

	require.ErrorIs(t, r.Delete(context.Background(), "missing"), pets.ErrNotFound)
	require.NoError(t, r.Delete(context.Background(), "p-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPetsRepo_ListByOwner(t *testing.T) {
	db, mock := newPgMock(t)
	r := sqlstore.NewPetsRepo(db)

	now := time.Now().UTC()
	cols := []string{"id", "owner_user_id", "name", "type", "age", "created_at", "updated_at"}
	mock.ExpectQuery(`FROM pets WHERE owner_user_id = \$1 ORDER BY created_at ASC, id ASC`).
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("p-1", "owner-1", "Rex", "dog", 3, now, now).
			AddRow("p-2", "owner-1", "Mia", "cat", 1, now, now))

	items, err := r.ListByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Mia", items[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
