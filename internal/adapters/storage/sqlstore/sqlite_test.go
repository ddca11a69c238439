package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"petcare/internal/adapters/storage/sqlstore"
	"petcare/internal/domain/pets"
	"petcare/internal/domain/users"
	"petcare/internal/ports/auth"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlstore.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlstore.Migrate(context.Background(), db))
	// idempotente: se corre en cada arranque
	require.NoError(t, sqlstore.Migrate(context.Background(), db))
	return db
}

func seedUser(t *testing.T, r *sqlstore.UsersRepo, id, email string) users.User {
	t.Helper()
	u := users.User{
		ID:           id,
		FullName:     "User " + id,
		Email:        email,
		PasswordHash: "$2a$04$hash",
		Role:         auth.RoleUser,
		CreatedAt:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, r.Create(context.Background(), u))
	return u
}

func TestSQLite_Users(t *testing.T) {
	db := openSQLite(t)
	r := sqlstore.NewUsersRepo(db)
	ctx := context.Background()

	u := seedUser(t, r, "u-1", "ana@example.com")

	byEmail, err := r.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, auth.RoleUser, byEmail.Role)
	assert.True(t, u.CreatedAt.Equal(byEmail.CreatedAt))

	byID, err := r.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", byID.Email)

	_, err = r.GetByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, users.ErrNotFound)

	dup := u
	dup.ID = "u-2"
	err = r.Create(ctx, dup)
	assert.ErrorIs(t, err, users.ErrEmailTaken)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM users`))
	assert.Equal(t, 1, n)
}

func TestSQLite_Pets(t *testing.T) {
	db := openSQLite(t)
	ur := sqlstore.NewUsersRepo(db)
	r := sqlstore.NewPetsRepo(db)
	ctx := context.Background()

	seedUser(t, ur, "owner-1", "owner1@example.com")
	seedUser(t, ur, "owner-2", "owner2@example.com")

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	newer := pets.Pet{ID: "p-2", OwnerUserID: "owner-2", Name: "Mia", Type: "cat", Age: 2, CreatedAt: t0.Add(time.Hour), UpdatedAt: t0.Add(time.Hour)}
	older := pets.Pet{ID: "p-1", OwnerUserID: "owner-1", Name: "Rex", Type: "dog", Age: 3, CreatedAt: t0, UpdatedAt: t0}
	require.NoError(t, r.Create(ctx, newer))
	require.NoError(t, r.Create(ctx, older))

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "p-1", all[0].ID, "oldest first")
	assert.Equal(t, "p-2", all[1].ID)

	mine, err := r.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Rex", mine[0].Name)

	older.Name = "Rex II"
	older.Age = 4
	older.OwnerUserID = "owner-2" // Update no cambia el dueño
	older.UpdatedAt = t0.Add(2 * time.Hour)
	require.NoError(t, r.Update(ctx, older))

	got, err := r.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Rex II", got.Name)
	assert.Equal(t, 4, got.Age)
	assert.Equal(t, "owner-1", got.OwnerUserID)
	assert.True(t, got.UpdatedAt.Equal(older.UpdatedAt))

	require.NoError(t, r.Delete(ctx, "p-1"))
	_, err = r.GetByID(ctx, "p-1")
	assert.ErrorIs(t, err, pets.ErrNotFound)

	assert.ErrorIs(t, r.Delete(ctx, "p-1"), pets.ErrNotFound)
	assert.ErrorIs(t, r.Update(ctx, older), pets.ErrNotFound)
}

func TestSQLite_Pets_OwnerMustExist(t *testing.T) {
	db := openSQLite(t)
	r := sqlstore.NewPetsRepo(db)

	now := time.Now().UTC()
	err := r.Create(context.Background(), pets.Pet{
		ID: "p-1", OwnerUserID: "ghost", Name: "Rex", Type: "dog", Age: 1, CreatedAt: now, UpdatedAt: now,
	})
	assert.ErrorIs(t, err, pets.ErrOwnerNotFound)
}
