package client

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/gestio-app/gestio/internal/test_utils"
	"github.com/gestio-app/gestio/pkg/user"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	var cleanup func()
	db, cleanup = test_utils.TestWithDB()
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *PostgresRepository, int) {
	t.Helper()
	ctx := context.Background()
	uid := uuid.NewString()
	userId, err := user.NewUserRepo(db).CreateUser(ctx, user.User{
		Uid:       uid,
		Username:  "owner_" + uid[:8],
		FirstName: "Test",
		LastName:  "Owner",
		Email:     fmt.Sprintf("%s@example.com", uid[:8]),
		Role:      "user",
		Settings:  user.Settings{Timezone: "UTC", Language: user.English},
	})
	require.NoError(t, err)
	return ctx, NewPostgresRepository(db), userId
}

func TestPostgresRepository_Create(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)

	// when
	created, err := repo.Create(ctx, userId, Client{
		Name:          "Acme Corp",
		Email:         "office@acme.test",
		City:          "Bucharest",
		Country:       "Romania",
		ContactPerson: "Ana Pop",
	})

	// then
	assert.NoError(t, err)
	assert.NotZero(t, created.Id)
	assert.False(t, created.CreatedAt.IsZero())

	stored, err := repo.GetById(ctx, userId, created.Id)
	assert.NoError(t, err)
	assert.Equal(t, "Acme Corp", stored.Name)
	assert.Equal(t, "Ana Pop", stored.ContactPerson)
}

func TestPostgresRepository_GetAll_ScopedToOwner(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	_, _, otherUserId := setupTestRepository(t)
	_, err := repo.Create(ctx, userId, Client{Name: "Mine"})
	assert.NoError(t, err)
	_, err = repo.Create(ctx, otherUserId, Client{Name: "Someone else's"})
	assert.NoError(t, err)

	// when
	clients, err := repo.GetAll(ctx, userId)

	// then
	assert.NoError(t, err)
	assert.Len(t, clients, 1)
	assert.Equal(t, "Mine", clients[0].Name)
}

func TestPostgresRepository_Update(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	created, err := repo.Create(ctx, userId, Client{Name: "Before"})
	assert.NoError(t, err)

	// when
	created.Name = "After"
	created.Notes = "renamed"
	updated, err := repo.Update(ctx, userId, created)

	// then
	assert.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "renamed", updated.Notes)
}

func TestPostgresRepository_Update_NotFoundForOtherOwner(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	_, _, otherUserId := setupTestRepository(t)
	created, err := repo.Create(ctx, userId, Client{Name: "Private"})
	assert.NoError(t, err)

	// when
	_, err = repo.Update(ctx, otherUserId, created)

	// then
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestPostgresRepository_Delete(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	created, err := repo.Create(ctx, userId, Client{Name: "Short-lived"})
	assert.NoError(t, err)

	// when
	err = repo.Delete(ctx, userId, created.Id)

	// then
	assert.NoError(t, err)
	_, err = repo.GetById(ctx, userId, created.Id)
	assert.ErrorIs(t, err, ErrClientNotFound)

	// deleting again reports not found
	assert.ErrorIs(t, repo.Delete(ctx, userId, created.Id), ErrClientNotFound)
}

func TestPostgresRepository_Count(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, userId, Client{Name: fmt.Sprintf("Client %d", i)})
		assert.NoError(t, err)
	}

	// when
	count, err := repo.Count(ctx, userId)

	// then
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}
