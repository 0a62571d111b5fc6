package database

import (
	"testing"
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Upsert(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newUserRepo(db.conn)

	user := &entity.User{
		ChatID:       100,
		Username:     "ivan",
		FirstName:    "Иван",
		LastName:     "Петров",
		RegisteredAt: time.Now(),
	}

	err := repo.Upsert(user)
	require.NoError(t, err, "Failed to create user")

	found, err := repo.Get(100)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "ivan", found.Username)
	assert.Equal(t, "Иван", found.FirstName)
	assert.False(t, found.IsAdmin)
}

func TestUserRepository_Upsert_RefreshesExisting(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newUserRepo(db.conn)

	registeredAt := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	err := repo.Upsert(&entity.User{ChatID: 100, Username: "ivan", RegisteredAt: registeredAt})
	require.NoError(t, err)

	// Repeat /start with a changed username must update in place.
	err = repo.Upsert(&entity.User{ChatID: 100, Username: "ivan_new", RegisteredAt: time.Now()})
	require.NoError(t, err)

	found, err := repo.Get(100)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "ivan_new", found.Username)
	assert.Equal(t, registeredAt.Unix(), found.RegisteredAt.Unix(), "Original registration time must survive")

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserRepository_Get_NotFound(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newUserRepo(db.conn)

	found, err := repo.Get(999)
	require.NoError(t, err, "Unexpected error when user not found")
	assert.Nil(t, found, "Expected nil when user not found")
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newUserRepo(db.conn)

	err := repo.Upsert(&entity.User{ChatID: 100, Username: "Ivan", RegisteredAt: time.Now()})
	require.NoError(t, err)

	found, err := repo.GetByUsername("ivan")
	require.NoError(t, err)
	require.NotNil(t, found, "Lookup must be case-insensitive")
	assert.Equal(t, int64(100), found.ChatID)

	notFound, err := repo.GetByUsername("nobody")
	require.NoError(t, err)
	assert.Nil(t, notFound)
}

func TestUserRepository_GetAll_RegistrationOrder(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newUserRepo(db.conn)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	// Larger chat ID registered first: order must follow time, not ID.
	require.NoError(t, repo.Upsert(&entity.User{ChatID: 500, Username: "first", RegisteredAt: base}))
	require.NoError(t, repo.Upsert(&entity.User{ChatID: 100, Username: "second", RegisteredAt: base.Add(time.Minute)}))
	require.NoError(t, repo.Upsert(&entity.User{ChatID: 300, Username: "third", RegisteredAt: base.Add(2 * time.Minute)}))

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Username)
	assert.Equal(t, "second", all[1].Username)
	assert.Equal(t, "third", all[2].Username)
}

func TestUserRepository_Delete(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newUserRepo(db.conn)

	require.NoError(t, repo.Upsert(&entity.User{ChatID: 100, Username: "ivan", RegisteredAt: time.Now()}))

	err := repo.Delete(100)
	require.NoError(t, err)

	found, err := repo.Get(100)
	require.NoError(t, err)
	assert.Nil(t, found)
}
