package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain"
	"github.com/ArturKolozyan/telegram-feedback-bot/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseRepository_UpsertMood(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newResponseRepo(db.conn)

	resp := &entity.Response{
		Date:      "2026-08-17",
		ChatID:    100,
		Username:  "ivan",
		Mood:      domain.MoodGood,
		Timestamp: time.Now(),
	}

	err := repo.UpsertMood(resp)
	require.NoError(t, err, "Failed to record mood")

	found, err := repo.Get("2026-08-17", 100)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, domain.MoodGood, found.Mood)
	assert.Empty(t, found.Project)
	assert.Nil(t, found.CompletedAt)
}

func TestResponseRepository_UpsertMood_ResetsProject(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newResponseRepo(db.conn)

	now := time.Now()
	resp := &entity.Response{Date: "2026-08-17", ChatID: 100, Username: "ivan", Mood: domain.MoodGood, Timestamp: now}
	require.NoError(t, repo.UpsertMood(resp))
	require.NoError(t, repo.SetProject("2026-08-17", 100, "Проект А", now))

	// Picking a new mood overwrites the answer and clears the note.
	resp.Mood = domain.MoodBad
	require.NoError(t, repo.UpsertMood(resp))

	found, err := repo.Get("2026-08-17", 100)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, domain.MoodBad, found.Mood)
	assert.Empty(t, found.Project, "Project note must be cleared on mood change")
	assert.Nil(t, found.CompletedAt, "Completion time must be cleared on mood change")
}

func TestResponseRepository_SetProject_NoResponse(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newResponseRepo(db.conn)

	err := repo.SetProject("2026-08-17", 100, "Проект А", time.Now())
	assert.ErrorIs(t, err, sql.ErrNoRows, "Note without a recorded mood must fail")
}

func TestResponseRepository_GetByDate_InsertionOrder(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newResponseRepo(db.conn)

	now := time.Now()
	first := &entity.Response{Date: "2026-08-17", ChatID: 300, Username: "anna", Mood: domain.MoodExcellent, Timestamp: now}
	second := &entity.Response{Date: "2026-08-17", ChatID: 100, Username: "ivan", Mood: domain.MoodGood, Timestamp: now}
	require.NoError(t, repo.UpsertMood(first))
	require.NoError(t, repo.UpsertMood(second))

	// Re-answering must not move the first responder to the back.
	first.Mood = domain.MoodGood
	require.NoError(t, repo.UpsertMood(first))

	responses, err := repo.GetByDate("2026-08-17")
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Equal(t, "anna", responses[0].Username)
	assert.Equal(t, "ivan", responses[1].Username)
}

func TestResponseRepository_GetByUserAndMonth(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newResponseRepo(db.conn)

	now := time.Now()
	for _, date := range []string{"2026-08-03", "2026-08-17", "2026-09-01"} {
		require.NoError(t, repo.UpsertMood(&entity.Response{
			Date: date, ChatID: 100, Username: "ivan", Mood: domain.MoodGood, Timestamp: now,
		}))
	}

	responses, err := repo.GetByUserAndMonth(100, 2026, time.August)
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Equal(t, "2026-08-03", responses[0].Date)
	assert.Equal(t, "2026-08-17", responses[1].Date)
}

func TestResponseRepository_SurvivesUserDeletion(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	users := newUserRepo(db.conn)
	responses := newResponseRepo(db.conn)

	require.NoError(t, users.Upsert(&entity.User{ChatID: 100, Username: "ivan", RegisteredAt: time.Now()}))
	require.NoError(t, responses.UpsertMood(&entity.Response{
		Date: "2026-08-17", ChatID: 100, Username: "ivan", Mood: domain.MoodGood, Timestamp: time.Now(),
	}))

	require.NoError(t, users.Delete(100))

	found, err := responses.Get("2026-08-17", 100)
	require.NoError(t, err)
	require.NotNil(t, found, "History must survive roster deletion")
	assert.Equal(t, "ivan", found.Username)
}

func TestResponseRepository_Counts(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newResponseRepo(db.conn)

	now := time.Now()
	require.NoError(t, repo.UpsertMood(&entity.Response{Date: "2026-08-17", ChatID: 100, Username: "ivan", Mood: domain.MoodGood, Timestamp: now}))
	require.NoError(t, repo.UpsertMood(&entity.Response{Date: "2026-08-17", ChatID: 200, Username: "anna", Mood: domain.MoodBad, Timestamp: now}))
	require.NoError(t, repo.UpsertMood(&entity.Response{Date: "2026-08-18", ChatID: 100, Username: "ivan", Mood: domain.MoodGood, Timestamp: now}))

	count, err := repo.CountByUser(100)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	dates, err := repo.DistinctDateCount()
	require.NoError(t, err)
	assert.Equal(t, 2, dates)

	counts, err := repo.RecentDayCounts(7)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "2026-08-18", counts[0].Date, "Newest date first")
	assert.Equal(t, 1, counts[0].Count)
	assert.Equal(t, 2, counts[1].Count)
}
