package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-tutoring-backend/internal/domain"
	"go-tutoring-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func testRepo(t *testing.T) *SubmissionRepository {
	t.Helper()
	return NewSubmissionRepository(filepath.Join(t.TempDir(), "data", "submissions.json"))
}

func testRequest() domain.ContactRequest {
	return domain.ContactRequest{
		Name:        "山田太郎",
		Furigana:    "やまだたろう",
		Phone:       "090-1234-5678",
		Email:       "taro@example.com",
		InquiryType: domain.InquiryLesson,
		Message:     "体験レッスンについて教えてください",
	}
}

func TestSaveRoundTrip(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	before := time.Now().UTC()

	saved, err := repo.Save(ctx, testRequest(), "203.0.113.7")
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, domain.StatusNew, saved.Status)
	assert.Equal(t, 1, saved.SchemaVersion)
	assert.False(t, saved.CreatedAt.Before(before.Truncate(time.Second)))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "山田太郎", got.Name)
	assert.Equal(t, "やまだたろう", got.Furigana)
	assert.Equal(t, "090-1234-5678", got.Phone)
	assert.Equal(t, "taro@example.com", got.Email)
	assert.Equal(t, domain.InquiryLesson, got.InquiryType)
	assert.Equal(t, "体験レッスンについて教えてください", got.Message)
	assert.Equal(t, "203.0.113.7", got.IP)
	assert.True(t, got.CreatedAt.Equal(saved.CreatedAt))
}

func TestSavePrependsNewestFirst(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	first, err := repo.Save(ctx, testRequest(), "")
	require.NoError(t, err)
	second, err := repo.Save(ctx, testRequest(), "")
	require.NoError(t, err)

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, first.ID, records[1].ID)
}

func TestListMissingFileIsEmptyLog(t *testing.T) {
	repo := testRepo(t)
	records, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadDefaultsMissingSchemaVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "submissions.json")
	legacy := `[{"id":"legacy-1","name":"山田","phone":"090","email":"a@b.jp","inquiryType":"other","message":"old record","status":"new","createdAt":"2024-01-15T09:00:00Z"}]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	repo := NewSubmissionRepository(path)
	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].SchemaVersion)
}

func TestUpdateStatus(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, testRequest(), "")
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(ctx, saved.ID, domain.StatusReplied)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReplied, updated.Status)

	records, _ := repo.List(ctx)
	assert.Equal(t, domain.StatusReplied, records[0].Status)
}

func TestUpdateStatusUnknownID(t *testing.T) {
	repo := testRepo(t)
	_, err := repo.UpdateStatus(context.Background(), "nope", domain.StatusRead)
	assert.ErrorIs(t, err, domain.ErrSubmissionNotFound)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	saved, err := repo.Save(ctx, testRequest(), "")
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, saved.ID, "archived")
	assert.Error(t, err)
}
