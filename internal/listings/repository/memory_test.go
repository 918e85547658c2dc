package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statewisejobs/statewise-jobs/internal/listings"
)

func TestMemoryJobRepository_PageBeyondEndIsEmpty(t *testing.T) {
	repo := NewMemoryJobRepository()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, &listings.Job{Title: "Job", State: "Goa", IsActive: true})
		require.NoError(t, err)
	}

	jobs, total, err := repo.List(ctx, listings.ListQuery{Page: 5, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.Equal(t, int64(3), total)
}

func TestMemoryJobRepository_UpdateKeepsCreatedAt(t *testing.T) {
	repo := NewMemoryJobRepository()
	ctx := context.Background()

	id, err := repo.Create(ctx, &listings.Job{Title: "Original", State: "Goa", IsActive: true})
	require.NoError(t, err)
	before, err := repo.Get(ctx, id)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, repo.Update(ctx, id, &listings.Job{Title: "Renamed", State: "Goa", IsActive: true}))

	after, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", after.Title)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestMemoryJobRepository_CreatedPerDayIgnoresOldAndInactive(t *testing.T) {
	repo := NewMemoryJobRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &listings.Job{Title: "Active", State: "Goa", IsActive: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &listings.Job{Title: "Inactive", State: "Goa", IsActive: false})
	require.NoError(t, err)

	counts, err := repo.CreatedPerDaySince(ctx, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	today := time.Now().UTC().Format("2006-01-02")
	assert.Equal(t, int64(1), counts[today])

	counts, err = repo.CreatedPerDaySince(ctx, time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestMemoryFooterRepository_GetActiveSkipsInactive(t *testing.T) {
	repo := NewMemoryFooterRepository()
	ctx := context.Background()

	f, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Nil(t, f)

	_, err = repo.Create(ctx, &listings.Footer{Title: "Old", IsActive: false})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &listings.Footer{Title: "Current", IsActive: true})
	require.NoError(t, err)

	f, err = repo.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "Current", f.Title)
}

func TestMemoryDownloadRepository_DeleteUnknown(t *testing.T) {
	repo := NewMemoryDownloadRepository()
	assert.Equal(t, ErrNotFound, repo.Delete(context.Background(), "missing"))
}
