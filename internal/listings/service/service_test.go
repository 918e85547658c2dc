package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statewisejobs/statewise-jobs/internal/listings"
	"github.com/statewisejobs/statewise-jobs/internal/listings/repository"
)

func TestNormalizeQuery_Clamps(t *testing.T) {
	q := NormalizeQuery(listings.ListQuery{Page: 0, Limit: 0})
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, defaultLimit, q.Limit)

	q = NormalizeQuery(listings.ListQuery{Page: -3, Limit: 5000})
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, maxLimit, q.Limit)
}

func TestPaginate_RoundsUp(t *testing.T) {
	p := Paginate(21, listings.ListQuery{Page: 2, Limit: 10})
	assert.Equal(t, int64(21), p.Total)
	assert.Equal(t, int64(3), p.Pages)
	assert.Equal(t, 2, p.Page)

	p = Paginate(20, listings.ListQuery{Page: 1, Limit: 10})
	assert.Equal(t, int64(2), p.Pages)

	p = Paginate(0, listings.ListQuery{Page: 1, Limit: 10})
	assert.Equal(t, int64(0), p.Pages)
}

func TestBuildAnalytics_SortsStateCountsByCount(t *testing.T) {
	ctx := context.Background()
	svc := &Service{
		Jobs:  repository.NewMemoryJobRepository(),
		Exams: repository.NewMemoryExamRepository(),
	}

	for _, state := range []string{"Bihar", "Bihar", "Assam", "Kerala", "Assam", "Bihar"} {
		_, err := svc.Jobs.Create(ctx, &listings.Job{Title: "Post", State: state, IsActive: true})
		require.NoError(t, err)
	}
	_, err := svc.Jobs.Create(ctx, &listings.Job{Title: "Closed", State: "Kerala", IsActive: false})
	require.NoError(t, err)

	a, err := svc.BuildAnalytics(ctx)
	require.NoError(t, err)

	require.Len(t, a.StateCounts, 3)
	assert.Equal(t, StateCount{State: "Bihar", Count: 3}, a.StateCounts[0])
	assert.Equal(t, StateCount{State: "Assam", Count: 2}, a.StateCounts[1])
	assert.Equal(t, StateCount{State: "Kerala", Count: 1}, a.StateCounts[2])
	assert.Equal(t, int64(6), a.Totals.Jobs)
	assert.Equal(t, int64(0), a.Totals.Exams)
	require.Len(t, a.JobsOverTime, 1)
	assert.Equal(t, int64(6), a.JobsOverTime[0].Count)
}
