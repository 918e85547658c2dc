package service

import (
	"context"
	"sort"
	"time"

	"github.com/statewisejobs/statewise-jobs/internal/listings"
	"github.com/statewisejobs/statewise-jobs/internal/listings/repository"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// analyticsWindow is how far back the jobs-over-time series reaches.
const analyticsWindow = 30 * 24 * time.Hour

// Service bundles the listing repositories and implements the read-side
// reporting (state counts, dashboard analytics) on top of them.
type Service struct {
	Jobs       repository.JobRepository
	Exams      repository.ExamRepository
	Results    repository.DownloadRepository
	AdmitCards repository.DownloadRepository
	AnswerKeys repository.DownloadRepository
	Syllabus   repository.DownloadRepository
	Footers    repository.FooterRepository
	Contacts   repository.ContactRepository
}

// NormalizeQuery clamps the page window to sane bounds.
func NormalizeQuery(q listings.ListQuery) listings.ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	return q
}

// Paginate builds the page descriptor for a list response.
func Paginate(total int64, q listings.ListQuery) listings.Pagination {
	pages := total / int64(q.Limit)
	if total%int64(q.Limit) != 0 {
		pages++
	}
	return listings.Pagination{Total: total, Page: q.Page, Limit: q.Limit, Pages: pages}
}

// StateCount pairs a state with its active-job count.
type StateCount struct {
	State string `json:"state"`
	Count int64  `json:"count"`
}

// DateCount pairs a YYYY-MM-DD day with a creation count.
type DateCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// StatusCount pairs an exam status with its count.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// Analytics is the admin dashboard payload.
type Analytics struct {
	StateCounts      []StateCount `json:"stateCounts"`
	JobsOverTime     []DateCount  `json:"jobsOverTime"`
	ExamStatusCounts []StatusCount `json:"examStatusCounts"`
	Totals           struct {
		Jobs  int64 `json:"jobs"`
		Exams int64 `json:"exams"`
	} `json:"totals"`
}

// StateCounts returns active jobs grouped by state, as a map keyed by state
// name (the shape the state-browsing pages consume).
func (s *Service) StateCounts(ctx context.Context) (map[string]int64, error) {
	return s.Jobs.CountActiveByState(ctx)
}

// BuildAnalytics assembles the admin dashboard figures: jobs per state,
// jobs created over the last 30 days, exams per status, and totals.
func (s *Service) BuildAnalytics(ctx context.Context) (*Analytics, error) {
	byState, err := s.Jobs.CountActiveByState(ctx)
	if err != nil {
		return nil, err
	}
	perDay, err := s.Jobs.CreatedPerDaySince(ctx, time.Now().UTC().Add(-analyticsWindow))
	if err != nil {
		return nil, err
	}
	byStatus, err := s.Exams.CountActiveByStatus(ctx)
	if err != nil {
		return nil, err
	}
	totalJobs, err := s.Jobs.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	totalExams, err := s.Exams.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	a := &Analytics{
		StateCounts:      make([]StateCount, 0, len(byState)),
		JobsOverTime:     make([]DateCount, 0, len(perDay)),
		ExamStatusCounts: make([]StatusCount, 0, len(byStatus)),
	}
	for state, count := range byState {
		a.StateCounts = append(a.StateCounts, StateCount{State: state, Count: count})
	}
	sort.Slice(a.StateCounts, func(i, k int) bool {
		if a.StateCounts[i].Count != a.StateCounts[k].Count {
			return a.StateCounts[i].Count > a.StateCounts[k].Count
		}
		return a.StateCounts[i].State < a.StateCounts[k].State
	})
	for date, count := range perDay {
		a.JobsOverTime = append(a.JobsOverTime, DateCount{Date: date, Count: count})
	}
	sort.Slice(a.JobsOverTime, func(i, k int) bool { return a.JobsOverTime[i].Date < a.JobsOverTime[k].Date })
	for status, count := range byStatus {
		a.ExamStatusCounts = append(a.ExamStatusCounts, StatusCount{Status: status, Count: count})
	}
	sort.Slice(a.ExamStatusCounts, func(i, k int) bool { return a.ExamStatusCounts[i].Status < a.ExamStatusCounts[k].Status })
	a.Totals.Jobs = totalJobs
	a.Totals.Exams = totalExams
	return a, nil
}
