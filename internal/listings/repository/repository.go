package repository

import (
	"context"
	"errors"
	"time"

	"github.com/statewisejobs/statewise-jobs/internal/listings"
)

var (
	ErrNotFound = errors.New("listing not found")
)

// JobRepository persists job notifications. List applies the query's
// case-insensitive title/department search and returns the page plus the
// total match count.
type JobRepository interface {
	Create(ctx context.Context, j *listings.Job) (string, error)
	Get(ctx context.Context, id string) (*listings.Job, error)
	List(ctx context.Context, q listings.ListQuery) ([]*listings.Job, int64, error)
	Update(ctx context.Context, id string, j *listings.Job) error
	Delete(ctx context.Context, id string) error
	CountActiveByState(ctx context.Context) (map[string]int64, error)
	CountActive(ctx context.Context) (int64, error)
	CreatedPerDaySince(ctx context.Context, since time.Time) (map[string]int64, error)
}

// ExamRepository persists exam-calendar entries.
type ExamRepository interface {
	Create(ctx context.Context, e *listings.Exam) (string, error)
	Get(ctx context.Context, id string) (*listings.Exam, error)
	List(ctx context.Context, q listings.ListQuery) ([]*listings.Exam, int64, error)
	Update(ctx context.Context, id string, e *listings.Exam) error
	Delete(ctx context.Context, id string) error
	CountActiveByStatus(ctx context.Context) (map[string]int64, error)
	CountActive(ctx context.Context) (int64, error)
}

// DownloadRepository persists one link-listing collection (results,
// admit cards, answer keys, or syllabus).
type DownloadRepository interface {
	Create(ctx context.Context, d *listings.Download) (string, error)
	Get(ctx context.Context, id string) (*listings.Download, error)
	List(ctx context.Context, q listings.ListQuery) ([]*listings.Download, int64, error)
	Update(ctx context.Context, id string, d *listings.Download) error
	Delete(ctx context.Context, id string) error
}

// FooterRepository persists footer content; GetActive returns the single
// active document or nil.
type FooterRepository interface {
	GetActive(ctx context.Context) (*listings.Footer, error)
	Create(ctx context.Context, f *listings.Footer) (string, error)
	Update(ctx context.Context, id string, f *listings.Footer) error
}

// ContactRepository persists visitor messages.
type ContactRepository interface {
	Create(ctx context.Context, c *listings.Contact) (string, error)
	List(ctx context.Context, q listings.ListQuery) ([]*listings.Contact, int64, error)
}
