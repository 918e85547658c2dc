package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/statewisejobs/statewise-jobs/internal/listings"
)

// In-memory repositories used by unit tests and local development without a
// MongoDB instance. Behavior mirrors the Mongo implementations: newest-first
// ordering, case-insensitive search, ErrNotFound on missing IDs.

var memSeq int64
var memSeqMu sync.Mutex

func nextMemID(prefix string) string {
	memSeqMu.Lock()
	defer memSeqMu.Unlock()
	memSeq++
	return fmt.Sprintf("%s_%d", prefix, memSeq)
}

func pageSlice(total int, q listings.ListQuery) (int, int) {
	start := (q.Page - 1) * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return start, end
}

// MemoryJobRepository is the in-memory JobRepository.
type MemoryJobRepository struct {
	mu    sync.RWMutex
	store map[string]*listings.Job
}

func NewMemoryJobRepository() *MemoryJobRepository {
	return &MemoryJobRepository{store: map[string]*listings.Job{}}
}

func (r *MemoryJobRepository) Create(ctx context.Context, j *listings.Job) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j.ID == "" {
		j.ID = nextMemID("job")
	}
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	cp := *j
	r.store[j.ID] = &cp
	return j.ID, nil
}

func (r *MemoryJobRepository) Get(ctx context.Context, id string) (*listings.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (r *MemoryJobRepository) List(ctx context.Context, q listings.ListQuery) ([]*listings.Job, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []*listings.Job{}
	needle := strings.ToLower(q.Search)
	for _, j := range r.store {
		if needle != "" &&
			!strings.Contains(strings.ToLower(j.Title), needle) &&
			!strings.Contains(strings.ToLower(j.Department), needle) {
			continue
		}
		cp := *j
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, k int) bool { return matched[i].CreatedAt.After(matched[k].CreatedAt) })
	total := int64(len(matched))
	start, end := pageSlice(len(matched), q)
	return matched[start:end], total, nil
}

func (r *MemoryJobRepository) Update(ctx context.Context, id string, j *listings.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.store[id]
	if !ok {
		return ErrNotFound
	}
	upd := *j
	upd.ID = id
	upd.CreatedAt = cur.CreatedAt
	upd.UpdatedAt = time.Now().UTC()
	r.store[id] = &upd
	return nil
}

func (r *MemoryJobRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[id]; !ok {
		return ErrNotFound
	}
	delete(r.store, id)
	return nil
}

func (r *MemoryJobRepository) CountActiveByState(ctx context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := map[string]int64{}
	for _, j := range r.store {
		if j.IsActive {
			counts[j.State]++
		}
	}
	return counts, nil
}

func (r *MemoryJobRepository) CountActive(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, j := range r.store {
		if j.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *MemoryJobRepository) CreatedPerDaySince(ctx context.Context, since time.Time) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := map[string]int64{}
	for _, j := range r.store {
		if j.IsActive && !j.CreatedAt.Before(since) {
			counts[j.CreatedAt.Format("2006-01-02")]++
		}
	}
	return counts, nil
}

// MemoryExamRepository is the in-memory ExamRepository.
type MemoryExamRepository struct {
	mu    sync.RWMutex
	store map[string]*listings.Exam
}

func NewMemoryExamRepository() *MemoryExamRepository {
	return &MemoryExamRepository{store: map[string]*listings.Exam{}}
}

func (r *MemoryExamRepository) Create(ctx context.Context, e *listings.Exam) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == "" {
		e.ID = nextMemID("exam")
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	cp := *e
	r.store[e.ID] = &cp
	return e.ID, nil
}

func (r *MemoryExamRepository) Get(ctx context.Context, id string) (*listings.Exam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *MemoryExamRepository) List(ctx context.Context, q listings.ListQuery) ([]*listings.Exam, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []*listings.Exam{}
	needle := strings.ToLower(q.Search)
	for _, e := range r.store {
		if needle != "" &&
			!strings.Contains(strings.ToLower(e.Title), needle) &&
			!strings.Contains(strings.ToLower(e.ExamName), needle) &&
			!strings.Contains(strings.ToLower(e.Organization), needle) {
			continue
		}
		cp := *e
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, k int) bool { return matched[i].ExamDate.Before(matched[k].ExamDate) })
	total := int64(len(matched))
	start, end := pageSlice(len(matched), q)
	return matched[start:end], total, nil
}

func (r *MemoryExamRepository) Update(ctx context.Context, id string, e *listings.Exam) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.store[id]
	if !ok {
		return ErrNotFound
	}
	upd := *e
	upd.ID = id
	upd.CreatedAt = cur.CreatedAt
	upd.UpdatedAt = time.Now().UTC()
	r.store[id] = &upd
	return nil
}

func (r *MemoryExamRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[id]; !ok {
		return ErrNotFound
	}
	delete(r.store, id)
	return nil
}

func (r *MemoryExamRepository) CountActiveByStatus(ctx context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := map[string]int64{}
	for _, e := range r.store {
		if e.IsActive {
			counts[e.Status]++
		}
	}
	return counts, nil
}

func (r *MemoryExamRepository) CountActive(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, e := range r.store {
		if e.IsActive {
			n++
		}
	}
	return n, nil
}

// MemoryDownloadRepository is the in-memory DownloadRepository.
type MemoryDownloadRepository struct {
	mu    sync.RWMutex
	store map[string]*listings.Download
}

func NewMemoryDownloadRepository() *MemoryDownloadRepository {
	return &MemoryDownloadRepository{store: map[string]*listings.Download{}}
}

func (r *MemoryDownloadRepository) Create(ctx context.Context, d *listings.Download) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == "" {
		d.ID = nextMemID("dl")
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	cp := *d
	r.store[d.ID] = &cp
	return d.ID, nil
}

func (r *MemoryDownloadRepository) Get(ctx context.Context, id string) (*listings.Download, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *MemoryDownloadRepository) List(ctx context.Context, q listings.ListQuery) ([]*listings.Download, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []*listings.Download{}
	needle := strings.ToLower(q.Search)
	for _, d := range r.store {
		if needle != "" && !strings.Contains(strings.ToLower(d.Title), needle) {
			continue
		}
		cp := *d
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, k int) bool { return matched[i].CreatedAt.After(matched[k].CreatedAt) })
	total := int64(len(matched))
	start, end := pageSlice(len(matched), q)
	return matched[start:end], total, nil
}

func (r *MemoryDownloadRepository) Update(ctx context.Context, id string, d *listings.Download) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.store[id]
	if !ok {
		return ErrNotFound
	}
	upd := *d
	upd.ID = id
	upd.CreatedAt = cur.CreatedAt
	upd.UpdatedAt = time.Now().UTC()
	r.store[id] = &upd
	return nil
}

func (r *MemoryDownloadRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[id]; !ok {
		return ErrNotFound
	}
	delete(r.store, id)
	return nil
}

// MemoryFooterRepository is the in-memory FooterRepository.
type MemoryFooterRepository struct {
	mu    sync.RWMutex
	store map[string]*listings.Footer
}

func NewMemoryFooterRepository() *MemoryFooterRepository {
	return &MemoryFooterRepository{store: map[string]*listings.Footer{}}
}

func (r *MemoryFooterRepository) GetActive(ctx context.Context) (*listings.Footer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.store {
		if f.IsActive {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryFooterRepository) Create(ctx context.Context, f *listings.Footer) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f.ID == "" {
		f.ID = nextMemID("footer")
	}
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now
	cp := *f
	r.store[f.ID] = &cp
	return f.ID, nil
}

func (r *MemoryFooterRepository) Update(ctx context.Context, id string, f *listings.Footer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.store[id]
	if !ok {
		return ErrNotFound
	}
	upd := *f
	upd.ID = id
	upd.CreatedAt = cur.CreatedAt
	upd.UpdatedAt = time.Now().UTC()
	r.store[id] = &upd
	return nil
}

// MemoryContactRepository is the in-memory ContactRepository.
type MemoryContactRepository struct {
	mu    sync.RWMutex
	store map[string]*listings.Contact
}

func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{store: map[string]*listings.Contact{}}
}

func (r *MemoryContactRepository) Create(ctx context.Context, c *listings.Contact) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = nextMemID("contact")
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	cp := *c
	r.store[c.ID] = &cp
	return c.ID, nil
}

func (r *MemoryContactRepository) List(ctx context.Context, q listings.ListQuery) ([]*listings.Contact, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*listings.Contact{}
	for _, c := range r.store {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	total := int64(len(out))
	start, end := pageSlice(len(out), q)
	return out[start:end], total, nil
}
