package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

type storedResume struct {
	id        string
	title     string
	data      []byte
	design    []byte
	color     string
	createdAt time.Time
	updatedAt time.Time
}

// MemoryRepo stores resumes in memory and is safe for concurrent use.
// Payloads are kept encoded so reads go through the same decode path as
// Postgres.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]storedResume
	exports map[string][]ExportRecord
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[string]storedResume),
		exports: make(map[string][]ExportRecord),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec, err := toStored(resume)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[resume.ID]; exists {
		return ErrInvalidInput
	}
	r.byID[resume.ID] = rec
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	rec, ok := r.byID[resumeID]
	r.mu.RUnlock()
	if !ok {
		return Resume{}, ErrNotFound
	}
	return rec.resume(), nil
}

// List returns resumes most recently updated first.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)

	r.mu.RLock()
	all := make([]storedResume, 0, len(r.byID))
	for _, rec := range r.byID {
		all = append(all, rec)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].updatedAt.Equal(all[j].updatedAt) {
			return all[i].id < all[j].id
		}
		return all[i].updatedAt.After(all[j].updatedAt)
	})
	if offset >= len(all) {
		return []Resume{}, nil
	}
	end := len(all)
	if offset+limit < end {
		end = offset + limit
	}
	out := make([]Resume, 0, end-offset)
	for _, rec := range all[offset:end] {
		out = append(out, rec.resume())
	}
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec, err := toStored(resume)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.byID[resume.ID]
	if !ok {
		return ErrNotFound
	}
	rec.createdAt = prev.createdAt
	r.byID[resume.ID] = rec
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[resumeID]; !ok {
		return ErrNotFound
	}
	delete(r.byID, resumeID)
	delete(r.exports, resumeID)
	return nil
}

func (r *MemoryRepo) RecordExport(ctx context.Context, rec ExportRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[rec.ResumeID]; !ok {
		return ErrNotFound
	}
	r.exports[rec.ResumeID] = append(r.exports[rec.ResumeID], rec)
	return nil
}

// ListExports returns exports newest first.
func (r *MemoryRepo) ListExports(ctx context.Context, resumeID string) ([]ExportRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	src := r.exports[resumeID]
	out := make([]ExportRecord, len(src))
	copy(out, src)
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// PutRaw stores an already-encoded payload. Tests use it to simulate
// rows written by older versions.
func (r *MemoryRepo) PutRaw(id string, data, design []byte, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id] = storedResume{id: id, data: data, design: design, createdAt: at, updatedAt: at}
}

func toStored(resume Resume) (storedResume, error) {
	data, design, err := encodeResume(resume)
	if err != nil {
		return storedResume{}, err
	}
	return storedResume{
		id:        resume.ID,
		title:     resume.Title,
		data:      data,
		design:    design,
		color:     resume.Color,
		createdAt: resume.CreatedAt,
		updatedAt: resume.UpdatedAt,
	}, nil
}

func (s storedResume) resume() Resume {
	data, design := decodeStored(s.id, s.data, s.design)
	return Resume{
		ID:        s.id,
		Title:     s.title,
		Data:      data,
		Design:    design,
		Color:     s.color,
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
}

var _ Repo = (*MemoryRepo)(nil)
