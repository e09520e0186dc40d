package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo implements DealRepository with in-memory storage, for
// development and tests. It mirrors the upsert semantics of the Postgres
// repo: names are unique and a re-save keeps the original id.
type MemoryRepo struct {
	mu    sync.RWMutex
	deals map[string]DealRecord // keyed by name
}

// NewMemoryRepo creates an empty in-memory deal store.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		deals: make(map[string]DealRecord),
	}
}

// Save upserts the record by name.
func (r *MemoryRepo) Save(ctx context.Context, rec *DealRecord) error {
	if rec.Name == "" {
		return errNameRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.deals[rec.Name]; ok {
		rec.ID = existing.ID
	} else if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.UpdatedAt = time.Now()

	r.deals[rec.Name] = *rec
	return nil
}

// Load retrieves one deal by name.
func (r *MemoryRepo) Load(ctx context.Context, name string) (*DealRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.deals[name]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// List returns every saved deal, most recently updated first.
func (r *MemoryRepo) List(ctx context.Context) ([]DealRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	deals := make([]DealRecord, 0, len(r.deals))
	for _, rec := range r.deals {
		deals = append(deals, rec)
	}
	sort.Slice(deals, func(i, j int) bool {
		if !deals[i].UpdatedAt.Equal(deals[j].UpdatedAt) {
			return deals[i].UpdatedAt.After(deals[j].UpdatedAt)
		}
		return deals[i].Name < deals[j].Name
	})
	return deals, nil
}
