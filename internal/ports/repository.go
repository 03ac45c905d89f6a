package ports

import (
	"context"

	"dialoq/internal/domain"
)

// DialogRepository is the persistence contract for dialog records.
type DialogRepository interface {
	// InsertMany inserts the whole batch or fails as a unit; an id
	// collision surfaces as an error, never as a silent drop.
	InsertMany(ctx context.Context, dialogs []*domain.Dialog) (int, error)
	// Get returns the record with its full history, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Dialog, error)
	// Update runs mutate against the current record inside a single
	// transaction. History entries appended by mutate are persisted in
	// order; concurrent updates to the same id never interleave.
	Update(ctx context.Context, id string, mutate func(*domain.Dialog) error) (*domain.Dialog, error)
	// ListByStatus returns up to limit records in the given status,
	// history omitted.
	ListByStatus(ctx context.Context, status domain.Status, limit uint64) ([]*domain.Dialog, error)
	// ListAll returns every record in insertion order, history omitted.
	ListAll(ctx context.Context) ([]*domain.Dialog, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.Status) (int64, error)
}

// CacheRepository stores translations already produced for a given input.
type CacheRepository interface {
	Get(ctx context.Context, src, srcLang, tgtLang, provider string) (*domain.CacheEntry, error)
	Put(ctx context.Context, entry *domain.CacheEntry) error
}
