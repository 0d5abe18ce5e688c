package domain

import (
	"context"
	"time"
)

// CatalogRepository provides read-only access to the ingredient catalog.
// The optional names filter restricts the result to a caller-supplied subset
// (used by tests and targeted re-matching).
type CatalogRepository interface {
	ListEntries(ctx context.Context, names []string) ([]CatalogEntry, error)
}

// SnapshotCache caches a catalog snapshot between batches. A batch reads the
// snapshot once; the cache owns refresh and invalidation.
type SnapshotCache interface {
	GetCatalog(ctx context.Context) ([]CatalogEntry, error)
	SetCatalog(ctx context.Context, entries []CatalogEntry, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// BatchWriter persists an assembled batch for one recipe.
type BatchWriter interface {
	SaveRecords(ctx context.Context, records []PersistRecord) error
	SaveAlternatives(ctx context.Context, recipeID string, relations []AlternativeRelation) error
}

// DecisionSink receives best-effort OR-pattern decision logs. Implementations
// must not be relied on for correctness; callers swallow errors.
type DecisionSink interface {
	Record(ctx context.Context, decision OrPatternDecision) error
}
