package usecase

import (
	"strings"

	"github.com/pantrylens/backend/internal/domain"
)

// CatalogIndex is a read-only view over one catalog snapshot with exact
// name/plural lookup. Built once per batch.
type CatalogIndex struct {
	entries []domain.CatalogEntry
	byName  map[string]int
}

// NewCatalogIndex indexes a catalog snapshot by lowercased name and plural.
// On a name collision the earlier entry wins, matching snapshot order.
func NewCatalogIndex(entries []domain.CatalogEntry) *CatalogIndex {
	byName := make(map[string]int, len(entries)*2)
	for i, entry := range entries {
		name := strings.ToLower(strings.TrimSpace(entry.Name))
		if _, exists := byName[name]; !exists {
			byName[name] = i
		}
		if entry.PluralName != nil {
			plural := strings.ToLower(strings.TrimSpace(*entry.PluralName))
			if _, exists := byName[plural]; plural != "" && !exists {
				byName[plural] = i
			}
		}
	}
	return &CatalogIndex{entries: entries, byName: byName}
}

// FindExact returns the entry whose name or plural equals the given name
// (case-insensitive), or nil.
func (ix *CatalogIndex) FindExact(name string) *domain.CatalogEntry {
	i, ok := ix.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil
	}
	return &ix.entries[i]
}

// Entries returns the underlying snapshot.
func (ix *CatalogIndex) Entries() []domain.CatalogEntry {
	return ix.entries
}

// Len returns the snapshot size.
func (ix *CatalogIndex) Len() int {
	return len(ix.entries)
}
