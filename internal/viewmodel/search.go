package viewmodel

import (
	"strings"

	"settings-core/internal/entity"

	"github.com/patrickmn/go-cache"
)

// maxMemoizedQueries bounds the memo; it is flushed wholesale when full.
const maxMemoizedQueries = 256

// SearchIndex answers case-insensitive substring queries over a fixed catalog.
// Results keep catalog order.
type SearchIndex struct {
	catalog []entity.SearchCatalogEntry
	memo    *cache.Cache
}

func NewSearchIndex(catalog []entity.SearchCatalogEntry) *SearchIndex {
	entries := make([]entity.SearchCatalogEntry, len(catalog))
	copy(entries, catalog)
	return &SearchIndex{
		catalog: entries,
		// No janitor: entries never expire, so there is nothing to sweep.
		memo: cache.New(cache.NoExpiration, 0),
	}
}

// NormalizeQuery trims and lowercases a query. An empty result means search
// is inactive.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func (idx *SearchIndex) Search(query string) []entity.SearchCatalogEntry {
	q := NormalizeQuery(query)
	if q == "" {
		return nil
	}

	if cached, ok := idx.memo.Get(q); ok {
		return cloneEntries(cached.([]entity.SearchCatalogEntry))
	}

	var results []entity.SearchCatalogEntry
	for _, e := range idx.catalog {
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Section), q) {
			results = append(results, e)
		}
	}

	if idx.memo.ItemCount() >= maxMemoizedQueries {
		idx.memo.Flush()
	}
	idx.memo.Set(q, results, cache.NoExpiration)

	return cloneEntries(results)
}

func cloneEntries(in []entity.SearchCatalogEntry) []entity.SearchCatalogEntry {
	if in == nil {
		return []entity.SearchCatalogEntry{}
	}
	out := make([]entity.SearchCatalogEntry, len(in))
	copy(out, in)
	return out
}
