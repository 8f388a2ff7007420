package classify

import "github.com/ariel-frischer/oasnotes/internal/specdiff"

// Buckets maps change type → category → ordered identifiers.
// Each identifier keeps its originating change, which carries the old/new
// pair for changed entries.
type Buckets struct {
	entries map[ChangeType]map[Category][]Entry
}

// Entry is a single bucketed identifier.
type Entry struct {
	Identifier string
	Change     specdiff.Change
}

// NewBuckets returns an empty bucket set.
func NewBuckets() *Buckets {
	return &Buckets{entries: make(map[ChangeType]map[Category][]Entry)}
}

// Add files a bucketed classification. Other outcomes are ignored.
func (b *Buckets) Add(c Classification) {
	if c.Outcome != Bucketed {
		return
	}
	byCategory, ok := b.entries[c.Type]
	if !ok {
		byCategory = make(map[Category][]Entry)
		b.entries[c.Type] = byCategory
	}
	byCategory[c.Category] = append(byCategory[c.Category], Entry{
		Identifier: c.Identifier,
		Change:     c.Change,
	})
}

// Entries returns the entries for a change type and category.
func (b *Buckets) Entries(t ChangeType, category Category) []Entry {
	return b.entries[t][category]
}

// Identifiers returns only the identifiers for a change type and category.
func (b *Buckets) Identifiers(t ChangeType, category Category) []string {
	entries := b.Entries(t, category)
	if len(entries) == 0 {
		return nil
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.Identifier
	}
	return ids
}

// Empty reports whether a change type has no entries in any category.
func (b *Buckets) Empty(t ChangeType) bool {
	for _, entries := range b.entries[t] {
		if len(entries) > 0 {
			return false
		}
	}
	return true
}

// Count returns the number of entries across all buckets.
func (b *Buckets) Count() int {
	n := 0
	for _, byCategory := range b.entries {
		for _, entries := range byCategory {
			n += len(entries)
		}
	}
	return n
}
