// Package reorder merges a drag reordering made on a filtered or sorted
// view back into the full task collection.
package reorder

import "github.com/adanyl0v/go-taskboard/internal/models"

// Reconcile returns a new collection holding the tasks named by orderedIDs
// in that order, followed by every other task of canonical in its original
// relative order. Ids unknown to canonical are ignored, and an id listed
// twice is only placed once. Tasks hidden from the view a drag happened in
// are therefore neither lost nor reordered.
func Reconcile(canonical []models.Task, orderedIDs []string) []models.Task {
	byID := make(map[string]int, len(canonical))
	for i, t := range canonical {
		byID[t.ID] = i
	}

	out := make([]models.Task, 0, len(canonical))
	placed := make(map[string]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		i, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := placed[id]; dup {
			continue
		}
		placed[id] = struct{}{}
		out = append(out, canonical[i])
	}

	for _, t := range canonical {
		if _, ok := placed[t.ID]; ok {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Stale returns the ids of orderedIDs that are not in canonical.
func Stale(canonical []models.Task, orderedIDs []string) []string {
	known := make(map[string]struct{}, len(canonical))
	for _, t := range canonical {
		known[t.ID] = struct{}{}
	}

	var stale []string
	for _, id := range orderedIDs {
		if _, ok := known[id]; !ok {
			stale = append(stale, id)
		}
	}
	return stale
}
