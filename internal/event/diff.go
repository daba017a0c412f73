package event

import "sort"

// DiffResult contains the UIDs gained and lost relative to a previous calendar
type DiffResult struct {
	Added   []string
	Removed []string
}

// Diff compares the current events against the UIDs of a previously
// published calendar. Both result slices are sorted.
func Diff(previous []string, current []Event) *DiffResult {
	result := &DiffResult{
		Added:   make([]string, 0),
		Removed: make([]string, 0),
	}

	seen := make(map[string]bool, len(previous))
	for _, uid := range previous {
		seen[uid] = true
	}

	currentUIDs := make(map[string]bool, len(current))
	for _, evt := range current {
		uid := evt.UID()
		if currentUIDs[uid] {
			continue
		}
		currentUIDs[uid] = true
		if !seen[uid] {
			result.Added = append(result.Added, uid)
		}
	}

	for uid := range seen {
		if !currentUIDs[uid] {
			result.Removed = append(result.Removed, uid)
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Removed)

	return result
}
