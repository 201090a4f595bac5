package i18nmark

import "sort"

// DiffResult represents the difference between two key inventories
// (key → text maps), such as a reference table and the keys seen on pages.
type DiffResult struct {
	// Added contains keys that are new (not in the old inventory).
	Added []string

	// Removed contains keys that are not in the new inventory.
	Removed []string

	// Unchanged contains keys present in both with the same text.
	Unchanged []string

	// Modified contains keys present in both whose text differs.
	Modified []ModifiedKey
}

// ModifiedKey represents a key whose text changed.
type ModifiedKey struct {
	Key string `json:"key"`
	Old string `json:"old"`
	New string `json:"new"`
}

// Stats returns summary statistics for the diff.
func (d *DiffResult) Stats() DiffStats {
	return DiffStats{
		Added:     len(d.Added),
		Removed:   len(d.Removed),
		Unchanged: len(d.Unchanged),
		Modified:  len(d.Modified),
	}
}

// DiffStats contains summary statistics for a diff.
type DiffStats struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
	Modified  int `json:"modified"`
}

// HasChanges returns true if there are any differences.
func (d *DiffResult) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Modified) > 0
}

// DiffKeys compares two key inventories. All result slices are sorted by key.
func DiffKeys(oldKeys, newKeys map[string]string) *DiffResult {
	result := &DiffResult{}

	for key, oldText := range oldKeys {
		newText, exists := newKeys[key]
		switch {
		case !exists:
			result.Removed = append(result.Removed, key)
		case newText == oldText:
			result.Unchanged = append(result.Unchanged, key)
		default:
			result.Modified = append(result.Modified, ModifiedKey{Key: key, Old: oldText, New: newText})
		}
	}

	for key := range newKeys {
		if _, exists := oldKeys[key]; !exists {
			result.Added = append(result.Added, key)
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Removed)
	sort.Strings(result.Unchanged)
	sort.Slice(result.Modified, func(i, j int) bool {
		return result.Modified[i].Key < result.Modified[j].Key
	})

	return result
}
