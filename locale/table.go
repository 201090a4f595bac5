// Package locale builds, repairs and writes per-language translation tables.
//
// A table maps translation keys to localized strings and remembers key order.
// Nested JSON objects are flattened to dotted keys on read and re-nested on
// write, so "nav.home" in a table corresponds to {"nav": {"home": ...}} on disk.
package locale

import "sort"

// Table is an ordered key → string mapping for one language. Leaves that
// were not JSON strings (numbers, booleans, arrays) keep their raw JSON text
// and are written back unquoted.
type Table struct {
	keys   []string
	values map[string]string
	raw    map[string]bool
	nested bool // Source used nested objects; re-nest dotted keys on write
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{values: make(map[string]string), raw: make(map[string]bool)}
}

// FromMap creates a table from m with keys in sorted order.
func FromMap(m map[string]string) *Table {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := NewTable()
	for _, k := range keys {
		t.Set(k, m[k])
	}
	return t
}

// Set stores value under key. A new key is appended; an existing key keeps
// its position and takes the new value.
func (t *Table) Set(key, value string) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
	delete(t.raw, key)
}

// SetRaw stores a raw JSON value (number, boolean or array) under key.
func (t *Table) SetRaw(key, rawJSON string) {
	t.Set(key, rawJSON)
	t.raw[key] = true
}

// IsRaw reports whether the value under key is raw JSON rather than a string.
func (t *Table) IsRaw(key string) bool {
	return t.raw[key]
}

// copyFrom stores src's entry for key in t, keeping its raw flag.
func (t *Table) copyFrom(src *Table, key string) {
	if src.raw[key] {
		t.SetRaw(key, src.values[key])
		return
	}
	t.Set(key, src.values[key])
}

// Get returns the value stored under key.
func (t *Table) Get(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	_, ok := t.values[key]
	return ok
}

// Delete removes key from the table.
func (t *Table) Delete(key string) {
	if _, ok := t.values[key]; !ok {
		return
	}
	delete(t.values, key)
	delete(t.raw, key)
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in table order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of keys.
func (t *Table) Len() int {
	return len(t.keys)
}

// Map returns a copy of the table as a plain map.
func (t *Table) Map() map[string]string {
	out := make(map[string]string, len(t.values))
	for k, v := range t.values {
		out[k] = v
	}
	return out
}

// Nested reports whether the table is written as nested objects.
func (t *Table) Nested() bool {
	return t.nested
}

// SetNested controls whether dotted keys are re-nested on write.
func (t *Table) SetNested(nested bool) {
	t.nested = nested
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		keys:   t.Keys(),
		values: t.Map(),
		raw:    make(map[string]bool, len(t.raw)),
		nested: t.nested,
	}
	for k := range t.raw {
		c.raw[k] = true
	}
	return c
}

// Merge copies every entry of other into t, overwriting existing values.
func (t *Table) Merge(other *Table) {
	for _, k := range other.keys {
		t.copyFrom(other, k)
	}
	t.nested = t.nested || other.nested
}
