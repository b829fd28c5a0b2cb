package draft

import "reflect"

// node is a nested draft that can be committed into its parent.
type node interface {
	commit() (val any, changed bool)
}

// Map is a copy-on-write draft over a map[string]any. Writes are staged; the
// base map is never touched. Nested maps and slices are drafted on demand via
// Map and List.
type Map struct {
	base     map[string]any
	writes   map[string]any
	deletes  map[string]bool
	children map[string]node

	// Keys whose pending write or delete was displaced by a nested draft.
	// Their child commits even when the child itself stages nothing.
	dirty map[string]bool

	// Replacement committed verbatim by Apply; meaningful on the root draft.
	replaced    bool
	replacement any
}

func newMap(base map[string]any) *Map {
	return &Map{base: base}
}

// Get returns the staged value for key: a pending write if one exists, the
// staged view of a nested draft if one was created, otherwise the base value.
func (d *Map) Get(key string) any {
	if d.deletes[key] {
		return nil
	}
	if v, ok := d.writes[key]; ok {
		return v
	}
	if c, ok := d.children[key]; ok {
		v, _ := c.commit()
		return v
	}
	return d.base[key]
}

// Has reports whether key is present in the staged view.
func (d *Map) Has(key string) bool {
	if d.deletes[key] {
		return false
	}
	if _, ok := d.writes[key]; ok {
		return true
	}
	if _, ok := d.children[key]; ok {
		return true
	}
	_, ok := d.base[key]
	return ok
}

// Len returns the number of keys in the staged view.
func (d *Map) Len() int {
	n := len(d.base)
	for key := range d.deletes {
		if _, ok := d.base[key]; ok {
			n--
		}
	}
	for key := range d.writes {
		if _, ok := d.base[key]; !ok {
			n++
		}
	}
	for key := range d.children {
		if _, ok := d.base[key]; !ok {
			if _, written := d.writes[key]; !written {
				n++
			}
		}
	}
	return n
}

// Set stages a write of key to v. Writing a value identical to the base value
// is a no-op, so accidental same-value writes never force a copy.
func (d *Map) Set(key string, v any) {
	delete(d.deletes, key)
	delete(d.children, key)
	delete(d.dirty, key)
	if base, ok := d.base[key]; ok && Identical(base, v) {
		delete(d.writes, key)
		return
	}
	if d.writes == nil {
		d.writes = make(map[string]any)
	}
	d.writes[key] = v
}

// Delete stages removal of key.
func (d *Map) Delete(key string) {
	delete(d.writes, key)
	delete(d.children, key)
	delete(d.dirty, key)
	if _, ok := d.base[key]; !ok {
		return
	}
	if d.deletes == nil {
		d.deletes = make(map[string]bool)
	}
	d.deletes[key] = true
}

// Map returns a nested draft for the map value at key, creating an empty one
// if the key is absent or holds a non-map. The key only materializes in the
// committed tree if the nested draft stages an effective change, or if opening
// it displaced a pending write or delete on the same key: the nested draft is
// seeded from the staged view, so committing it preserves the displaced
// mutation.
func (d *Map) Map(key string) *Map {
	if c, ok := d.children[key].(*Map); ok {
		return c
	}
	var base map[string]any
	if v, ok := d.Get(key).(map[string]any); ok {
		base = v
	}
	child := newMap(base)
	d.adopt(key, child)
	return child
}

// List returns a nested draft for the slice value at key, creating an empty
// one if the key is absent or holds a non-slice.
func (d *Map) List(key string) *List {
	if c, ok := d.children[key].(*List); ok {
		return c
	}
	var base []any
	if v, ok := d.Get(key).([]any); ok {
		base = v
	}
	child := newList(base)
	d.adopt(key, child)
	return child
}

// adopt installs a nested draft for key. A pending write or delete on the key
// is absorbed into the child: the child's base was seeded from the staged
// view, and the key is marked dirty so commit materializes the child even if
// it stages nothing of its own.
func (d *Map) adopt(key string, child node) {
	_, written := d.writes[key]
	if written || d.deletes[key] {
		if d.dirty == nil {
			d.dirty = make(map[string]bool)
		}
		d.dirty[key] = true
	}
	delete(d.writes, key)
	delete(d.deletes, key)
	if d.children == nil {
		d.children = make(map[string]node)
	}
	d.children[key] = child
}

// Replace commits v verbatim instead of the draft's staged writes. Valid on
// the draft passed to Apply; nested drafts are committed into their parents
// and ignore it.
func (d *Map) Replace(v any) {
	d.replaced = true
	d.replacement = v
}

// Int returns the staged value at key coerced to int (int, int64, or float64
// bases); zero if absent or not numeric.
func (d *Map) Int(key string) int {
	switch v := d.Get(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Float returns the staged value at key coerced to float64; zero if absent or
// not numeric.
func (d *Map) Float(key string) float64 {
	switch v := d.Get(key).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// String returns the staged string at key; empty if absent or not a string.
func (d *Map) String(key string) string {
	v, _ := d.Get(key).(string)
	return v
}

// Bool returns the staged bool at key; false if absent or not a bool.
func (d *Map) Bool(key string) bool {
	v, _ := d.Get(key).(bool)
	return v
}

// commit builds the committed value. Unchanged drafts return the base map
// itself. commit is idempotent: it reads staged state without clearing it.
func (d *Map) commit() (any, bool) {
	changedChildren := make(map[string]any)
	for key, c := range d.children {
		v, changed := c.commit()
		if !changed && !d.dirty[key] {
			// Untouched draft that displaced nothing: the base value (or the
			// key's absence) stands.
			continue
		}
		changedChildren[key] = v
	}

	if len(d.writes) == 0 && len(d.deletes) == 0 && len(changedChildren) == 0 {
		return d.base, false
	}

	out := make(map[string]any, len(d.base)+len(d.writes))
	for key, v := range d.base {
		if d.deletes[key] {
			continue
		}
		out[key] = v
	}
	for key, v := range d.writes {
		out[key] = v
	}
	for key, v := range changedChildren {
		out[key] = v
	}
	return out, true
}

// Apply runs mutate against a draft of base and returns the committed tree.
// If mutate stages no effective change, the returned value is base itself.
// If mutate calls Replace, the replacement is returned verbatim. A mutate
// error aborts the commit and surfaces unchanged.
func Apply(base map[string]any, mutate func(*Map) error) (any, error) {
	d := newMap(base)
	if err := mutate(d); err != nil {
		return nil, err
	}
	if d.replaced {
		return d.replacement, nil
	}
	v, _ := d.commit()
	return v, nil
}

// Identical reports whether a and b are the same value by identity: pointer
// identity for maps, slices, pointers, funcs, and channels; == for comparable
// kinds. Never panics on uncomparable values.
func Identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Kind() != bv.Kind() {
		return false
	}
	switch av.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return av.Pointer() == bv.Pointer()
	case reflect.Slice:
		return av.Len() == bv.Len() && av.Pointer() == bv.Pointer()
	case reflect.Struct, reflect.Array:
		if !av.Comparable() {
			return false
		}
		return a == b
	}
	return a == b
}
