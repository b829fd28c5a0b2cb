package draft

// List is a copy-on-write draft over a []any. Structural edits (Append,
// Insert, Remove, Set) stage a working copy on first use; the base slice is
// never touched.
//
// Nested drafts are keyed by element index at creation time. Perform
// structural edits before creating nested drafts for the same list.
type List struct {
	base     []any
	work     []any
	children map[int]node
}

func newList(base []any) *List {
	return &List{base: base}
}

func (d *List) view() []any {
	if d.work != nil {
		return d.work
	}
	return d.base
}

func (d *List) materialize() {
	if d.work == nil {
		d.work = make([]any, len(d.base))
		copy(d.work, d.base)
	}
}

// Len returns the staged length.
func (d *List) Len() int {
	return len(d.view())
}

// Get returns the staged value at index i, or nil when out of range.
func (d *List) Get(i int) any {
	if c, ok := d.children[i]; ok {
		v, _ := c.commit()
		return v
	}
	v := d.view()
	if i < 0 || i >= len(v) {
		return nil
	}
	return v[i]
}

// Set stages a write of index i to v. Out-of-range writes are ignored;
// writing a value identical to the staged one is a no-op.
func (d *List) Set(i int, v any) {
	cur := d.view()
	if i < 0 || i >= len(cur) {
		return
	}
	delete(d.children, i)
	if Identical(cur[i], v) {
		return
	}
	d.materialize()
	d.work[i] = v
}

// Append stages v at the end of the list.
func (d *List) Append(v any) {
	d.materialize()
	d.work = append(d.work, v)
}

// Insert stages v at index i, shifting later elements. i == Len() appends.
func (d *List) Insert(i int, v any) {
	if i < 0 || i > d.Len() {
		return
	}
	d.materialize()
	d.work = append(d.work, nil)
	copy(d.work[i+1:], d.work[i:])
	d.work[i] = v
}

// Remove stages removal of index i, shifting later elements.
func (d *List) Remove(i int) {
	if i < 0 || i >= d.Len() {
		return
	}
	d.materialize()
	d.work = append(d.work[:i], d.work[i+1:]...)
}

// Map returns a nested draft for the map element at index i.
func (d *List) Map(i int) *Map {
	if c, ok := d.children[i].(*Map); ok {
		return c
	}
	var base map[string]any
	if v, ok := d.Get(i).(map[string]any); ok {
		base = v
	}
	child := newMap(base)
	d.adopt(i, child)
	return child
}

// List returns a nested draft for the slice element at index i.
func (d *List) List(i int) *List {
	if c, ok := d.children[i].(*List); ok {
		return c
	}
	var base []any
	if v, ok := d.Get(i).([]any); ok {
		base = v
	}
	child := newList(base)
	d.adopt(i, child)
	return child
}

func (d *List) adopt(i int, child node) {
	if d.children == nil {
		d.children = make(map[int]node)
	}
	d.children[i] = child
}

// commit builds the committed slice. Unchanged drafts return the base slice
// itself. Idempotent like Map.commit.
func (d *List) commit() (any, bool) {
	changedChildren := make(map[int]any)
	for i, c := range d.children {
		if v, changed := c.commit(); changed {
			changedChildren[i] = v
		}
	}

	if d.work == nil && len(changedChildren) == 0 {
		return d.base, false
	}

	src := d.view()
	out := make([]any, len(src))
	copy(out, src)
	for i, v := range changedChildren {
		if i >= 0 && i < len(out) {
			out[i] = v
		}
	}
	return out, true
}
