package hashmap

import "bytes"

// slot is a single table entry. Occupancy is tracked explicitly rather
// than by a nil key, so the empty key is a valid key.
type slot[V any] struct {
	occupied bool
	key      []byte
	value    V
}

// Map is a fixed-capacity hash table mapping byte-sequence keys to
// values of type V. Collisions are resolved by open addressing with
// linear probing. Deletion compacts the probe chain in place (backward
// shift), so there are no tombstones and lookup cost never degrades as
// entries come and go. The capacity chosen at construction is final:
// the table never resizes or rehashes.
//
// Keys are copied into the table; values are stored as given and never
// interpreted. Map is not safe for concurrent use.
type Map[V any] struct {
	slots []slot[V]
	size  int
}

// New returns an empty Map with room for exactly capacity entries.
func New[V any](capacity int) (*Map[V], error) {
	if capacity < 1 {
		return nil, ErrCapacity
	}
	return &Map[V]{slots: make([]slot[V], capacity)}, nil
}

// Len returns the number of entries currently stored.
func (m *Map[V]) Len() int { return m.size }

// Cap returns the fixed slot count.
func (m *Map[V]) Cap() int { return len(m.slots) }

// home returns the slot index key hashes to before any probing.
func (m *Map[V]) home(key []byte) int {
	return int(fnv1a(key) % uint32(len(m.slots)))
}

// Set inserts key with value, overwriting the value if key is already
// present. The key bytes are copied, so the caller may reuse the slice.
// Inserting a new key into a full table returns ErrFull and leaves the
// table untouched; overwriting an existing key succeeds even when the
// table is full, since no slot is consumed.
func (m *Map[V]) Set(key []byte, value V) error {
	i := m.home(key)
	for probed := 0; probed < len(m.slots) && m.slots[i].occupied; probed++ {
		if bytes.Equal(m.slots[i].key, key) {
			m.slots[i].value = value
			return nil
		}
		i = (i + 1) % len(m.slots)
	}
	if m.size == len(m.slots) {
		return ErrFull
	}
	m.slots[i] = slot[V]{
		occupied: true,
		key:      append([]byte(nil), key...),
		value:    value,
	}
	m.size++
	return nil
}

// Get returns the value stored for key. The second result is false if
// key is not present.
func (m *Map[V]) Get(key []byte) (V, bool) {
	i := m.home(key)
	for probed := 0; probed < len(m.slots) && m.slots[i].occupied; probed++ {
		if bytes.Equal(m.slots[i].key, key) {
			return m.slots[i].value, true
		}
		i = (i + 1) % len(m.slots)
	}
	var zero V
	return zero, false
}

// Delete removes key and its value. It returns ErrNotFound, without
// modifying the table, if key is not present.
func (m *Map[V]) Delete(key []byte) error {
	i := m.home(key)
	for probed := 0; probed < len(m.slots) && m.slots[i].occupied; probed++ {
		if bytes.Equal(m.slots[i].key, key) {
			m.compact(i)
			m.size--
			return nil
		}
		i = (i + 1) % len(m.slots)
	}
	return ErrNotFound
}

// compact closes the hole left by vacating slot i. Resetting a slot to
// empty outright would terminate probe sequences early and strand any
// key that collided past i, so entries after the hole are shifted
// backward: a slot stays put only if its home index lies cyclically in
// (i, j], meaning it is still reachable without passing through the
// hole.
func (m *Map[V]) compact(i int) {
	j := i
	for {
		j = (j + 1) % len(m.slots)
		if j == i || !m.slots[j].occupied {
			break
		}
		k := m.home(m.slots[j].key)
		var reachable bool
		if i <= j {
			reachable = i < k && k <= j
		} else {
			reachable = i < k || k <= j
		}
		if reachable {
			continue
		}
		m.slots[i] = m.slots[j]
		i = j
	}
	m.slots[i] = slot[V]{}
}

// Reset clears every slot, releasing the table's key copies and value
// references for collection. The table keeps its capacity and remains
// usable.
func (m *Map[V]) Reset() {
	for i := range m.slots {
		m.slots[i] = slot[V]{}
	}
	m.size = 0
}
