/*
Package hashmap provides fixed-capacity hash tables over byte-sequence
keys, using open addressing with linear probing.

Map is the in-memory table: generic over its value type, with a slot
count fixed at construction. DiskMap stores the same slot layout in a
memory-mapped file with fixed-size keys and values, so a table survives
process restarts without a load or save step.

Basic usage:

	import "github.com/ilBuso/HashMap"

	m, err := hashmap.New[int](64)
	if err != nil {
		log.Fatal(err)
	}

	// Insert and look up
	if err := m.Set([]byte("answer"), 42); err != nil {
		log.Fatal(err)
	}
	if v, ok := m.Get([]byte("answer")); ok {
		fmt.Println("Value:", v)
	}

	// Remove
	if err := m.Delete([]byte("answer")); err != nil {
		log.Fatal(err)
	}

Features:

  - Capacity fixed at construction; no resizing or rehashing, so slot
    memory is allocated exactly once
  - FNV-1a hashing with open addressing and linear probing
  - Backward-shift deletion: no tombstones, probe chains stay intact and
    compact across any sequence of inserts and deletes
  - Full and not-found outcomes reported as typed errors (ErrFull,
    ErrNotFound), never swallowed
  - Optional persistence via DiskMap, a memory-mapped variant with
    fixed-size keys and values

Implementation Details:

A key's slot index is its 32-bit FNV-1a hash modulo the capacity. On
collision the table probes forward one slot at a time, wrapping at the
end, until it finds the key or an empty slot. An empty slot therefore
terminates every lookup, which is what makes deletion delicate: instead
of marking slots deleted, Delete shifts subsequent entries of the probe
chain backward to close the gap, preserving the reach of every
remaining key.

Inserting a new key into a full table fails with ErrFull. Overwriting
the value of an existing key consumes no slot and is allowed even when
the table is full.

Map is single-owner and performs no locking. DiskMap serializes all
operations through one read/write mutex.
*/
package hashmap
