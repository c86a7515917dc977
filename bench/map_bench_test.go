// Package hashmap_test provides scale benchmarks for the fixed-capacity
// hash tables, with the builtin Go map as the baseline.
package hashmap_test

import (
	"encoding/binary"
	"path/filepath"
	"testing"

	hashmap "github.com/ilBuso/HashMap"
)

const (
	benchCapacity = 1 << 16
	benchEntries  = benchCapacity / 2 // load factor 0.5
)

func benchKeys() [][]byte {
	keys := make([][]byte, benchEntries)
	for i := range keys {
		keys[i] = make([]byte, 8)
		binary.BigEndian.PutUint64(keys[i], uint64(i))
	}
	return keys
}

func filledMap(b *testing.B, keys [][]byte) *hashmap.Map[int] {
	b.Helper()
	m, err := hashmap.New[int](benchCapacity)
	if err != nil {
		b.Fatalf("failed to create map: %v", err)
	}
	for i, key := range keys {
		if err := m.Set(key, i); err != nil {
			b.Fatalf("failed to fill map: %v", err)
		}
	}
	return m
}

func BenchmarkMapSet(b *testing.B) {
	keys := benchKeys()
	m, err := hashmap.New[int](benchCapacity)
	if err != nil {
		b.Fatalf("failed to create map: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.Set(keys[i%len(keys)], i); err != nil {
			b.Fatalf("set failed: %v", err)
		}
	}
}

func BenchmarkMapGet(b *testing.B) {
	keys := benchKeys()
	m := filledMap(b, keys)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := m.Get(keys[i%len(keys)]); !ok {
			b.Fatal("key not found")
		}
	}
}

func BenchmarkMapGetMiss(b *testing.B) {
	keys := benchKeys()
	m := filledMap(b, keys)
	missing := make([]byte, 8)
	binary.BigEndian.PutUint64(missing, uint64(benchEntries+benchCapacity))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := m.Get(missing); ok {
			b.Fatal("unexpected hit")
		}
	}
}

// BenchmarkMapDeleteSet cycles entries through delete and reinsert,
// which keeps the backward-shift compaction on the hot path.
func BenchmarkMapDeleteSet(b *testing.B) {
	keys := benchKeys()
	m := filledMap(b, keys)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := keys[i%len(keys)]
		if err := m.Delete(key); err != nil {
			b.Fatalf("delete failed: %v", err)
		}
		if err := m.Set(key, i); err != nil {
			b.Fatalf("set failed: %v", err)
		}
	}
}

func BenchmarkBuiltinMapSet(b *testing.B) {
	keys := benchKeys()
	m := make(map[string]int, benchCapacity)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m[string(keys[i%len(keys)])] = i
	}
}

func BenchmarkBuiltinMapGet(b *testing.B) {
	keys := benchKeys()
	m := make(map[string]int, benchCapacity)
	for i, key := range keys {
		m[string(key)] = i
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := m[string(keys[i%len(keys)])]; !ok {
			b.Fatal("key not found")
		}
	}
}

func BenchmarkDiskMapPut(b *testing.B) {
	keys := benchKeys()
	dm, err := hashmap.Create(filepath.Join(b.TempDir(), "bench.hashmap"), benchCapacity, 8, 8)
	if err != nil {
		b.Fatalf("failed to create disk map: %v", err)
	}
	defer dm.Close()
	value := make([]byte, 8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		binary.BigEndian.PutUint64(value, uint64(i))
		if err := dm.Put(keys[i%len(keys)], value); err != nil {
			b.Fatalf("put failed: %v", err)
		}
	}
}

func BenchmarkDiskMapGet(b *testing.B) {
	keys := benchKeys()
	dm, err := hashmap.Create(filepath.Join(b.TempDir(), "bench.hashmap"), benchCapacity, 8, 8)
	if err != nil {
		b.Fatalf("failed to create disk map: %v", err)
	}
	defer dm.Close()
	value := make([]byte, 8)
	for _, key := range keys {
		if err := dm.Put(key, value); err != nil {
			b.Fatalf("fill failed: %v", err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := dm.Get(keys[i%len(keys)]); !ok {
			b.Fatal("key not found")
		}
	}
}
