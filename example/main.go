package main

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	hashmap "github.com/ilBuso/HashMap"
)

func intKey(v uint32) []byte {
	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key, v)
	return key
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	// In-memory table with integer keys, as small as it gets.
	m, err := hashmap.New[int](10)
	if err != nil {
		log.Fatalw("failed to create map", "error", err)
	}

	if err := m.Set(intKey(42), 10); err != nil {
		log.Fatalw("failed to insert key 42", "error", err)
	}
	if err := m.Set(intKey(99), 20); err != nil {
		log.Fatalw("failed to insert key 99", "error", err)
	}

	if v, ok := m.Get(intKey(42)); ok {
		log.Infow("found value for key", "key", 42, "value", v)
	}
	if v, ok := m.Get(intKey(99)); ok {
		log.Infow("found value for key", "key", 99, "value", v)
	}

	if err := m.Delete(intKey(42)); err != nil {
		log.Fatalw("failed to delete key 42", "error", err)
	}
	if _, ok := m.Get(intKey(42)); !ok {
		log.Infow("key not found after deletion", "key", 42)
	}

	// Same table shape, persisted in a memory-mapped file.
	path := filepath.Join(os.TempDir(), "example.hashmap")
	os.Remove(path)
	defer os.Remove(path)

	dm, err := hashmap.Create(path, 1024, 8, 8)
	if err != nil {
		log.Fatalw("failed to create disk map", "error", err)
	}
	defer dm.Close()

	for i := uint64(0); i < 10; i++ {
		key := make([]byte, 8)
		value := make([]byte, 8)
		binary.BigEndian.PutUint64(key, i)
		binary.BigEndian.PutUint64(value, i*100)

		if err := dm.Put(key, value); err != nil {
			log.Fatalw("failed to insert key", "key", i, "error", err)
		}
	}
	log.Infow("inserted key-value pairs", "count", dm.Len(), "path", path)

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, 7)
	if value, ok := dm.Get(key); ok {
		log.Infow("found value for key", "key", 7, "value", binary.BigEndian.Uint64(value))
	}

	if err := dm.Delete(key); err != nil && !errors.Is(err, hashmap.ErrNotFound) {
		log.Fatalw("failed to delete key", "key", 7, "error", err)
	}
	if _, ok := dm.Get(key); !ok {
		log.Infow("key not found after deletion", "key", 7)
	}

	log.Info("example completed successfully")
}
