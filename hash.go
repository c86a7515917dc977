package hashmap

const (
	offset32 = 2166136261
	prime32  = 16777619
)

// fnv1a computes the 32-bit FNV-1a hash of key. Unseeded and
// deterministic: equal keys always land on the same slot, across runs
// and across the files DiskMap writes. Not collision-resistant against
// adversarial keys.
func fnv1a(key []byte) uint32 {
	hash := uint32(offset32)
	for _, b := range key {
		hash ^= uint32(b)
		hash *= prime32
	}
	return hash
}
