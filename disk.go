package hashmap

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

const (
	diskMagic   uint32 = 0x48534D50
	diskVersion uint32 = 1
	headerSize         = 7 * 4 // 7 uint32 fields

	slotEmpty    byte = 0
	slotOccupied byte = 1
)

// DiskMap is a fixed-capacity hash table persisted in a memory-mapped
// file. Keys and values have fixed sizes chosen at creation time and the
// slot array never grows; once every slot is occupied, inserts of new
// keys fail with ErrFull. Probing and deletion follow the same
// linear-probing, backward-shift scheme as Map.
//
// The file starts with a big-endian header (magic, version, slot count,
// used slots, slot size, key size, value size) followed by the slots,
// each a status byte, the key and the value.
//
// DiskMap is safe for concurrent use; all operations take a single
// read/write mutex.
type DiskMap struct {
	mu        sync.RWMutex
	file      *os.File
	data      []byte
	keySize   uint32
	valueSize uint32
	slotSize  uint32
	numSlots  uint32
	usedSlots uint32
	closed    bool
}

// Create initializes a new hash table file at path with the given slot
// count and fixed key/value sizes. It fails if path already exists.
func Create(path string, capacity int, keySize, valueSize uint32) (*DiskMap, error) {
	if capacity < 1 {
		return nil, ErrCapacity
	}
	if keySize == 0 {
		return nil, ErrKeySize
	}
	if valueSize == 0 {
		return nil, ErrValueSize
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	slotSize := 1 + keySize + valueSize
	fileSize := int64(headerSize) + int64(capacity)*int64(slotSize)
	if err := file.Truncate(fileSize); err != nil {
		file.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to truncate file: %w", err)
	}

	header := make([]byte, headerSize)
	binary.BigEndian.PutUint32(header[0:4], diskMagic)
	binary.BigEndian.PutUint32(header[4:8], diskVersion)
	binary.BigEndian.PutUint32(header[8:12], uint32(capacity))
	binary.BigEndian.PutUint32(header[12:16], 0)
	binary.BigEndian.PutUint32(header[16:20], slotSize)
	binary.BigEndian.PutUint32(header[20:24], keySize)
	binary.BigEndian.PutUint32(header[24:28], valueSize)

	if _, err := file.WriteAt(header, 0); err != nil {
		file.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	return mapFile(file)
}

// Open maps an existing hash table file created by Create.
func Open(path string) (*DiskMap, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return mapFile(file)
}

func mapFile(file *os.File) (*DiskMap, error) {
	fi, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if fi.Size() < headerSize {
		file.Close()
		return nil, ErrBadMagic
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(fi.Size()),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	if binary.BigEndian.Uint32(data[0:4]) != diskMagic {
		unix.Munmap(data)
		file.Close()
		return nil, ErrBadMagic
	}
	if binary.BigEndian.Uint32(data[4:8]) != diskVersion {
		unix.Munmap(data)
		file.Close()
		return nil, ErrVersion
	}

	dm := &DiskMap{
		file:      file,
		data:      data,
		numSlots:  binary.BigEndian.Uint32(data[8:12]),
		usedSlots: binary.BigEndian.Uint32(data[12:16]),
		slotSize:  binary.BigEndian.Uint32(data[16:20]),
		keySize:   binary.BigEndian.Uint32(data[20:24]),
		valueSize: binary.BigEndian.Uint32(data[24:28]),
	}

	if dm.numSlots == 0 || dm.slotSize != 1+dm.keySize+dm.valueSize ||
		int64(headerSize)+int64(dm.numSlots)*int64(dm.slotSize) > fi.Size() {
		unix.Munmap(data)
		file.Close()
		return nil, ErrCorrupt
	}

	return dm, nil
}

// Len returns the number of entries currently stored.
func (dm *DiskMap) Len() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return int(dm.usedSlots)
}

// Cap returns the fixed slot count.
func (dm *DiskMap) Cap() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return int(dm.numSlots)
}

// KeySize and ValueSize return the fixed sizes recorded in the header.
func (dm *DiskMap) KeySize() uint32   { return dm.keySize }
func (dm *DiskMap) ValueSize() uint32 { return dm.valueSize }

// Put inserts a key-value pair, overwriting the value if the key is
// already present. Overwrites succeed even on a full table; inserting a
// new key into a full table returns ErrFull.
func (dm *DiskMap) Put(key, value []byte) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.closed {
		return ErrClosed
	}
	if uint32(len(key)) != dm.keySize {
		return ErrKeySize
	}
	if uint32(len(value)) != dm.valueSize {
		return ErrValueSize
	}

	idx := fnv1a(key) % dm.numSlots
	for probed := uint32(0); probed < dm.numSlots; probed++ {
		off := dm.slotOffset(idx)
		switch dm.data[off] {
		case slotEmpty:
			copy(dm.data[off+1:], key)
			copy(dm.data[off+1+int(dm.keySize):], value)
			dm.data[off] = slotOccupied
			dm.usedSlots++
			dm.writeUsedSlots()
			return nil
		case slotOccupied:
			if bytes.Equal(key, dm.keyAt(off)) {
				copy(dm.data[off+1+int(dm.keySize):], value)
				return nil
			}
		}
		idx = (idx + 1) % dm.numSlots
	}

	return ErrFull
}

// Get retrieves a copy of the value stored for key. The second result
// is false if key is not present, has the wrong size, or the map is
// closed.
func (dm *DiskMap) Get(key []byte) ([]byte, bool) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	if dm.closed || uint32(len(key)) != dm.keySize {
		return nil, false
	}

	idx := fnv1a(key) % dm.numSlots
	for probed := uint32(0); probed < dm.numSlots; probed++ {
		off := dm.slotOffset(idx)
		if dm.data[off] == slotEmpty {
			return nil, false
		}
		if bytes.Equal(key, dm.keyAt(off)) {
			val := make([]byte, dm.valueSize)
			copy(val, dm.data[off+1+int(dm.keySize):off+int(dm.slotSize)])
			return val, true
		}
		idx = (idx + 1) % dm.numSlots
	}

	return nil, false
}

// Delete removes key and its value, zeroing the vacated slot bytes. It
// returns ErrNotFound if key is not present.
func (dm *DiskMap) Delete(key []byte) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.closed {
		return ErrClosed
	}
	if uint32(len(key)) != dm.keySize {
		return ErrKeySize
	}

	idx := fnv1a(key) % dm.numSlots
	for probed := uint32(0); probed < dm.numSlots; probed++ {
		off := dm.slotOffset(idx)
		if dm.data[off] == slotEmpty {
			return ErrNotFound
		}
		if bytes.Equal(key, dm.keyAt(off)) {
			dm.compact(idx)
			dm.usedSlots--
			dm.writeUsedSlots()
			return nil
		}
		idx = (idx + 1) % dm.numSlots
	}

	return ErrNotFound
}

// compact closes the hole at slot i after a deletion, shifting later
// entries of the probe chain backward so that no surviving key becomes
// unreachable. Same scheme as Map.compact, over raw slot bytes.
func (dm *DiskMap) compact(i uint32) {
	j := i
	for {
		j = (j + 1) % dm.numSlots
		if j == i || dm.data[dm.slotOffset(j)] == slotEmpty {
			break
		}
		k := fnv1a(dm.keyAt(dm.slotOffset(j))) % dm.numSlots
		var reachable bool
		if i <= j {
			reachable = i < k && k <= j
		} else {
			reachable = i < k || k <= j
		}
		if reachable {
			continue
		}
		copy(dm.slotAt(i), dm.slotAt(j))
		i = j
	}
	// Zero the whole slot so deleted keys and values do not linger in
	// the file.
	s := dm.slotAt(i)
	for b := range s {
		s[b] = 0
	}
}

// Sync flushes outstanding changes to the backing file.
func (dm *DiskMap) Sync() error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.closed {
		return ErrClosed
	}
	if err := unix.Msync(dm.data, unix.MS_SYNC); err != nil {
		return fmt.Errorf("msync failed: %w", err)
	}
	return nil
}

// Close flushes, unmaps and closes the backing file. The map must not
// be used afterward; operations on a closed map return ErrClosed.
func (dm *DiskMap) Close() error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.closed {
		return ErrClosed
	}
	dm.closed = true

	if err := unix.Msync(dm.data, unix.MS_SYNC); err != nil {
		unix.Munmap(dm.data)
		dm.file.Close()
		return fmt.Errorf("msync failed: %w", err)
	}
	if err := unix.Munmap(dm.data); err != nil {
		dm.file.Close()
		return fmt.Errorf("munmap failed: %w", err)
	}
	dm.data = nil
	return dm.file.Close()
}

func (dm *DiskMap) slotOffset(i uint32) int {
	return headerSize + int(i)*int(dm.slotSize)
}

func (dm *DiskMap) keyAt(off int) []byte {
	return dm.data[off+1 : off+1+int(dm.keySize)]
}

func (dm *DiskMap) slotAt(i uint32) []byte {
	off := dm.slotOffset(i)
	return dm.data[off : off+int(dm.slotSize)]
}

func (dm *DiskMap) writeUsedSlots() {
	binary.BigEndian.PutUint32(dm.data[12:16], dm.usedSlots)
}
