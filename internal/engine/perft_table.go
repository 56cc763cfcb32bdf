package engine

import (
	"sync"
	"sync/atomic"
)

// Number of shards for table locking (power of 2 for fast modulo)
const ptShardCount = 256
const ptShardMask = ptShardCount - 1

// PerftEntry is one memoized subtree count.
type PerftEntry struct {
	Key   uint64 // Full 64-bit Zobrist hash for verification
	Nodes uint64
	Depth int32
}

// PerftTable memoizes perft subtree counts by position hash and depth.
// Uses sharded locking so parallel perft workers can share it.
type PerftTable struct {
	entries []PerftEntry
	shards  [ptShardCount]sync.RWMutex
	mask    uint64

	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewPerftTable creates a table with the given size in MB.
func NewPerftTable(sizeMB int) *PerftTable {
	entrySize := uint64(24)
	numEntries := roundDownToPowerOf2((uint64(sizeMB) * 1024 * 1024) / entrySize)
	if numEntries == 0 {
		numEntries = 1
	}

	return &PerftTable{
		entries: make([]PerftEntry, numEntries),
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe returns the stored count for hash at exactly depth.
func (pt *PerftTable) Probe(hash uint64, depth int) (uint64, bool) {
	pt.probes.Add(1)

	idx := hash & pt.mask
	shard := &pt.shards[idx&ptShardMask]

	shard.RLock()
	entry := pt.entries[idx]
	shard.RUnlock()

	if entry.Key == hash && int(entry.Depth) == depth {
		pt.hits.Add(1)
		return entry.Nodes, true
	}
	return 0, false
}

// Store saves a count, keeping the deeper entry when two positions collide
// on the same slot.
func (pt *PerftTable) Store(hash uint64, depth int, nodes uint64) {
	idx := hash & pt.mask
	shard := &pt.shards[idx&ptShardMask]

	shard.Lock()
	entry := &pt.entries[idx]
	if entry.Key == 0 || depth >= int(entry.Depth) {
		*entry = PerftEntry{Key: hash, Nodes: nodes, Depth: int32(depth)}
	}
	shard.Unlock()
}

// Clear empties the table.
func (pt *PerftTable) Clear() {
	for i := range pt.shards {
		pt.shards[i].Lock()
	}
	for i := range pt.entries {
		pt.entries[i] = PerftEntry{}
	}
	for i := range pt.shards {
		pt.shards[i].Unlock()
	}
	pt.hits.Store(0)
	pt.probes.Store(0)
}

// HitRate returns the fraction of probes that hit, in permille.
func (pt *PerftTable) HitRate() int {
	probes := pt.probes.Load()
	if probes == 0 {
		return 0
	}
	return int(pt.hits.Load() * 1000 / probes)
}
