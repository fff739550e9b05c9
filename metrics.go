package skipkv

import (
	"math/bits"
	"runtime"
	"sync/atomic"
)

type metricShard struct {
	inserts      atomic.Int64
	updates      atomic.Int64
	deletes      atomic.Int64
	deleteMisses atomic.Int64
	searches     atomic.Int64
	searchHits   atomic.Int64
	// Pad to cache line size to prevent false sharing.
	_ [16]byte
}

// Stats is a point-in-time sum of a list's operation counters.
type Stats struct {
	Inserts      int64
	Updates      int64
	Deletes      int64
	DeleteMisses int64
	Searches     int64
	SearchHits   int64
}

// Metrics counts list operations. Searches run concurrently under the read
// lock, so counters are sharded across GOMAXPROCS.
type Metrics struct {
	shards []metricShard
	mask   uint32
	rng    *RNG
}

func newMetrics(rng *RNG) *Metrics {
	shardCount := 1
	if rng != nil {
		shardCount = runtime.GOMAXPROCS(0)
		if shardCount < 1 {
			shardCount = 1
		}
		shardCount = nextPowerOfTwo(shardCount)
	}
	return &Metrics{
		shards: make([]metricShard, shardCount),
		mask:   uint32(shardCount - 1),
		rng:    rng,
	}
}

func nextPowerOfTwo(v int) int {
	if v <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(v-1))
}

func (m *Metrics) shard() *metricShard {
	if len(m.shards) == 1 || m.rng == nil {
		return &m.shards[0]
	}
	idx := uint32(m.rng.nextRandom64()) & m.mask
	return &m.shards[idx]
}

func (m *Metrics) IncInsert() {
	m.shard().inserts.Add(1)
}

func (m *Metrics) IncUpdate() {
	m.shard().updates.Add(1)
}

func (m *Metrics) IncDelete() {
	m.shard().deletes.Add(1)
}

func (m *Metrics) IncDeleteMiss() {
	m.shard().deleteMisses.Add(1)
}

// IncSearch records a lookup and whether it found its key.
func (m *Metrics) IncSearch(hit bool) {
	s := m.shard()
	s.searches.Add(1)
	if hit {
		s.searchHits.Add(1)
	}
}

// Snapshot sums every shard.
func (m *Metrics) Snapshot() Stats {
	var st Stats
	for i := range m.shards {
		s := &m.shards[i]
		st.Inserts += s.inserts.Load()
		st.Updates += s.updates.Load()
		st.Deletes += s.deletes.Load()
		st.DeleteMisses += s.deleteMisses.Load()
		st.Searches += s.searches.Load()
		st.SearchHits += s.searchHits.Load()
	}
	return st
}
