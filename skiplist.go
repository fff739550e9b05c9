package skipkv

import (
	"cmp"
	"io"
	"log/slog"
	"sync"
)

// Compare orders two keys. It returns a negative number when a < b, zero
// when a == b and a positive number when a > b.
type Compare[K any] func(a, b K) int

// SkipList is an ordered key/value map backed by a probabilistic skip list.
//
// All operations on one list are serialized by a single lock: Insert,
// Delete, Load and Clear take it exclusively for their whole body, while
// Search, Dump and iteration share it.
type SkipList[K any, V any] struct {
	mu sync.RWMutex

	compare  Compare[K]
	header   *node[K, V]
	maxLevel int
	topLevel int
	count    int

	// update is the predecessor buffer reused by writers under mu.
	update   []*node[K, V]
	nodePool sync.Pool
	rng      *RNG
	metrics  *Metrics
	mut      mutatorImpl[K, V]

	codec     Codec[K, V]
	codecErr  error
	delimiter string
	storePath string
	logger    *slog.Logger
}

// New returns an empty list over an ordered key type, compared with
// cmp.Compare. maxLevel is the highest level index any node may reach.
func New[K cmp.Ordered, V any](maxLevel int, opts ...Option) (*SkipList[K, V], error) {
	cfg := DefaultConfig()
	cfg.MaxLevel = maxLevel
	for _, opt := range opts {
		opt(&cfg)
	}
	return build[K, V](cmp.Compare[K], cfg)
}

// NewFromConfig returns an empty list over an ordered key type built from
// cfg. opts are applied on top of cfg.
func NewFromConfig[K cmp.Ordered, V any](cfg Config, opts ...Option) (*SkipList[K, V], error) {
	for _, opt := range opts {
		opt(&cfg)
	}
	return build[K, V](cmp.Compare[K], cfg)
}

// NewWithComparator returns an empty list whose keys are ordered by compare.
// Use it for key types without a natural order.
func NewWithComparator[K any, V any](compare Compare[K], maxLevel int, opts ...Option) (*SkipList[K, V], error) {
	if compare == nil {
		return nil, ErrNilComparator
	}
	cfg := DefaultConfig()
	cfg.MaxLevel = maxLevel
	for _, opt := range opts {
		opt(&cfg)
	}
	return build[K, V](compare, cfg)
}

func build[K any, V any](compare Compare[K], cfg Config) (*SkipList[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sl := &SkipList[K, V]{
		compare:   compare,
		header:    newHeader[K, V](cfg.MaxLevel),
		maxLevel:  cfg.MaxLevel,
		update:    make([]*node[K, V], cfg.MaxLevel+1),
		rng:       newRNG(cfg.Seed),
		metrics:   newMetrics(newRNG(0)),
		delimiter: cfg.Delimiter,
		storePath: cfg.StorePath,
		logger:    cfg.Logger,
	}
	sl.nodePool.New = func() any { return &node[K, V]{} }
	sl.mut = mutatorImpl[K, V]{m: sl}

	if sl.logger == nil {
		sl.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	switch c := cfg.codec.(type) {
	case nil:
		sl.codec, sl.codecErr = newDefaultCodec[K, V]()
	case Codec[K, V]:
		sl.codec = c
	default:
		return nil, ErrCodecMismatch
	}

	return sl, nil
}

// head returns the sentinel header. It panics once the list is closed.
func (sl *SkipList[K, V]) head() *node[K, V] {
	if sl == nil || sl.header == nil {
		panic(ErrClosed)
	}
	return sl.header
}

// Search returns the value stored for key. The boolean is false if the key
// is absent.
func (sl *SkipList[K, V]) Search(key K) (V, bool) {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	n := sl.findPredecessors(key, nil)
	found := sl.matches(n, key)
	sl.metrics.IncSearch(found)
	sl.logger.Debug("search", slog.Any("key", key), slog.Bool("found", found))

	if !found {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Contains reports whether key is present.
func (sl *SkipList[K, V]) Contains(key K) bool {
	_, ok := sl.Search(key)
	return ok
}

// Len returns the number of keys in the list.
func (sl *SkipList[K, V]) Len() int {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return sl.count
}

// Level returns the highest level currently holding a node, or 0 when the
// list is empty.
func (sl *SkipList[K, V]) Level() int {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return sl.topLevel
}

// MaxLevel returns the level ceiling fixed at construction.
func (sl *SkipList[K, V]) MaxLevel() int {
	return sl.maxLevel
}

// Stats returns the operation counters.
func (sl *SkipList[K, V]) Stats() Stats {
	return sl.metrics.Snapshot()
}

// Clear removes every key. The list stays usable.
func (sl *SkipList[K, V]) Clear() {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.teardown()
}

// Close releases every node and the header. Using the list afterwards
// panics with ErrClosed; closing it again returns ErrClosed.
func (sl *SkipList[K, V]) Close() error {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if sl.header == nil {
		return ErrClosed
	}
	sl.teardown()
	sl.header = nil
	sl.update = nil
	return nil
}

// teardown walks the base level releasing each node, then resets the header.
func (sl *SkipList[K, V]) teardown() {
	h := sl.head()
	for n := h.forward[0]; n != nil; {
		next := n.forward[0]
		sl.releaseNode(n)
		n = next
	}
	clear(h.forward)
	clear(sl.update)
	sl.topLevel = 0
	sl.count = 0
}
