package skipkv

import "log/slog"

// Status is the outcome of a mutating operation.
type Status int

const (
	// Inserted means the key was new and a node was linked in.
	Inserted Status = iota
	// Updated means the key existed and its value was replaced in place.
	Updated
	// Deleted means the key was found and removed.
	Deleted
	// NotFound means the key was absent and nothing changed.
	NotFound
)

func (s Status) String() string {
	switch s {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	case Deleted:
		return "deleted"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Insert stores value under key. An existing key keeps its node and gets the
// new value (Updated); otherwise a node is linked in (Inserted).
func (sl *SkipList[K, V]) Insert(key K, value V) Status {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	st := sl.mut.put(key, value)
	sl.logger.Debug("insert", slog.Any("key", key), slog.String("status", st.String()))
	return st
}

// Delete removes key. Deleting an absent key reports NotFound and leaves the
// list untouched.
func (sl *SkipList[K, V]) Delete(key K) Status {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	st := sl.mut.delete(key)
	sl.logger.Debug("delete", slog.Any("key", key), slog.String("status", st.String()))
	return st
}

// mutatorImpl groups the mutating algorithms. Callers hold the write lock.
type mutatorImpl[K any, V any] struct {
	m *SkipList[K, V]
}

// put splices a new node after the recorded predecessors, or replaces the
// value of the node already holding key.
func (u *mutatorImpl[K, V]) put(key K, value V) Status {
	m := u.m
	preds := m.update
	defer clear(preds)

	succ := m.findPredecessors(key, preds)
	if m.matches(succ, key) {
		succ.value = value
		m.metrics.IncUpdate()
		return Updated
	}

	level := m.rng.randomLevel(m.maxLevel)
	if level > m.topLevel {
		for i := m.topLevel + 1; i <= level; i++ {
			preds[i] = m.header
		}
		m.topLevel = level
	}

	n := m.acquireNode(key, value, level)
	for i := 0; i <= level; i++ {
		n.forward[i] = preds[i].forward[i]
		preds[i].forward[i] = n
		if spliceLevelHook != nil {
			spliceLevelHook(i, n)
		}
	}

	m.count++
	m.metrics.IncInsert()
	return Inserted
}

// delete cuts the node holding key out of every level it occupies, bottom
// up, then drops any top levels left empty.
func (u *mutatorImpl[K, V]) delete(key K) Status {
	m := u.m
	preds := m.update
	defer clear(preds)

	target := m.findPredecessors(key, preds)
	if !m.matches(target, key) {
		m.metrics.IncDeleteMiss()
		return NotFound
	}

	for i := 0; i <= m.topLevel; i++ {
		// The target's tower ends below this level.
		if preds[i].forward[i] != target {
			break
		}
		preds[i].forward[i] = target.forward[i]
		if unlinkLevelHook != nil {
			unlinkLevelHook(i, target)
		}
	}

	m.shrink()
	m.releaseNode(target)

	m.count--
	m.metrics.IncDelete()
	return Deleted
}

// shrink lowers topLevel past levels that no longer hold any node.
func (sl *SkipList[K, V]) shrink() {
	for sl.topLevel > 0 && sl.header.forward[sl.topLevel] == nil {
		sl.topLevel--
	}
}
