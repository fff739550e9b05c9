package skipkv

import (
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
	"testing"
	"time"
)

func TestConcurrentMixedOperationsStorm(t *testing.T) {
	t.Cleanup(func() {
		if t.Failed() {
			pprof.Lookup("goroutine").WriteTo(os.Stderr, 2)
		}
	})

	// Log seed for reproducibility
	seed := time.Now().UnixNano()
	t.Logf("test seed=%d", seed)

	m := newTestList[int, int](t, 12)

	const keySpace = 128
	goroutines := max(2*runtime.GOMAXPROCS(0), 4)
	const operationsPerGoroutine = 2000

	// Each goroutine owns the keys congruent to its index, so the model can
	// be kept per goroutine without ordering races between writers.
	models := make([]map[int]int, goroutines)

	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		models[g] = make(map[int]int)
		go func(g int, s int64) {
			defer wg.Done()
			r := rand.New(rand.NewSource(s))
			model := models[g]
			for range operationsPerGoroutine {
				key := r.Intn(keySpace)*goroutines + g
				switch r.Intn(4) {
				case 0:
					value := r.Intn(1 << 16)
					_, existed := model[key]
					st := m.Insert(key, value)
					if existed != (st == Updated) {
						t.Errorf("insert %d: status %v, model existed=%v", key, st, existed)
						return
					}
					model[key] = value
				case 1:
					_, existed := model[key]
					st := m.Delete(key)
					if existed != (st == Deleted) {
						t.Errorf("delete %d: status %v, model existed=%v", key, st, existed)
						return
					}
					delete(model, key)
				case 2:
					want, existed := model[key]
					got, ok := m.Search(key)
					if ok != existed || got != want {
						t.Errorf("search %d: got (%d, %v), want (%d, %v)", key, got, ok, want, existed)
						return
					}
				case 3:
					m.Contains(key)
				}
			}
		}(g, seed+int64(g))
	}

	wg.Wait()
	if t.Failed() {
		return
	}

	expected := make(map[int]int)
	for _, model := range models {
		for k, v := range model {
			expected[k] = v
		}
	}

	if got := m.Len(); got != len(expected) {
		t.Fatalf("expected length %d after storm, got %d", len(expected), got)
	}

	observed := make(map[int]int)
	it := m.Iterator()
	prevKey := -1
	for it.Next() {
		k := it.Key()
		if k <= prevKey {
			t.Fatalf("iterator out of order: previous=%d current=%d", prevKey, k)
		}
		prevKey = k
		observed[k] = it.Value()
	}

	for k, v := range expected {
		got, ok := observed[k]
		if !ok || got != v {
			t.Fatalf("model/key mismatch for %d: want %d, got %d (present=%v)", k, v, got, ok)
		}
	}

	checkInvariants(t, m)
}

func TestDeleteWhileInsertRacing(t *testing.T) {
	m := newTestList[int, int](t, 8)

	const iterations = 5000

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < iterations; i++ {
			m.Insert(1, i)
		}
	}()

	go func() {
		defer wg.Done()
		<-start
		for range iterations {
			m.Delete(1)
		}
	}()

	close(start)
	wg.Wait()

	if got := m.Len(); got != 0 && got != 1 {
		t.Fatalf("length must be 0 or 1 after racing on one key, got %d", got)
	}
	if v, ok := m.Search(1); ok && v != iterations-1 {
		t.Fatalf("surviving value must be the last insert, got %d", v)
	}
	checkInvariants(t, m)
}

func TestConcurrentDumpSeesConsistentSnapshot(t *testing.T) {
	m := newTestList[int, int](t, 10)
	for i := range 1000 {
		m.Insert(i, i)
	}

	stop := make(chan struct{})
	var writers sync.WaitGroup
	writers.Add(1)
	go func() {
		defer writers.Done()
		r := rand.New(rand.NewSource(42))
		for {
			select {
			case <-stop:
				return
			default:
			}
			k := r.Intn(1000)
			m.Delete(k)
			m.Insert(k, k)
		}
	}()

	for range 50 {
		var sb lineCounter
		if err := m.Dump(&sb); err != nil {
			close(stop)
			writers.Wait()
			t.Fatalf("dump: %v", err)
		}
		// A delete and its re-insert are separate critical sections, so a
		// snapshot may miss one key but never holds a partial record.
		if lines := sb.lines; lines < 999 || lines > 1000 {
			close(stop)
			writers.Wait()
			t.Fatalf("dump wrote %d records", lines)
		}
	}

	close(stop)
	writers.Wait()
}

// lineCounter counts newline-terminated records written to it.
type lineCounter struct {
	lines int
}

func (s *lineCounter) Write(p []byte) (int, error) {
	for _, b := range p {
		if b == '\n' {
			s.lines++
		}
	}
	return len(p), nil
}
