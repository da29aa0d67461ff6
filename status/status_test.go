package status

import (
	"strings"
	"sync"
	"testing"
)

func TestMetricMapCachesPointers(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	a := m.Get("fps")
	a.Set(30)
	if b := m.Get("fps"); b != a || b.Get() != 30 {
		t.Errorf("second Get returned a different metric")
	}
	if !m.Has("fps") || m.Has("missing") {
		t.Error("Has mismatch")
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Ints.Get("frames").Add(1)
			}
		}()
	}
	wg.Wait()
	if got := r.Ints.Get("frames").Load(); got != 1600 {
		t.Errorf("frames = %d, want 1600", got)
	}
}

func TestRangeSorted(t *testing.T) {
	m := NewMetricMap[AtomicString]()
	for _, k := range []string{"c", "a", "b"} {
		m.Get(k).Store(k)
	}
	var keys []string
	m.Range(func(k string, _ *AtomicString) { keys = append(keys, k) })
	if strings.Join(keys, "") != "abc" {
		t.Errorf("order = %v", keys)
	}
}

func TestSmoothAndTruncate(t *testing.T) {
	var f AtomicFloat
	if v := f.Smooth(10, 0.5); v != 10 {
		t.Errorf("first sample = %v, want 10", v)
	}
	if v := f.Smooth(20, 0.5); v != 15 {
		t.Errorf("smoothed = %v, want 15", v)
	}

	var s AtomicString
	s.Store(strings.Repeat("x", MaxStringLen+5))
	if len(s.Load()) != MaxStringLen {
		t.Errorf("len = %d", len(s.Load()))
	}
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("chain.advanced").Store(4)
	r.Floats.Get("game.fps").Set(29.5)
	r.Strings.Get("game.state").Store("running")

	snap := r.Snapshot()
	if len(snap) != 3 || r.TotalCount() != 3 {
		t.Fatalf("snapshot = %v", snap)
	}
	if snap["chain.advanced"] != int64(4) || snap["game.fps"] != 29.5 || snap["game.state"] != "running" {
		t.Errorf("snapshot = %v", snap)
	}
}
