package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

// =============================================================================
// Split Tests
// =============================================================================

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		y0, y1 int
		height int
		want   []Band
	}{
		{"empty", 5, 5, 4, nil},
		{"inverted", 6, 2, 4, nil},
		{"exact", 0, 8, 4, []Band{{0, 4}, {4, 8}}},
		{"remainder", 2, 9, 3, []Band{{2, 5}, {5, 8}, {8, 9}}},
		{"single", 0, 3, 16, []Band{{0, 3}}},
		{"no height", 1, 7, 0, []Band{{1, 7}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.y0, tt.y1, tt.height)
			if len(got) != len(tt.want) {
				t.Fatalf("Split(%d, %d, %d) = %v, want %v", tt.y0, tt.y1, tt.height, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("band %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplit_CoversRange(t *testing.T) {
	bands := Split(3, 1000, 7)
	next := 3
	for _, b := range bands {
		if b.Y0 != next {
			t.Fatalf("gap or overlap at %d: band %v", next, b)
		}
		if b.Rows() <= 0 || b.Rows() > 7 {
			t.Errorf("band %v has %d rows", b, b.Rows())
		}
		next = b.Y1
	}
	if next != 1000 {
		t.Errorf("bands end at %d, want 1000", next)
	}
}

// =============================================================================
// Pool Tests
// =============================================================================

func TestPool_Create(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("pool should be running after creation")
	}
}

func TestPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -3} {
		pool := NewPool(n)
		if pool.Workers() != runtime.GOMAXPROCS(0) {
			t.Errorf("NewPool(%d).Workers() = %d, want GOMAXPROCS", n, pool.Workers())
		}
		pool.Close()
	}
}

func TestPool_RunVisitsEveryRowOnce(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	const rows = 517
	var hits [rows]atomic.Int32
	pool.Run(Split(0, rows, 16), func(b Band) {
		for y := b.Y0; y < b.Y1; y++ {
			hits[y].Add(1)
		}
	})

	for y := range hits {
		if n := hits[y].Load(); n != 1 {
			t.Fatalf("row %d visited %d times", y, n)
		}
	}
}

func TestPool_RunConcurrentCallers(t *testing.T) {
	pool := NewPool(3)
	defer pool.Close()

	var total atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Run(Split(0, 100, 10), func(b Band) {
				total.Add(int64(b.Rows()))
			})
		}()
	}
	wg.Wait()

	if got := total.Load(); got != 800 {
		t.Errorf("total rows = %d, want 800", got)
	}
}

func TestPool_RunAfterClose(t *testing.T) {
	pool := NewPool(2)
	pool.Close()
	pool.Close() // idempotent

	if pool.IsRunning() {
		t.Error("pool should not be running after Close")
	}

	rows := 0
	pool.Run(Split(0, 40, 8), func(b Band) {
		rows += b.Rows() // inline, no race
	})
	if rows != 40 {
		t.Errorf("closed pool ran %d rows, want 40", rows)
	}
}

func TestPool_RunEmpty(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	pool.Run(nil, func(Band) {
		t.Error("fn called for empty band list")
	})
}
