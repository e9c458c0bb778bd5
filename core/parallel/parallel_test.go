package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversEveryIndexOnce(t *testing.T) {
	const items = 1000
	var hits [items]int32

	Parallelize(items, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
}

func TestParallelizeWithWorkers(t *testing.T) {
	tests := []struct {
		name    string
		items   int
		workers int
	}{
		{"sequential", 10, 1},
		{"zero workers falls back to sequential", 10, 0},
		{"more workers than items", 3, 16},
		{"uneven chunks", 17, 4},
		{"empty range", 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var total int64
			ParallelizeWithWorkers(tt.items, tt.workers, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt64(&total, int64(i))
				}
			})
			want := int64(tt.items*(tt.items-1)) / 2
			if total != want {
				t.Errorf("sum of visited indices = %d, want %d", total, want)
			}
		})
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	// Below threshold the callback must receive the whole range at once.
	calls := 0
	ParallelizeWithThreshold(5, 10, func(start, end int) {
		calls++
		if start != 0 || end != 5 {
			t.Errorf("sequential call got [%d,%d), want [0,5)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("sequential path made %d calls, want 1", calls)
	}

	var visited int64
	ParallelizeWithThreshold(100, 10, func(start, end int) {
		atomic.AddInt64(&visited, int64(end-start))
	})
	if visited != 100 {
		t.Errorf("parallel path visited %d items, want 100", visited)
	}
}
