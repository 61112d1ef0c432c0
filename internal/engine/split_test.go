package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEvenly(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		count int
		want  []int64
	}{
		{name: "exact division", total: 94500, count: 3, want: []int64{31500, 31500, 31500}},
		{name: "remainder goes to the front", total: 101, count: 2, want: []int64{51, 50}},
		{name: "remainder spread over first positions", total: 10, count: 3, want: []int64{4, 3, 3}},
		{name: "single part", total: 7, count: 1, want: []int64{7}},
		{name: "zero total", total: 0, count: 4, want: []int64{0, 0, 0, 0}},
		{name: "total smaller than count", total: 2, count: 5, want: []int64{1, 1, 0, 0, 0}},
		{name: "zero count", total: 100, count: 0, want: nil},
		{name: "negative count", total: 100, count: -1, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitEvenly(tt.total, tt.count))
		})
	}
}

func TestSplitEvenlyConservation(t *testing.T) {
	// sum(split(total, count)) == total and max-min <= 1 for a sweep of
	// inputs, so no rupiah ever leaks in either direction.
	for total := int64(0); total <= 500; total += 7 {
		for count := 1; count <= 13; count++ {
			parts := SplitEvenly(total, count)
			require.Len(t, parts, count)

			var sum, min, max int64
			min, max = parts[0], parts[0]
			for _, p := range parts {
				sum += p
				if p < min {
					min = p
				}
				if p > max {
					max = p
				}
			}
			require.Equal(t, total, sum, "total=%d count=%d", total, count)
			require.LessOrEqual(t, max-min, int64(1), "total=%d count=%d", total, count)
		}
	}
}
