package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 85.0, Round2(85.0))
	assert.Equal(t, 83.33, Round2(83.333333))
	assert.Equal(t, 83.34, Round2(83.336))
	assert.Equal(t, 0.0, Round2(0))
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name        string
		scores      []int
		wantTotal   int
		wantAverage float64
	}{
		{"dua nilai", []int{80, 90}, 170, 85.0},
		{"nilai diganti", []int{80, 60}, 140, 70.0},
		{"satu nilai", []int{75}, 75, 75.0},
		{"rata-rata pecahan", []int{70, 75, 80}, 225, 75.0},
		{"pembulatan dua desimal", []int{70, 80, 85}, 235, 78.33},
		{"kosong", nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, average := ComputeStats(tt.scores)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantAverage, average)
		})
	}
}

func TestComputeStatsIdempotent(t *testing.T) {
	scores := []int{88, 92, 77}
	t1, a1 := ComputeStats(scores)
	t2, a2 := ComputeStats(scores)
	assert.Equal(t, t1, t2)
	assert.Equal(t, a1, a2)
}
