package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradePointAverage(t *testing.T) {
	tests := []struct {
		average float64
		want    float64
	}{
		{85.0, 3.40},
		{100.0, 4.00},
		{75.0, 3.00},
		{0.0, 0.00},
		{83.33, 3.33},
		{78.33, 3.13},
	}
	for _, tt := range tests {
		s := GradeSummaryModel{GradeSummaryAverageScore: tt.average}
		assert.InDelta(t, tt.want, s.GradePointAverage(), 0.001, "average %.2f", tt.average)
	}
}

func TestSummaryStatus(t *testing.T) {
	assert.Equal(t, "Lulus", GradeSummaryModel{GradeSummaryAverageScore: 75.0}.Status())
	assert.Equal(t, "Lulus", GradeSummaryModel{GradeSummaryAverageScore: 90.5}.Status())
	assert.Equal(t, "Tidak Lulus", GradeSummaryModel{GradeSummaryAverageScore: 74.99}.Status())
	assert.Equal(t, "Tidak Lulus", GradeSummaryModel{GradeSummaryAverageScore: 0}.Status())
}
