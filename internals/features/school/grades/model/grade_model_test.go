package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeLetter(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "A"},
		{90, "A"},
		{89, "B"},
		{80, "B"},
		{79, "C"},
		{70, "C"},
		{69, "D"},
		{60, "D"},
		{59, "E"},
		{0, "E"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeLetter(tt.score), "score %d", tt.score)
	}
}

func TestGradeIsPassing(t *testing.T) {
	assert.True(t, GradeModel{GradeScore: 75}.IsPassing())
	assert.True(t, GradeModel{GradeScore: 100}.IsPassing())
	assert.False(t, GradeModel{GradeScore: 74}.IsPassing())
	assert.False(t, GradeModel{GradeScore: 0}.IsPassing())
}
