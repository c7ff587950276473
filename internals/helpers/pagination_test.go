package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(95, 2, 25)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 25, p.PerPage)
	assert.Equal(t, int64(95), p.Total)
	assert.Equal(t, 4, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	first := BuildPaginationFromPage(10, 1, 25)
	assert.Equal(t, 1, first.TotalPages)
	assert.False(t, first.HasNext)
	assert.False(t, first.HasPrev)

	empty := BuildPaginationFromPage(0, 1, 25)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)

	// default guard
	guarded := BuildPaginationFromPage(100, 0, 0)
	assert.Equal(t, 1, guarded.Page)
	assert.Equal(t, 20, guarded.PerPage)
}
