package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("rahasia-banget")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia-banget", hashed)

	assert.True(t, CheckPassword(hashed, "rahasia-banget"))
	assert.False(t, CheckPassword(hashed, "salah"))
	assert.False(t, CheckPassword(hashed, ""))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("sama")
	require.NoError(t, err)
	h2, err := HashPassword("sama")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2) // bcrypt pakai salt acak
}
