package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRombelAbsenFormat(t *testing.T) {
	valid := []string{"X-1-01", "XI-2-15", "XII-10-7"}
	for _, v := range valid {
		assert.True(t, RombelAbsenRE.MatchString(v), v)
	}

	invalid := []string{"", "X-1", "XIII-1-01", "x-1-01", "X-1-01-extra", "IX-1-01", "X-a-01"}
	for _, v := range invalid {
		assert.False(t, RombelAbsenRE.MatchString(v), v)
	}
}

func TestClassAndAbsenNumber(t *testing.T) {
	s := StudentModel{StudentRombelAbsen: "XI-3-07"}
	assert.Equal(t, "XI-3", s.Class())
	assert.Equal(t, "07", s.AbsenNumber())

	assert.Equal(t, "X-1", ClassFromRombel("X-1-01"))
	assert.Equal(t, "aneh", ClassFromRombel("aneh"))
}

func TestIsValidReligion(t *testing.T) {
	for _, r := range Religions {
		assert.True(t, IsValidReligion(r), r)
	}
	assert.False(t, IsValidReligion("islam")) // case-sensitive
	assert.False(t, IsValidReligion(""))
	assert.False(t, IsValidReligion("Ateis"))
}
