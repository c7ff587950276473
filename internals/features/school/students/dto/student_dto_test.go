package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreate() CreateStudentRequest {
	return CreateStudentRequest{
		NIS:         "10001",
		NISN:        "0051234567",
		Name:        "Siti Rahma",
		Gender:      "P",
		BirthPlace:  "Bandung",
		BirthDate:   "2008-03-15",
		Religion:    "Islam",
		FatherName:  "Ahmad",
		Address:     "Jl. Merdeka No. 1",
		RombelAbsen: "X-1-07",
	}
}

func TestCreateStudentToModel(t *testing.T) {
	req := validCreate()
	req.Normalize()

	s, err := req.ToModel()
	require.NoError(t, err)
	assert.Equal(t, "10001", s.StudentNIS)
	assert.Equal(t, "X-1", s.Class())
	assert.Equal(t, "07", s.AbsenNumber())
	assert.Equal(t, 2008, s.StudentBirthDate.Year())
}

func TestCreateStudentToModelRejectsBadDomain(t *testing.T) {
	t.Run("agama tidak dikenal", func(t *testing.T) {
		req := validCreate()
		req.Religion = "Jedi"
		_, err := req.ToModel()
		assert.Error(t, err)
	})

	t.Run("rombel salah format", func(t *testing.T) {
		req := validCreate()
		req.RombelAbsen = "XIII-1-01"
		_, err := req.ToModel()
		assert.Error(t, err)
	})

	t.Run("tanggal salah format", func(t *testing.T) {
		req := validCreate()
		req.BirthDate = "15-03-2008"
		_, err := req.ToModel()
		assert.Error(t, err)
	})
}

func TestUpdateStudentApply(t *testing.T) {
	req := validCreate()
	req.Normalize()
	s, err := req.ToModel()
	require.NoError(t, err)

	name := "Siti Rahmawati"
	rombel := "XI-1-07"
	upd := UpdateStudentRequest{Name: &name, RombelAbsen: &rombel}
	upd.Normalize()

	require.NoError(t, upd.Apply(s))
	assert.Equal(t, "Siti Rahmawati", s.StudentName)
	assert.Equal(t, "XI-1", s.Class())

	bad := "X-1"
	upd = UpdateStudentRequest{RombelAbsen: &bad}
	assert.Error(t, upd.Apply(s))
}
