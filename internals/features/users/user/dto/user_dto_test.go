package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/constants"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

func ptr[T any](v T) *T { return &v }

func TestCreateUserContext(t *testing.T) {
	subjectID := uuid.New()

	t.Run("admin bersih", func(t *testing.T) {
		rc, err := (CreateUserRequest{Role: constants.RoleAdmin}).Context()
		require.NoError(t, err)
		assert.Equal(t, constants.RoleAdmin, rc.Role)
		assert.Nil(t, rc.SubjectID)
		assert.Nil(t, rc.Class)
		assert.Nil(t, rc.AlumniNIM)
	})

	t.Run("admin dengan scope ditolak", func(t *testing.T) {
		_, err := (CreateUserRequest{Role: constants.RoleAdmin, Class: ptr("X-1")}).Context()
		assert.Error(t, err)
	})

	t.Run("guru wajib subject", func(t *testing.T) {
		_, err := (CreateUserRequest{Role: constants.RoleGuru}).Context()
		assert.Error(t, err)

		rc, err := (CreateUserRequest{Role: constants.RoleGuru, SubjectID: &subjectID}).Context()
		require.NoError(t, err)
		require.NotNil(t, rc.SubjectID)
		assert.Equal(t, subjectID, *rc.SubjectID)
	})

	t.Run("guru dengan nim nyasar ditolak", func(t *testing.T) {
		_, err := (CreateUserRequest{
			Role:      constants.RoleGuru,
			SubjectID: &subjectID,
			AlumniNIM: ptr("A001"),
		}).Context()
		assert.Error(t, err)
	})

	t.Run("wali wajib class", func(t *testing.T) {
		_, err := (CreateUserRequest{Role: constants.RoleWaliKelas}).Context()
		assert.Error(t, err)

		rc, err := (CreateUserRequest{Role: constants.RoleWaliKelas, Class: ptr("XI-2")}).Context()
		require.NoError(t, err)
		require.NotNil(t, rc.Class)
		assert.Equal(t, "XI-2", *rc.Class)
	})

	t.Run("alumni wajib nim", func(t *testing.T) {
		_, err := (CreateUserRequest{Role: constants.RoleAlumni}).Context()
		assert.Error(t, err)

		rc, err := (CreateUserRequest{Role: constants.RoleAlumni, AlumniNIM: ptr("A001")}).Context()
		require.NoError(t, err)
		require.NotNil(t, rc.AlumniNIM)
		assert.Equal(t, "A001", *rc.AlumniNIM)
	})

	t.Run("role tidak dikenal", func(t *testing.T) {
		_, err := (CreateUserRequest{Role: "root"}).Context()
		assert.Error(t, err)
	})
}

func TestUpdateUserContext(t *testing.T) {
	subjectID := uuid.New()
	guru := userModel.UserModel{
		UserRole:      constants.RoleGuru,
		UserSubjectID: &subjectID,
	}

	t.Run("tanpa perubahan role mewarisi scope lama", func(t *testing.T) {
		rc, err := (UpdateUserRequest{}).Context(guru)
		require.NoError(t, err)
		assert.Equal(t, constants.RoleGuru, rc.Role)
		require.NotNil(t, rc.SubjectID)
		assert.Equal(t, subjectID, *rc.SubjectID)
	})

	t.Run("ganti subject tanpa ganti role", func(t *testing.T) {
		newSubject := uuid.New()
		rc, err := (UpdateUserRequest{SubjectID: &newSubject}).Context(guru)
		require.NoError(t, err)
		assert.Equal(t, newSubject, *rc.SubjectID)
	})

	t.Run("ganti role wajib bawa scope baru", func(t *testing.T) {
		role := constants.RoleWaliKelas
		_, err := (UpdateUserRequest{Role: &role}).Context(guru)
		assert.Error(t, err)

		rc, err := (UpdateUserRequest{Role: &role, Class: ptr("X-1")}).Context(guru)
		require.NoError(t, err)
		assert.Equal(t, constants.RoleWaliKelas, rc.Role)
		assert.Nil(t, rc.SubjectID) // scope guru lama tidak ikut terbawa
	})

	t.Run("ganti role ke admin buang semua scope", func(t *testing.T) {
		role := constants.RoleAdmin
		rc, err := (UpdateUserRequest{Role: &role}).Context(guru)
		require.NoError(t, err)
		assert.Nil(t, rc.SubjectID)
		assert.Nil(t, rc.Class)
		assert.Nil(t, rc.AlumniNIM)
	})
}
