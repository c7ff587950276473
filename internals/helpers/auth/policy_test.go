package auth

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/constants"
)

func ptr[T any](v T) *T { return &v }

func adminActor() Actor {
	return Actor{UserID: uuid.New(), Role: constants.RoleAdmin}
}

func guruActor(subjectID uuid.UUID) Actor {
	return Actor{UserID: uuid.New(), Role: constants.RoleGuru, SubjectID: &subjectID}
}

func waliActor(class string) Actor {
	return Actor{UserID: uuid.New(), Role: constants.RoleWaliKelas, Class: &class}
}

func alumniActor(nim string) Actor {
	return Actor{UserID: uuid.New(), Role: constants.RoleAlumni, AlumniNIM: ptr(nim)}
}

func assertForbidden(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "harus *fiber.Error")
	assert.Equal(t, fiber.StatusForbidden, fe.Code)
}

func TestEnsureGradeAccess(t *testing.T) {
	mtk := uuid.New()
	fisika := uuid.New()

	t.Run("admin bebas", func(t *testing.T) {
		assert.NoError(t, EnsureGradeAccess(adminActor(), mtk, "X-1"))
	})

	t.Run("guru mapel sendiri", func(t *testing.T) {
		assert.NoError(t, EnsureGradeAccess(guruActor(mtk), mtk, "XII-3"))
	})

	t.Run("guru mapel lain ditolak", func(t *testing.T) {
		assertForbidden(t, EnsureGradeAccess(guruActor(mtk), fisika, "X-1"))
	})

	t.Run("wali kelas sendiri", func(t *testing.T) {
		assert.NoError(t, EnsureGradeAccess(waliActor("X-1"), mtk, "X-1"))
	})

	t.Run("wali kelas lain ditolak", func(t *testing.T) {
		assertForbidden(t, EnsureGradeAccess(waliActor("X-1"), mtk, "X-2"))
	})

	t.Run("alumni selalu ditolak", func(t *testing.T) {
		assertForbidden(t, EnsureGradeAccess(alumniActor("A001"), mtk, "X-1"))
	})
}

func TestEnsureStudentAccess(t *testing.T) {
	t.Run("admin bebas", func(t *testing.T) {
		assert.NoError(t, EnsureStudentAccess(adminActor(), "X-1", OpDelete))
	})

	t.Run("wali read kelas sendiri", func(t *testing.T) {
		assert.NoError(t, EnsureStudentAccess(waliActor("X-1"), "X-1", OpRead))
	})

	t.Run("wali update kelas sendiri", func(t *testing.T) {
		assert.NoError(t, EnsureStudentAccess(waliActor("XI-2"), "XI-2", OpUpdate))
	})

	t.Run("wali kelas lain ditolak", func(t *testing.T) {
		assertForbidden(t, EnsureStudentAccess(waliActor("X-1"), "X-2", OpRead))
	})

	t.Run("wali tidak boleh create/delete", func(t *testing.T) {
		assertForbidden(t, EnsureStudentAccess(waliActor("X-1"), "X-1", OpCreate))
		assertForbidden(t, EnsureStudentAccess(waliActor("X-1"), "X-1", OpDelete))
	})

	t.Run("guru tidak ada akses mutasi siswa", func(t *testing.T) {
		assertForbidden(t, EnsureStudentAccess(guruActor(uuid.New()), "X-1", OpRead))
	})
}

func TestEnsureAlumniAccess(t *testing.T) {
	t.Run("admin bebas", func(t *testing.T) {
		assert.NoError(t, EnsureAlumniAccess(adminActor(), "A001", OpDelete))
	})

	t.Run("alumni baca & update miliknya", func(t *testing.T) {
		assert.NoError(t, EnsureAlumniAccess(alumniActor("A001"), "A001", OpRead))
		assert.NoError(t, EnsureAlumniAccess(alumniActor("A001"), "A001", OpUpdate))
	})

	t.Run("alumni record lain ditolak", func(t *testing.T) {
		assertForbidden(t, EnsureAlumniAccess(alumniActor("A001"), "A002", OpRead))
	})

	t.Run("alumni tidak boleh create/delete", func(t *testing.T) {
		assertForbidden(t, EnsureAlumniAccess(alumniActor("A001"), "A001", OpDelete))
		assertForbidden(t, EnsureAlumniAccess(alumniActor("A001"), "", OpCreate))
	})

	t.Run("wali ditolak", func(t *testing.T) {
		assertForbidden(t, EnsureAlumniAccess(waliActor("X-1"), "A001", OpRead))
	})
}

func TestEnsureUserDelete(t *testing.T) {
	target := uuid.New()

	t.Run("admin hapus user lain", func(t *testing.T) {
		assert.NoError(t, EnsureUserDelete(adminActor(), target))
	})

	t.Run("hapus akun sendiri ditolak walau admin", func(t *testing.T) {
		a := adminActor()
		assertForbidden(t, EnsureUserDelete(a, a.UserID))
	})

	t.Run("non-admin ditolak", func(t *testing.T) {
		assertForbidden(t, EnsureUserDelete(guruActor(uuid.New()), target))
	})
}
