// internals/helpers/auth/policy.go
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Op adalah jenis operasi yang diminta actor terhadap sebuah resource.
type Op string

const (
	OpRead   Op = "read"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

func forbidden(msg string) error {
	if msg == "" {
		msg = "Anda tidak memiliki akses ke resource ini"
	}
	return fiber.NewError(fiber.StatusForbidden, msg)
}

/* =========================================================
   STUDENT
   - admin: bebas
   - wali_kelas: read/update siswa di kelasnya, tanpa delete
   - guru/alumni: tidak ada akses mutasi langsung
   ========================================================= */

func EnsureStudentAccess(a Actor, studentClass string, op Op) error {
	if a.IsAdmin() {
		return nil
	}
	if a.IsWaliKelas() {
		if op == OpDelete || op == OpCreate {
			return forbidden("Wali kelas tidak boleh menambah/menghapus data siswa")
		}
		if a.Class != nil && *a.Class == studentClass {
			return nil
		}
		return forbidden("Siswa bukan anggota kelas Anda")
	}
	return forbidden("")
}

/* =========================================================
   GRADE
   - admin: bebas
   - guru: hanya mapel yang diampu (semua baris mapel itu)
   - wali_kelas: hanya siswa di kelasnya, mapel apa pun
   - alumni: tidak ada akses
   ========================================================= */

func EnsureGradeAccess(a Actor, subjectID uuid.UUID, studentClass string) error {
	if a.IsAdmin() {
		return nil
	}
	if a.IsGuru() {
		if a.SubjectID != nil && *a.SubjectID == subjectID {
			return nil
		}
		return forbidden("Nilai di luar mata pelajaran yang Anda ampu")
	}
	if a.IsWaliKelas() {
		if a.Class != nil && *a.Class == studentClass {
			return nil
		}
		return forbidden("Siswa bukan anggota kelas Anda")
	}
	return forbidden("")
}

/* =========================================================
   ALUMNI
   - admin: bebas
   - alumni: read/update record miliknya sendiri; delete tetap admin
   ========================================================= */

func EnsureAlumniAccess(a Actor, nim string, op Op) error {
	if a.IsAdmin() {
		return nil
	}
	if a.IsAlumni() {
		if op == OpDelete || op == OpCreate {
			return forbidden("Alumni tidak boleh menambah/menghapus data alumni")
		}
		if a.AlumniNIM != nil && *a.AlumniNIM == nim {
			return nil
		}
		return forbidden("Anda hanya boleh mengakses data alumni milik sendiri")
	}
	return forbidden("")
}

/* =========================================================
   USER
   - semua operasi admin-only (digate route), PLUS:
   - siapa pun dilarang menghapus akun miliknya sendiri
   ========================================================= */

func EnsureUserDelete(a Actor, targetUserID uuid.UUID) error {
	if a.UserID == targetUserID {
		return forbidden("Tidak boleh menghapus akun sendiri")
	}
	if !a.IsAdmin() {
		return forbidden("")
	}
	return nil
}

/* =========================================================
   QUERY-NARROWING SCOPES (list operations)
   ========================================================= */

// ScopeStudents membatasi list siswa sesuai scope actor.
func ScopeStudents(a Actor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if a.IsWaliKelas() && a.Class != nil {
			return db.Where("student_rombel_absen LIKE ?", *a.Class+"-%")
		}
		return db
	}
}

// ScopeGrades membatasi list nilai sesuai scope actor.
func ScopeGrades(a Actor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if a.IsGuru() && a.SubjectID != nil {
			return db.Where("grade_subject_id = ?", *a.SubjectID)
		}
		if a.IsWaliKelas() && a.Class != nil {
			return db.Where(
				"grade_student_id IN (SELECT student_nis FROM students WHERE student_rombel_absen LIKE ?)",
				*a.Class+"-%",
			)
		}
		return db
	}
}

// ScopeGradeSummaries membatasi list ringkasan nilai sesuai scope actor.
func ScopeGradeSummaries(a Actor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if a.IsWaliKelas() && a.Class != nil {
			return db.Where(
				"grade_summary_student_id IN (SELECT student_nis FROM students WHERE student_rombel_absen LIKE ?)",
				*a.Class+"-%",
			)
		}
		return db
	}
}
