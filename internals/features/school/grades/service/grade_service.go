// internals/features/school/grades/service/grade_service.go
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	gradeDTO "sekolahku_backend/internals/features/school/grades/dto"
	gradeModel "sekolahku_backend/internals/features/school/grades/model"
	studentModel "sekolahku_backend/internals/features/school/students/model"
	subjectModel "sekolahku_backend/internals/features/school/subjects/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* =========================================================
   Lookup helpers
   ========================================================= */

func findStudentClass(tx *gorm.DB, nis string) (string, error) {
	var student studentModel.StudentModel
	if err := tx.Where("student_nis = ?", nis).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return "", fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca data siswa")
	}
	return student.Class(), nil
}

func ensureSubjectExists(tx *gorm.DB, subjectID uuid.UUID) error {
	var cnt int64
	if err := tx.Model(&subjectModel.SubjectModel{}).
		Where("subject_id = ?", subjectID).
		Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca data mapel")
	}
	if cnt == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Mata pelajaran tidak ditemukan")
	}
	return nil
}

func ensureGradeUnique(tx *gorm.DB, nis string, subjectID uuid.UUID, semester string, excludeID *uuid.UUID) error {
	q := tx.Model(&gradeModel.GradeModel{}).
		Where("grade_student_id = ? AND grade_subject_id = ? AND grade_semester = ?", nis, subjectID, semester)
	if excludeID != nil {
		q = q.Where("grade_id <> ?", *excludeID)
	}
	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek duplikasi nilai")
	}
	if cnt > 0 {
		return fiber.NewError(fiber.StatusConflict, "Nilai untuk siswa, mapel, dan semester ini sudah ada")
	}
	return nil
}

func isDuplicateErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "grades_unique_constraint") ||
		strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique")
}

/* =========================================================
   CREATE
   ========================================================= */

// CreateGrade menyimpan nilai baru + recompute summary dalam transaksi tx.
// Urutan: resolve scope → cek policy (fail fast, tanpa side effect) →
// tulis → recompute.
func CreateGrade(tx *gorm.DB, actor helperAuth.Actor, req gradeDTO.CreateGradeRequest, ip string) (*gradeModel.GradeModel, error) {
	// Guru dipaksa input untuk mapel yang diampu, apa pun isi request body
	var subjectID uuid.UUID
	if actor.IsGuru() {
		if actor.SubjectID == nil {
			return nil, fiber.NewError(fiber.StatusForbidden, "Akun guru belum terhubung ke mata pelajaran")
		}
		subjectID = *actor.SubjectID
	} else {
		if req.SubjectID == nil {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "grade_subject_id wajib diisi")
		}
		subjectID = *req.SubjectID
	}

	studentClass, err := findStudentClass(tx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if err := ensureSubjectExists(tx, subjectID); err != nil {
		return nil, err
	}

	if err := helperAuth.EnsureGradeAccess(actor, subjectID, studentClass); err != nil {
		return nil, err
	}

	if err := ensureGradeUnique(tx, req.StudentID, subjectID, req.Semester, nil); err != nil {
		return nil, err
	}

	now := time.Now()
	grade := gradeModel.GradeModel{
		GradeStudentID:    req.StudentID,
		GradeSubjectID:    subjectID,
		GradeSemester:     req.Semester,
		GradeScore:        *req.Score,
		GradeLastEditedBy: &actor.UserID,
		GradeLastEditedIP: &ip,
		GradeLastEditedAt: &now,
	}
	if err := tx.Create(&grade).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "Nilai untuk siswa, mapel, dan semester ini sudah ada")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan nilai")
	}

	if err := RecomputeSummary(tx, grade.GradeStudentID, grade.GradeSemester); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung ulang ringkasan nilai")
	}

	return &grade, nil
}

/* =========================================================
   UPDATE
   ========================================================= */

// UpdateGrade mengubah nilai + recompute summary. Kalau student/semester
// berubah, summary key LAMA dan BARU dua-duanya dihitung ulang.
func UpdateGrade(tx *gorm.DB, actor helperAuth.Actor, gradeID uuid.UUID, req gradeDTO.UpdateGradeRequest, ip string) (*gradeModel.GradeModel, error) {
	var grade gradeModel.GradeModel
	if err := tx.Where("grade_id = ?", gradeID).First(&grade).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Nilai tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca nilai")
	}

	// Kunci summary SEBELUM ada perubahan field
	oldStudentID := grade.GradeStudentID
	oldSemester := grade.GradeSemester

	// Policy terhadap baris yang ada
	oldClass, err := findStudentClass(tx, grade.GradeStudentID)
	if err != nil {
		return nil, err
	}
	if err := helperAuth.EnsureGradeAccess(actor, grade.GradeSubjectID, oldClass); err != nil {
		return nil, err
	}

	// Terapkan perubahan
	if req.StudentID != nil && *req.StudentID != grade.GradeStudentID {
		grade.GradeStudentID = *req.StudentID
	}
	if req.SubjectID != nil && *req.SubjectID != grade.GradeSubjectID {
		if err := ensureSubjectExists(tx, *req.SubjectID); err != nil {
			return nil, err
		}
		grade.GradeSubjectID = *req.SubjectID
	}
	if req.Semester != nil {
		grade.GradeSemester = *req.Semester
	}
	if req.Score != nil {
		grade.GradeScore = *req.Score
	}

	// Policy terhadap nilai TARGET (guru tidak bisa memindahkan nilai ke
	// mapel lain, wali tidak bisa memindahkan ke siswa di luar kelasnya)
	newClass := oldClass
	if grade.GradeStudentID != oldStudentID {
		if newClass, err = findStudentClass(tx, grade.GradeStudentID); err != nil {
			return nil, err
		}
	}
	if err := helperAuth.EnsureGradeAccess(actor, grade.GradeSubjectID, newClass); err != nil {
		return nil, err
	}

	if err := ensureGradeUnique(tx, grade.GradeStudentID, grade.GradeSubjectID, grade.GradeSemester, &grade.GradeID); err != nil {
		return nil, err
	}

	now := time.Now()
	grade.GradeLastEditedBy = &actor.UserID
	grade.GradeLastEditedIP = &ip
	grade.GradeLastEditedAt = &now

	if err := tx.Save(&grade).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "Nilai untuk siswa, mapel, dan semester ini sudah ada")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui nilai")
	}

	// Recompute key lama, lalu key baru bila berpindah
	if err := RecomputeSummary(tx, oldStudentID, oldSemester); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung ulang ringkasan nilai")
	}
	if grade.GradeStudentID != oldStudentID || grade.GradeSemester != oldSemester {
		if err := RecomputeSummary(tx, grade.GradeStudentID, grade.GradeSemester); err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung ulang ringkasan nilai")
		}
	}

	return &grade, nil
}

/* =========================================================
   DELETE
   ========================================================= */

func DeleteGrade(tx *gorm.DB, actor helperAuth.Actor, gradeID uuid.UUID) error {
	var grade gradeModel.GradeModel
	if err := tx.Where("grade_id = ?", gradeID).First(&grade).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Nilai tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca nilai")
	}

	studentClass, err := findStudentClass(tx, grade.GradeStudentID)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureGradeAccess(actor, grade.GradeSubjectID, studentClass); err != nil {
		return err
	}

	if err := tx.Delete(&grade).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus nilai")
	}

	if err := RecomputeSummary(tx, grade.GradeStudentID, grade.GradeSemester); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung ulang ringkasan nilai")
	}

	return nil
}

/* =========================================================
   LIST / GET
   ========================================================= */

type GradeFilters struct {
	StudentID string
	SubjectID *uuid.UUID
	Semester  string
	Class     string
}

// ListGrades mengembalikan nilai sesuai scope actor + filter + paging,
// terurut dari yang terakhir diubah.
func ListGrades(db *gorm.DB, actor helperAuth.Actor, f GradeFilters, p helper.Paging) ([]gradeModel.GradeModel, int64, error) {
	base := db.Model(&gradeModel.GradeModel{}).Scopes(helperAuth.ScopeGrades(actor))

	if f.StudentID != "" {
		base = base.Where("grade_student_id = ?", f.StudentID)
	}
	if f.SubjectID != nil && !actor.IsGuru() {
		base = base.Where("grade_subject_id = ?", *f.SubjectID)
	}
	if f.Semester != "" {
		base = base.Where("grade_semester = ?", f.Semester)
	}
	if f.Class != "" && !actor.IsWaliKelas() {
		base = base.Where(
			"grade_student_id IN (SELECT student_nis FROM students WHERE student_rombel_absen LIKE ?)",
			f.Class+"-%",
		)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung data nilai")
	}

	var items []gradeModel.GradeModel
	if err := base.
		Preload("Student").
		Preload("Subject").
		Order("grade_updated_at DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&items).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data nilai")
	}

	return items, total, nil
}

// GetGrade mengambil satu nilai; non-admin tetap dicek policy-nya supaya
// detail tidak bocor ke luar scope.
func GetGrade(db *gorm.DB, actor helperAuth.Actor, gradeID uuid.UUID) (*gradeModel.GradeModel, error) {
	var grade gradeModel.GradeModel
	if err := db.
		Preload("Student").
		Preload("Subject").
		Where("grade_id = ?", gradeID).
		First(&grade).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Nilai tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca nilai")
	}

	if !actor.IsAdmin() {
		studentClass := ""
		if grade.Student != nil {
			studentClass = grade.Student.Class()
		}
		if err := helperAuth.EnsureGradeAccess(actor, grade.GradeSubjectID, studentClass); err != nil {
			return nil, err
		}
	}

	return &grade, nil
}
