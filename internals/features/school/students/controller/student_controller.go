// internals/features/school/students/controller/student_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentDTO "sekolahku_backend/internals/features/school/students/dto"
	studentModel "sekolahku_backend/internals/features/school/students/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

var validate = validator.New()

type StudentController struct {
	DB *gorm.DB
}

// GET /api/students (admin), /api/wali/students (wali, dibatasi kelasnya)
func (h *StudentController) ListStudents(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	base := h.DB.Model(&studentModel.StudentModel{}).Scopes(helperAuth.ScopeStudents(actor))

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		base = base.Where("LOWER(student_name) LIKE ? OR student_nis LIKE ? OR student_nisn LIKE ?", like, "%"+q+"%", "%"+q+"%")
	}
	// filter kelas diabaikan untuk wali (sudah terkunci lewat scope)
	if s := strings.ToUpper(strings.TrimSpace(c.Query("class"))); s != "" && !actor.IsWaliKelas() {
		base = base.Where("student_rombel_absen LIKE ?", s+"-%")
	}
	if s := strings.ToUpper(strings.TrimSpace(c.Query("gender"))); s == "L" || s == "P" {
		base = base.Where("student_gender = ?", s)
	}

	paging := helper.ResolvePaging(c, 25, 200)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung siswa")
	}

	var items []studentModel.StudentModel
	if err := base.
		Order("student_rombel_absen ASC, student_name ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar siswa berhasil diambil", studentDTO.FromStudentModels(items), &pagination)
}

// GET /api/students/:nis
func (h *StudentController) GetStudent(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	nis := strings.TrimSpace(c.Params("nis"))
	if nis == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "NIS tidak valid")
	}

	var student studentModel.StudentModel
	if err := h.DB.First(&student, "student_nis = ?", nis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca siswa")
	}

	if err := helperAuth.EnsureStudentAccess(actor, student.Class(), helperAuth.OpRead); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail siswa berhasil diambil", studentDTO.FromStudentModel(student))
}

// POST /api/students (admin)
func (h *StudentController) CreateStudent(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := helperAuth.EnsureStudentAccess(actor, "", helperAuth.OpCreate); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req studentDTO.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrsToMap(err))
	}

	student, err := req.ToModel()
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	now := time.Now()
	ip := c.IP()
	student.StudentLastEditedBy = &actor.UserID
	student.StudentLastEditedIP = &ip
	student.StudentLastEditedAt = &now

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := ensureStudentUnique(tx, student.StudentNIS, student.StudentNISN, ""); err != nil {
			return err
		}
		return tx.Create(student).Error
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Siswa berhasil ditambahkan", studentDTO.FromStudentModel(*student))
}

// PUT /api/students/:nis (admin, atau wali untuk siswa kelasnya)
func (h *StudentController) UpdateStudent(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	nis := strings.TrimSpace(c.Params("nis"))
	if nis == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "NIS tidak valid")
	}

	var req studentDTO.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrsToMap(err))
	}

	var student studentModel.StudentModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&student, "student_nis = ?", nis).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
			}
			return err
		}

		// policy dicek terhadap kelas LAMA; wali tidak boleh memindahkan
		// siswa keluar dari kelasnya
		if err := helperAuth.EnsureStudentAccess(actor, student.Class(), helperAuth.OpUpdate); err != nil {
			return err
		}

		if err := req.Apply(&student); err != nil {
			return err
		}
		if err := helperAuth.EnsureStudentAccess(actor, student.Class(), helperAuth.OpUpdate); err != nil {
			return err
		}

		if req.NISN != nil {
			if err := ensureStudentUnique(tx, "", student.StudentNISN, student.StudentNIS); err != nil {
				return err
			}
		}

		now := time.Now()
		ip := c.IP()
		student.StudentLastEditedBy = &actor.UserID
		student.StudentLastEditedIP = &ip
		student.StudentLastEditedAt = &now

		return tx.Save(&student).Error
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "Siswa berhasil diperbarui", studentDTO.FromStudentModel(student))
}

// DELETE /api/students/:nis (admin)
// Nilai & ringkasan siswa ikut terhapus (FK CASCADE).
func (h *StudentController) DeleteStudent(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	nis := strings.TrimSpace(c.Params("nis"))
	if nis == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "NIS tidak valid")
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var student studentModel.StudentModel
		if err := tx.First(&student, "student_nis = ?", nis).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
			}
			return err
		}
		if err := helperAuth.EnsureStudentAccess(actor, student.Class(), helperAuth.OpDelete); err != nil {
			return err
		}
		return tx.Delete(&student).Error
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonDeleted(c, "Siswa berhasil dihapus", fiber.Map{"student_nis": nis})
}

/* =========================================================
   PUBLIC (tanpa auth, field dikurangi)
   ========================================================= */

// GET /api/public/students
func (h *StudentController) PublicListStudents(c *fiber.Ctx) error {
	base := h.DB.Model(&studentModel.StudentModel{})
	if s := strings.ToUpper(strings.TrimSpace(c.Query("class"))); s != "" {
		base = base.Where("student_rombel_absen LIKE ?", s+"-%")
	}

	paging := helper.ResolvePaging(c, 25, 100)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung siswa")
	}

	var items []studentModel.StudentModel
	if err := base.
		Order("student_rombel_absen ASC, student_name ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar siswa berhasil diambil", studentDTO.ToPublicStudents(items), &pagination)
}

// GET /api/public/students/search?q=
func (h *StudentController) PublicSearchStudents(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Parameter q wajib diisi")
	}

	var items []studentModel.StudentModel
	if err := h.DB.
		Where("LOWER(student_name) LIKE ? OR student_nis LIKE ? OR student_nisn LIKE ?",
			"%"+strings.ToLower(q)+"%", "%"+q+"%", "%"+q+"%").
		Order("student_name ASC").
		Limit(50).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mencari siswa")
	}

	return helper.JsonOK(c, "Hasil pencarian siswa", studentDTO.ToPublicStudents(items))
}

// GET /api/public/students/:nis
func (h *StudentController) PublicGetStudent(c *fiber.Ctx) error {
	nis := strings.TrimSpace(c.Params("nis"))
	if nis == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "NIS tidak valid")
	}

	var student studentModel.StudentModel
	if err := h.DB.First(&student, "student_nis = ?", nis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca siswa")
	}
	return helper.JsonOK(c, "Detail siswa berhasil diambil", studentDTO.ToPublicStudent(student))
}

// ensureStudentUnique cek duplikat NIS / NISN.
func ensureStudentUnique(tx *gorm.DB, nis, nisn, excludeNIS string) error {
	var count int64
	if nis != "" {
		if err := tx.Model(&studentModel.StudentModel{}).
			Where("student_nis = ?", nis).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "NIS sudah terdaftar")
		}
	}
	if nisn != "" {
		q := tx.Model(&studentModel.StudentModel{}).Where("student_nisn = ?", nisn)
		if excludeNIS != "" {
			q = q.Where("student_nis <> ?", excludeNIS)
		}
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "NISN sudah terdaftar")
		}
	}
	return nil
}
