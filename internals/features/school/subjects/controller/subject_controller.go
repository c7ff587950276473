// internals/features/school/subjects/controller/subject_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	gradeModel "sekolahku_backend/internals/features/school/grades/model"
	gradeService "sekolahku_backend/internals/features/school/grades/service"
	subjectDTO "sekolahku_backend/internals/features/school/subjects/dto"
	subjectModel "sekolahku_backend/internals/features/school/subjects/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

var validate = validator.New()

type SubjectController struct {
	DB *gorm.DB
}

// GET /api/subjects
// Semua role terautentikasi boleh membaca daftar mapel.
func (h *SubjectController) ListSubjects(c *fiber.Ctx) error {
	if _, err := helperAuth.ActorFromLocals(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	base := h.DB.Model(&subjectModel.SubjectModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		base = base.Where("LOWER(subject_name) LIKE ? OR LOWER(subject_code) LIKE ?", like, like)
	}

	paging := helper.ResolvePaging(c, 25, 100)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung mata pelajaran")
	}

	var items []subjectModel.SubjectModel
	if err := base.
		Order("subject_name ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil mata pelajaran")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar mata pelajaran berhasil diambil", subjectDTO.FromSubjectModels(items), &pagination)
}

// GET /api/subjects/:id
func (h *SubjectController) GetSubject(c *fiber.Ctx) error {
	if _, err := helperAuth.ActorFromLocals(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var subject subjectModel.SubjectModel
	if err := h.DB.First(&subject, "subject_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Mata pelajaran tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca mata pelajaran")
	}
	return helper.JsonOK(c, "Detail mata pelajaran berhasil diambil", subjectDTO.FromSubjectModel(subject))
}

// POST /api/subjects (admin)
func (h *SubjectController) CreateSubject(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req subjectDTO.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrsToMap(err))
	}

	subject := subjectModel.SubjectModel{
		SubjectName:      req.Name,
		SubjectCode:      req.Code,
		SubjectCreatedBy: &actor.UserID,
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := ensureSubjectUnique(tx, req.Name, req.Code, nil); err != nil {
			return err
		}
		return tx.Create(&subject).Error
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Mata pelajaran berhasil ditambahkan", subjectDTO.FromSubjectModel(subject))
}

// PUT /api/subjects/:id (admin)
func (h *SubjectController) UpdateSubject(c *fiber.Ctx) error {
	if _, err := helperAuth.ActorFromLocals(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req subjectDTO.UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrsToMap(err))
	}

	var subject subjectModel.SubjectModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&subject, "subject_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Mata pelajaran tidak ditemukan")
			}
			return err
		}

		if req.Name != nil {
			subject.SubjectName = *req.Name
		}
		if req.Code != nil {
			if *req.Code == "" {
				subject.SubjectCode = nil
			} else {
				subject.SubjectCode = req.Code
			}
		}

		if err := ensureSubjectUnique(tx, subject.SubjectName, subject.SubjectCode, &subject.SubjectID); err != nil {
			return err
		}
		return tx.Save(&subject).Error
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "Mata pelajaran berhasil diperbarui", subjectDTO.FromSubjectModel(subject))
}

// DELETE /api/subjects/:id (admin)
// Nilai mapel ini ikut terhapus (FK CASCADE), jadi ringkasan semua pasangan
// (siswa, semester) yang terdampak WAJIB dihitung ulang dalam transaksi yang sama.
func (h *SubjectController) DeleteSubject(c *fiber.Ctx) error {
	if _, err := helperAuth.ActorFromLocals(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var subject subjectModel.SubjectModel
		if err := tx.First(&subject, "subject_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Mata pelajaran tidak ditemukan")
			}
			return err
		}

		// Kumpulkan pasangan terdampak SEBELUM baris nilai hilang
		type pair struct {
			StudentID string `gorm:"column:grade_student_id"`
			Semester  string `gorm:"column:grade_semester"`
		}
		var affected []pair
		if err := tx.Model(&gradeModel.GradeModel{}).
			Select("DISTINCT grade_student_id, grade_semester").
			Where("grade_subject_id = ?", id).
			Find(&affected).Error; err != nil {
			return err
		}

		if err := tx.Where("grade_subject_id = ?", id).
			Delete(&gradeModel.GradeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&subject).Error; err != nil {
			return err
		}

		for _, p := range affected {
			if err := gradeService.RecomputeSummary(tx, p.StudentID, p.Semester); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonDeleted(c, "Mata pelajaran berhasil dihapus", fiber.Map{"subject_id": id})
}

// ensureSubjectUnique cek duplikat nama (case-insensitive) & kode.
func ensureSubjectUnique(tx *gorm.DB, name string, code *string, excludeID *uuid.UUID) error {
	q := tx.Model(&subjectModel.SubjectModel{}).Where("LOWER(subject_name) = ?", strings.ToLower(name))
	if excludeID != nil {
		q = q.Where("subject_id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusConflict, "Nama mata pelajaran sudah digunakan")
	}

	if code != nil && *code != "" {
		q := tx.Model(&subjectModel.SubjectModel{}).Where("subject_code = ?", *code)
		if excludeID != nil {
			q = q.Where("subject_id <> ?", *excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Kode mata pelajaran sudah digunakan")
		}
	}
	return nil
}
