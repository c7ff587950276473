// internals/features/school/grades/controller/grade_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	gradeDTO "sekolahku_backend/internals/features/school/grades/dto"
	gradeModel "sekolahku_backend/internals/features/school/grades/model"
	gradeService "sekolahku_backend/internals/features/school/grades/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

var validate = validator.New()

type GradeController struct {
	DB *gorm.DB
}

// GET /api/grades (admin), /api/my-grades (guru), /api/wali/grades (wali)
// Scope per role diterapkan lewat Actor, bukan per endpoint.
func (h *GradeController) ListGrades(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	filters := gradeService.GradeFilters{
		StudentID: strings.TrimSpace(c.Query("student_id")),
		Semester:  strings.TrimSpace(c.Query("semester")),
		Class:     strings.TrimSpace(c.Query("class")),
	}
	if s := strings.TrimSpace(c.Query("subject_id")); s != "" {
		if sid, err := uuid.Parse(s); err == nil {
			filters.SubjectID = &sid
		}
	}

	paging := helper.ResolvePaging(c, 25, 200)

	items, total, err := gradeService.ListGrades(h.DB, actor, filters, paging)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar nilai berhasil diambil", gradeDTO.FromGradeModels(items), &pagination)
}

// GET /api/grades/:id
func (h *GradeController) GetGrade(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	grade, err := gradeService.GetGrade(h.DB, actor, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail nilai berhasil diambil", gradeDTO.FromGradeModel(*grade))
}

// POST /api/grades (admin), /api/my-grades (guru), /api/wali/grades (wali)
func (h *GradeController) CreateGrade(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req gradeDTO.CreateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrsToMap(err))
	}

	var created *gradeModel.GradeModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		created, txErr = gradeService.CreateGrade(tx, actor, req, c.IP())
		return txErr
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	// reload relasi untuk response
	grade, err := gradeService.GetGrade(h.DB, actor, created.GradeID)
	if err != nil {
		return helper.JsonCreated(c, "Nilai berhasil ditambahkan", gradeDTO.FromGradeModel(*created))
	}
	return helper.JsonCreated(c, "Nilai berhasil ditambahkan", gradeDTO.FromGradeModel(*grade))
}

// PUT /api/grades/:id
func (h *GradeController) UpdateGrade(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req gradeDTO.UpdateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrsToMap(err))
	}

	var updated *gradeModel.GradeModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		updated, txErr = gradeService.UpdateGrade(tx, actor, id, req, c.IP())
		return txErr
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	grade, err := gradeService.GetGrade(h.DB, actor, updated.GradeID)
	if err != nil {
		return helper.JsonUpdated(c, "Nilai berhasil diperbarui", gradeDTO.FromGradeModel(*updated))
	}
	return helper.JsonUpdated(c, "Nilai berhasil diperbarui", gradeDTO.FromGradeModel(*grade))
}

// DELETE /api/grades/:id
func (h *GradeController) DeleteGrade(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		return gradeService.DeleteGrade(tx, actor, id)
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonDeleted(c, "Nilai berhasil dihapus", fiber.Map{"grade_id": id})
}
