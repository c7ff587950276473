// internals/features/school/grades/controller/grade_summary_controller.go
package controller

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gradeDTO "sekolahku_backend/internals/features/school/grades/dto"
	gradeModel "sekolahku_backend/internals/features/school/grades/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// Ringkasan nilai read-only: barisnya hanya ditulis oleh RecomputeSummary.
type GradeSummaryController struct {
	DB *gorm.DB
}

// GET /api/grade-summaries (admin), /api/wali/grade-summaries (wali)
func (h *GradeSummaryController) ListSummaries(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	base := h.DB.Model(&gradeModel.GradeSummaryModel{}).Scopes(helperAuth.ScopeGradeSummaries(actor))

	if s := strings.TrimSpace(c.Query("student_id")); s != "" {
		base = base.Where("grade_summary_student_id = ?", s)
	}
	if s := strings.TrimSpace(c.Query("semester")); s != "" {
		base = base.Where("grade_summary_semester = ?", s)
	}
	if s := strings.TrimSpace(c.Query("class")); s != "" && !actor.IsWaliKelas() {
		base = base.Where(
			"grade_summary_student_id IN (SELECT student_nis FROM students WHERE student_rombel_absen LIKE ?)",
			s+"-%",
		)
	}
	// status=passing|failing dihitung dari average_score (derived, tidak disimpan)
	if s := strings.ToLower(strings.TrimSpace(c.Query("status"))); s != "" {
		switch s {
		case "passing":
			base = base.Where("grade_summary_average_score >= ?", gradeModel.PassingScore)
		case "failing":
			base = base.Where("grade_summary_average_score < ?", gradeModel.PassingScore)
		}
	}

	paging := helper.ResolvePaging(c, 25, 200)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung ringkasan nilai")
	}

	var items []gradeModel.GradeSummaryModel
	if err := base.
		Preload("Student").
		Order("grade_summary_student_id, grade_summary_semester").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil ringkasan nilai")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Ringkasan nilai berhasil diambil", gradeDTO.FromGradeSummaryModels(items), &pagination)
}

// GET /api/grade-summaries/:student/:semester
func (h *GradeSummaryController) GetSummary(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	studentNIS := strings.TrimSpace(c.Params("student"))
	// semester mengandung slash ("Ganjil 2024/2025") → dikirim URL-encoded
	semester, err := decodeParam(c.Params("semester"))
	if err != nil || studentNIS == "" || semester == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Parameter tidak valid")
	}

	var summary gradeModel.GradeSummaryModel
	if err := h.DB.
		Preload("Student").
		Scopes(helperAuth.ScopeGradeSummaries(actor)).
		Where("grade_summary_student_id = ? AND grade_summary_semester = ?", studentNIS, semester).
		First(&summary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Ringkasan nilai tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca ringkasan nilai")
	}

	return helper.JsonOK(c, "Ringkasan nilai berhasil diambil", gradeDTO.FromGradeSummaryModel(summary))
}

func decodeParam(raw string) (string, error) {
	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(v), nil
}
