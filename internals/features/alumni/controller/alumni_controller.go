// internals/features/alumni/controller/alumni_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	alumniDTO "sekolahku_backend/internals/features/alumni/dto"
	alumniModel "sekolahku_backend/internals/features/alumni/model"
	alumniService "sekolahku_backend/internals/features/alumni/service"
	studentModel "sekolahku_backend/internals/features/school/students/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

var validate = validator.New()

type AlumniController struct {
	DB *gorm.DB
}

// GET /api/alumni (admin)
func (h *AlumniController) ListAlumni(c *fiber.Ctx) error {
	if _, err := helperAuth.ActorFromLocals(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	base := h.DB.Model(&alumniModel.AlumniModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		base = base.Where("LOWER(alumni_name) LIKE ? OR alumni_nim LIKE ?", like, "%"+q+"%")
	}
	if y := c.QueryInt("graduation_year"); y > 0 {
		base = base.Where("alumni_graduation_year = ?", y)
	}

	paging := helper.ResolvePaging(c, 25, 200)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung alumni")
	}

	var items []alumniModel.AlumniModel
	if err := base.
		Order("alumni_graduation_year DESC, alumni_name ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil alumni")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar alumni berhasil diambil", alumniDTO.FromAlumniModels(items), &pagination)
}

// GET /api/alumni/:nim (admin)
func (h *AlumniController) GetAlumni(c *fiber.Ctx) error {
	if _, err := helperAuth.ActorFromLocals(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	nim := strings.TrimSpace(c.Params("nim"))
	if nim == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "NIM tidak valid")
	}

	var alumni alumniModel.AlumniModel
	if err := h.DB.First(&alumni, "alumni_nim = ?", nim).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Alumni tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca alumni")
	}
	return helper.JsonOK(c, "Detail alumni berhasil diambil", alumniDTO.FromAlumniModel(alumni))
}

// POST /api/alumni (admin)
func (h *AlumniController) CreateAlumni(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := helperAuth.EnsureAlumniAccess(actor, "", helperAuth.OpCreate); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req alumniDTO.CreateAlumniRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrsToMap(err))
	}

	alumni, err := req.ToModel()
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	ip := c.IP()
	alumni.AlumniUpdatedBy = &actor.UserID
	alumni.AlumniUpdatedIP = &ip

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&alumniModel.AlumniModel{}).
			Where("alumni_nim = ?", alumni.AlumniNIM).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "NIM sudah terdaftar")
		}
		if alumni.AlumniNIS != nil {
			if err := ensureStudentExists(tx, *alumni.AlumniNIS); err != nil {
				return err
			}
		}
		return tx.Create(alumni).Error
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Alumni berhasil ditambahkan", alumniDTO.FromAlumniModel(*alumni))
}

// PUT /api/alumni/:nim (admin)
func (h *AlumniController) UpdateAlumni(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	nim := strings.TrimSpace(c.Params("nim"))
	if nim == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "NIM tidak valid")
	}
	if err := helperAuth.EnsureAlumniAccess(actor, nim, helperAuth.OpUpdate); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req alumniDTO.UpdateAlumniRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrsToMap(err))
	}

	var alumni alumniModel.AlumniModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&alumni, "alumni_nim = ?", nim).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Alumni tidak ditemukan")
			}
			return err
		}
		if err := req.Apply(&alumni); err != nil {
			return err
		}
		if alumni.AlumniNIS != nil {
			if err := ensureStudentExists(tx, *alumni.AlumniNIS); err != nil {
				return err
			}
		}
		ip := c.IP()
		alumni.AlumniUpdatedBy = &actor.UserID
		alumni.AlumniUpdatedIP = &ip
		return tx.Save(&alumni).Error
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "Alumni berhasil diperbarui", alumniDTO.FromAlumniModel(alumni))
}

// DELETE /api/alumni/:nim (admin)
func (h *AlumniController) DeleteAlumni(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	nim := strings.TrimSpace(c.Params("nim"))
	if nim == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "NIM tidak valid")
	}
	if err := helperAuth.EnsureAlumniAccess(actor, nim, helperAuth.OpDelete); err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&alumniModel.AlumniModel{}, "alumni_nim = ?", nim)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Alumni tidak ditemukan")
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonDeleted(c, "Alumni berhasil dihapus", fiber.Map{"alumni_nim": nim})
}

/* =========================================================
   MY PROFILE (role alumni)
   ========================================================= */

// GET /api/my-profile
func (h *AlumniController) GetMyProfile(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if actor.AlumniNIM == nil {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda tidak terhubung ke data alumni")
	}

	var alumni alumniModel.AlumniModel
	if err := h.DB.First(&alumni, "alumni_nim = ?", *actor.AlumniNIM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Data alumni tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data alumni")
	}
	return helper.JsonOK(c, "Profil alumni berhasil diambil", alumniDTO.FromAlumniModel(alumni))
}

// PUT /api/my-profile
// Hanya subset field karir & kontak; setelah sukses, admin diberi
// notifikasi (fire-and-forget).
func (h *AlumniController) UpdateMyProfile(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if actor.AlumniNIM == nil {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda tidak terhubung ke data alumni")
	}
	nim := *actor.AlumniNIM
	if err := helperAuth.EnsureAlumniAccess(actor, nim, helperAuth.OpUpdate); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req alumniDTO.UpdateMyProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrsToMap(err))
	}

	var alumni alumniModel.AlumniModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&alumni, "alumni_nim = ?", nim).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Data alumni tidak ditemukan")
			}
			return err
		}
		if err := req.Apply(&alumni); err != nil {
			return err
		}
		ip := c.IP()
		now := time.Now()
		alumni.AlumniUpdatedBy = &actor.UserID
		alumni.AlumniUpdatedIP = &ip
		alumni.AlumniUpdatedAt = now
		return tx.Save(&alumni).Error
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	// notifikasi setelah commit, di luar transaksi
	alumniService.NotifyAlumniUpdate(h.DB, alumni.AlumniNIM, alumni.AlumniName, req.ChangedFields(), actor.UserID, c.IP())

	return helper.JsonUpdated(c, "Profil alumni berhasil diperbarui", alumniDTO.FromAlumniModel(alumni))
}

/* =========================================================
   PUBLIC (tanpa auth, field dikurangi)
   ========================================================= */

// GET /api/public/alumni
func (h *AlumniController) PublicListAlumni(c *fiber.Ctx) error {
	base := h.DB.Model(&alumniModel.AlumniModel{})
	if y := c.QueryInt("graduation_year"); y > 0 {
		base = base.Where("alumni_graduation_year = ?", y)
	}

	paging := helper.ResolvePaging(c, 25, 100)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung alumni")
	}

	var items []alumniModel.AlumniModel
	if err := base.
		Order("alumni_graduation_year DESC, alumni_name ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil alumni")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar alumni berhasil diambil", alumniDTO.ToPublicAlumnis(items), &pagination)
}

// GET /api/public/alumni/search?q=
func (h *AlumniController) PublicSearchAlumni(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Parameter q wajib diisi")
	}

	var items []alumniModel.AlumniModel
	if err := h.DB.
		Where("LOWER(alumni_name) LIKE ?", "%"+strings.ToLower(q)+"%").
		Order("alumni_name ASC").
		Limit(50).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mencari alumni")
	}

	return helper.JsonOK(c, "Hasil pencarian alumni", alumniDTO.ToPublicAlumnis(items))
}

// GET /api/public/alumni/:nim
func (h *AlumniController) PublicGetAlumni(c *fiber.Ctx) error {
	nim := strings.TrimSpace(c.Params("nim"))
	if nim == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "NIM tidak valid")
	}

	var alumni alumniModel.AlumniModel
	if err := h.DB.First(&alumni, "alumni_nim = ?", nim).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Alumni tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca alumni")
	}
	return helper.JsonOK(c, "Detail alumni berhasil diambil", alumniDTO.ToPublicAlumni(alumni))
}

func ensureStudentExists(tx *gorm.DB, nis string) error {
	var count int64
	if err := tx.Model(&studentModel.StudentModel{}).
		Where("student_nis = ?", nis).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "NIS siswa untuk link alumni tidak ditemukan")
	}
	return nil
}
