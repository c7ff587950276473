// internals/features/users/user/controller/user_controller.go
package controller

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	alumniModel "sekolahku_backend/internals/features/alumni/model"
	subjectModel "sekolahku_backend/internals/features/school/subjects/model"
	authService "sekolahku_backend/internals/features/users/auth/service"
	userDTO "sekolahku_backend/internals/features/users/user/dto"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

var validate = validator.New()

// Format kelas wali: {tingkat}-{rombel}, misal X-1
var classRE = regexp.MustCompile(`^(X|XI|XII)-\d+$`)

type UserController struct {
	DB *gorm.DB
}

// GET /api/users (admin)
func (h *UserController) ListUsers(c *fiber.Ctx) error {
	if _, err := helperAuth.ActorFromLocals(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	base := h.DB.Model(&userModel.UserModel{})
	if role := strings.ToLower(strings.TrimSpace(c.Query("role"))); role != "" {
		if !constants.IsValidRole(role) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Role tidak dikenal")
		}
		base = base.Where("user_role = ?", role)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		base = base.Where("LOWER(user_name) LIKE ? OR LOWER(user_email) LIKE ?", like, like)
	}

	paging := helper.ResolvePaging(c, 25, 100)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung pengguna")
	}

	var items []userModel.UserModel
	if err := base.
		Order("user_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pengguna")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar pengguna berhasil diambil", userDTO.FromUserModels(items), &pagination)
}

// GET /api/users/:id (admin)
func (h *UserController) GetUser(c *fiber.Ctx) error {
	if _, err := helperAuth.ActorFromLocals(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var user userModel.UserModel
	if err := h.DB.First(&user, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Pengguna tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca pengguna")
	}
	return helper.JsonOK(c, "Detail pengguna berhasil diambil", userDTO.FromUserModel(user))
}

// POST /api/users (admin)
func (h *UserController) CreateUser(c *fiber.Ctx) error {
	if _, err := helperAuth.ActorFromLocals(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req userDTO.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrsToMap(err))
	}

	rc, err := req.Context()
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	hashed, err := authService.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	user := userModel.UserModel{
		UserName:      req.Name,
		UserEmail:     req.Email,
		UserPassword:  hashed,
		UserRole:      rc.Role,
		UserSubjectID: rc.SubjectID,
		UserClass:     rc.Class,
		UserAlumniNIM: rc.AlumniNIM,
	}
	if err := user.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := ensureEmailUnique(tx, user.UserEmail, nil); err != nil {
			return err
		}
		if err := ensureScopeRefsExist(tx, rc); err != nil {
			return err
		}
		return tx.Create(&user).Error
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Pengguna berhasil ditambahkan", userDTO.FromUserModel(user))
}

// PUT /api/users/:id (admin)
func (h *UserController) UpdateUser(c *fiber.Ctx) error {
	if _, err := helperAuth.ActorFromLocals(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req userDTO.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrsToMap(err))
	}

	var user userModel.UserModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "user_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Pengguna tidak ditemukan")
			}
			return err
		}

		rc, err := req.Context(user)
		if err != nil {
			return err
		}

		if req.Name != nil {
			user.UserName = *req.Name
		}
		if req.Email != nil && *req.Email != user.UserEmail {
			if err := ensureEmailUnique(tx, *req.Email, &user.UserID); err != nil {
				return err
			}
			user.UserEmail = *req.Email
		}
		if req.Password != nil {
			hashed, err := authService.HashPassword(*req.Password)
			if err != nil {
				return err
			}
			user.UserPassword = hashed
		}

		user.UserRole = rc.Role
		user.UserSubjectID = rc.SubjectID
		user.UserClass = rc.Class
		user.UserAlumniNIM = rc.AlumniNIM

		if err := user.Validate(); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		if err := ensureScopeRefsExist(tx, rc); err != nil {
			return err
		}

		return tx.Save(&user).Error
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "Pengguna berhasil diperbarui", userDTO.FromUserModel(user))
}

// DELETE /api/users/:id (admin; tidak boleh hapus akun sendiri)
func (h *UserController) DeleteUser(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := helperAuth.EnsureUserDelete(actor, id); err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var user userModel.UserModel
		if err := tx.First(&user, "user_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Pengguna tidak ditemukan")
			}
			return err
		}
		// sesi refresh ikut dicabut
		if err := authService.RevokeAllRefreshTokens(tx, user.UserID); err != nil {
			return err
		}
		return tx.Delete(&user).Error
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonDeleted(c, "Pengguna berhasil dihapus", fiber.Map{"user_id": id})
}

func ensureEmailUnique(tx *gorm.DB, email string, excludeID *uuid.UUID) error {
	q := tx.Model(&userModel.UserModel{}).Where("user_email = ?", email)
	if excludeID != nil {
		q = q.Where("user_id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusConflict, "Email sudah digunakan")
	}
	return nil
}

// ensureScopeRefsExist memastikan scope menunjuk entitas yang ada:
// mapel untuk guru, record alumni untuk alumni, format kelas untuk wali.
func ensureScopeRefsExist(tx *gorm.DB, rc userDTO.RoleContext) error {
	if rc.SubjectID != nil {
		var count int64
		if err := tx.Model(&subjectModel.SubjectModel{}).
			Where("subject_id = ?", *rc.SubjectID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Mata pelajaran untuk guru tidak ditemukan")
		}
	}
	if rc.Class != nil && !classRE.MatchString(*rc.Class) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Format kelas tidak valid (contoh: X-1)")
	}
	if rc.AlumniNIM != nil {
		var count int64
		if err := tx.Model(&alumniModel.AlumniModel{}).
			Where("alumni_nim = ?", *rc.AlumniNIM).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Data alumni untuk NIM tersebut tidak ditemukan")
		}
	}
	return nil
}
