// internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authDTO "sekolahku_backend/internals/features/users/auth/dto"
	authService "sekolahku_backend/internals/features/users/auth/service"
	userDTO "sekolahku_backend/internals/features/users/user/dto"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

var validate = validator.New()

type AuthController struct {
	DB *gorm.DB
}

// POST /api/login
// Pesan error login sengaja sama untuk email salah & password salah.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrsToMap(err))
	}

	var user userModel.UserModel
	if err := h.DB.First(&user, "user_email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses login")
	}
	if !authService.CheckPassword(user.UserPassword, req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}

	accessToken, err := authService.IssueAccessToken(user)
	if err != nil {
		log.Println("[ERROR] Gagal issue access token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	var refreshToken string
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		refreshToken, txErr = authService.IssueRefreshToken(tx, user.UserID, c.Get("User-Agent"), c.IP())
		return txErr
	}); err != nil {
		log.Println("[ERROR] Gagal issue refresh token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	setAccessCookie(c, accessToken)
	setRefreshCookie(c, refreshToken)

	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"user": userDTO.FromUserModel(user),
		"token": authDTO.TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			TokenType:    "Bearer",
			ExpiresIn:    int64(authService.AccessTokenTTL.Seconds()),
		},
	})
}

// POST /api/refresh-token
// Token bisa dari body atau cookie refresh_token (SPA).
func (h *AuthController) RefreshToken(c *fiber.Ctx) error {
	var req authDTO.RefreshRequest
	_ = c.BodyParser(&req)
	req.Normalize()
	if req.RefreshToken == "" {
		req.RefreshToken = strings.TrimSpace(c.Cookies("refresh_token"))
	}
	if req.RefreshToken == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ditemukan")
	}

	var user *userModel.UserModel
	var newRefresh string
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		user, newRefresh, txErr = authService.RotateRefreshToken(tx, req.RefreshToken, c.Get("User-Agent"), c.IP())
		return txErr
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	accessToken, err := authService.IssueAccessToken(*user)
	if err != nil {
		log.Println("[ERROR] Gagal issue access token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	setAccessCookie(c, accessToken)
	setRefreshCookie(c, newRefresh)

	return helper.JsonOK(c, "Token berhasil diperbarui", authDTO.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(authService.AccessTokenTTL.Seconds()),
	})
}

// POST /api/logout (auth)
// Access token masuk blacklist sampai exp; refresh token (bila dikirim)
// ikut dicabut.
func (h *AuthController) Logout(c *fiber.Ctx) error {
	tokenString, _ := c.Locals("access_token").(string)
	if tokenString == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Missing token")
	}

	expiredAt := time.Now().Add(authService.AccessTokenTTL)
	if exp, ok := c.Locals("token_exp").(int64); ok && exp > 0 {
		expiredAt = time.Unix(exp, 0)
	}

	var req authDTO.RefreshRequest
	_ = c.BodyParser(&req) // refresh token opsional saat logout
	req.Normalize()
	if req.RefreshToken == "" {
		req.RefreshToken = strings.TrimSpace(c.Cookies("refresh_token"))
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := authService.BlacklistAccessToken(tx, tokenString, expiredAt); err != nil {
			return err
		}
		if req.RefreshToken != "" {
			return authService.RevokeRefreshToken(tx, req.RefreshToken)
		}
		return nil
	}); err != nil {
		log.Println("[ERROR] Gagal logout:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout")
	}

	clearAccessCookie(c)
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// POST /api/logout-all (auth)
// Semua sesi refresh milik user dicabut.
func (h *AuthController) LogoutAll(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	tokenString, _ := c.Locals("access_token").(string)
	expiredAt := time.Now().Add(authService.AccessTokenTTL)
	if exp, ok := c.Locals("token_exp").(int64); ok && exp > 0 {
		expiredAt = time.Unix(exp, 0)
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if tokenString != "" {
			if err := authService.BlacklistAccessToken(tx, tokenString, expiredAt); err != nil {
				return err
			}
		}
		return authService.RevokeAllRefreshTokens(tx, actor.UserID)
	}); err != nil {
		log.Println("[ERROR] Gagal logout-all:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout")
	}

	clearAccessCookie(c)
	return helper.JsonOK(c, "Semua sesi berhasil dikeluarkan", nil)
}

// GET /api/me (auth)
func (h *AuthController) CurrentUser(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user userModel.UserModel
	if err := h.DB.First(&user, "user_id = ?", actor.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Akun tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca akun")
	}
	return helper.JsonOK(c, "Profil akun berhasil diambil", userDTO.FromUserModel(user))
}

func setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Expires:  time.Now().Add(authService.RefreshTokenTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/api",
	})
}

func setAccessCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(authService.AccessTokenTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/",
	})
}

func clearAccessCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/api",
	})
}
