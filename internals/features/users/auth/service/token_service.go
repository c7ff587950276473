// internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	authModel "sekolahku_backend/internals/features/users/auth/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// IssueAccessToken menandatangani JWT HS256 dengan klaim identitas + scope
// role. Hanya SATU field scope yang terisi, sesuai role.
func IssueAccessToken(user userModel.UserModel) (string, error) {
	if configs.JWTSecret == "" {
		return "", errors.New("JWT_SECRET belum diset")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.UserID.String(),
		"role": user.UserRole,
		"iat":  now.Unix(),
		"exp":  now.Add(AccessTokenTTL).Unix(),
	}
	if user.UserSubjectID != nil {
		claims["subject_id"] = user.UserSubjectID.String()
	}
	if user.UserClass != nil {
		claims["class"] = *user.UserClass
	}
	if user.UserAlumniNIM != nil {
		claims["alumni_nim"] = *user.UserAlumniNIM
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

// GenerateRefreshToken membuat token acak 32 byte (hex) untuk dikirim ke
// klien. Yang disimpan di DB hanya hash-nya.
func GenerateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashRefreshToken HMAC-SHA256 dengan refresh secret, supaya isi tabel
// refresh_tokens tidak bisa dipakai langsung kalau bocor.
func HashRefreshToken(plain string) []byte {
	mac := hmac.New(sha256.New, []byte(configs.JWTRefreshSecret))
	mac.Write([]byte(plain))
	return mac.Sum(nil)
}

// IssueRefreshToken membuat refresh token baru + simpan hash-nya.
func IssueRefreshToken(tx *gorm.DB, userID uuid.UUID, userAgent, ip string) (string, error) {
	plain, err := GenerateRefreshToken()
	if err != nil {
		return "", err
	}

	row := authModel.RefreshTokenModel{
		UserID:    userID,
		TokenHash: HashRefreshToken(plain),
		ExpiresAt: time.Now().Add(RefreshTokenTTL),
	}
	if ua := userAgent; ua != "" {
		row.UserAgent = &ua
	}
	if ip != "" {
		row.IP = &ip
	}

	if err := tx.Create(&row).Error; err != nil {
		return "", err
	}
	return plain, nil
}

// RotateRefreshToken memvalidasi refresh token lama lalu menggantinya
// dengan yang baru (rotasi satu kali pakai). Mengembalikan user pemilik
// dan token plaintext baru.
func RotateRefreshToken(tx *gorm.DB, plain, userAgent, ip string) (*userModel.UserModel, string, error) {
	var row authModel.RefreshTokenModel
	if err := tx.Where("token_hash = ?", HashRefreshToken(plain)).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fiber.NewError(fiber.StatusUnauthorized, "Refresh token tidak dikenal")
		}
		return nil, "", err
	}
	if row.RevokedAt != nil {
		return nil, "", fiber.NewError(fiber.StatusUnauthorized, "Refresh token sudah dicabut")
	}
	if time.Now().After(row.ExpiresAt) {
		return nil, "", fiber.NewError(fiber.StatusUnauthorized, "Refresh token kedaluwarsa")
	}

	var user userModel.UserModel
	if err := tx.First(&user, "user_id = ?", row.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fiber.NewError(fiber.StatusUnauthorized, "Akun tidak ditemukan")
		}
		return nil, "", err
	}

	now := time.Now()
	row.RevokedAt = &now
	if err := tx.Save(&row).Error; err != nil {
		return nil, "", err
	}

	newPlain, err := IssueRefreshToken(tx, user.UserID, userAgent, ip)
	if err != nil {
		return nil, "", err
	}
	return &user, newPlain, nil
}

// RevokeRefreshToken mencabut satu refresh token (logout device ini).
func RevokeRefreshToken(tx *gorm.DB, plain string) error {
	now := time.Now()
	return tx.Model(&authModel.RefreshTokenModel{}).
		Where("token_hash = ? AND revoked_at IS NULL", HashRefreshToken(plain)).
		Update("revoked_at", now).Error
}

// RevokeAllRefreshTokens mencabut seluruh sesi refresh milik user.
func RevokeAllRefreshTokens(tx *gorm.DB, userID uuid.UUID) error {
	now := time.Now()
	return tx.Model(&authModel.RefreshTokenModel{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error
}

// BlacklistAccessToken menaruh access token ke blacklist sampai exp-nya
// lewat (setelah itu dibersihkan scheduler).
func BlacklistAccessToken(tx *gorm.DB, token string, expiredAt time.Time) error {
	row := authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: expiredAt,
	}
	err := tx.Create(&row).Error
	if err != nil && isDuplicateTokenErr(err) {
		return nil
	}
	return err
}

func isDuplicateTokenErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
