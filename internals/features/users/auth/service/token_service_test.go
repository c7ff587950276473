package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/constants"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

func setTestSecrets(t *testing.T) {
	t.Helper()
	oldSecret, oldRefresh := configs.JWTSecret, configs.JWTRefreshSecret
	configs.JWTSecret = "test-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"
	t.Cleanup(func() {
		configs.JWTSecret = oldSecret
		configs.JWTRefreshSecret = oldRefresh
	})
}

func parseClaims(t *testing.T, tokenString string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	})
	require.NoError(t, err)
	return claims
}

func TestIssueAccessTokenGuru(t *testing.T) {
	setTestSecrets(t)

	subjectID := uuid.New()
	user := userModel.UserModel{
		UserID:        uuid.New(),
		UserRole:      constants.RoleGuru,
		UserSubjectID: &subjectID,
	}

	tokenString, err := IssueAccessToken(user)
	require.NoError(t, err)

	claims := parseClaims(t, tokenString)
	assert.Equal(t, user.UserID.String(), claims["sub"])
	assert.Equal(t, constants.RoleGuru, claims["role"])
	assert.Equal(t, subjectID.String(), claims["subject_id"])
	_, hasClass := claims["class"]
	assert.False(t, hasClass)
	_, hasNIM := claims["alumni_nim"]
	assert.False(t, hasNIM)

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Greater(t, int64(exp), time.Now().Unix())
}

func TestIssueAccessTokenAdminNoScope(t *testing.T) {
	setTestSecrets(t)

	user := userModel.UserModel{UserID: uuid.New(), UserRole: constants.RoleAdmin}
	tokenString, err := IssueAccessToken(user)
	require.NoError(t, err)

	claims := parseClaims(t, tokenString)
	for _, key := range []string{"subject_id", "class", "alumni_nim"} {
		_, has := claims[key]
		assert.False(t, has, key)
	}
}

func TestIssueAccessTokenMissingSecret(t *testing.T) {
	setTestSecrets(t)
	configs.JWTSecret = ""

	_, err := IssueAccessToken(userModel.UserModel{UserID: uuid.New(), UserRole: constants.RoleAdmin})
	assert.Error(t, err)
}

func TestRefreshTokenHash(t *testing.T) {
	setTestSecrets(t)

	plain, err := GenerateRefreshToken()
	require.NoError(t, err)
	assert.Len(t, plain, 64) // 32 byte hex

	plain2, err := GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, plain, plain2)

	// hash deterministik untuk token yang sama, beda untuk token lain
	assert.Equal(t, HashRefreshToken(plain), HashRefreshToken(plain))
	assert.NotEqual(t, HashRefreshToken(plain), HashRefreshToken(plain2))
}
