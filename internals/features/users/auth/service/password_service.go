// internals/features/users/auth/service/password_service.go
package service

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hash password dengan bcrypt (cost default).
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword membandingkan password plaintext dengan hash tersimpan.
func CheckPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
