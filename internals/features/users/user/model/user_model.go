// internals/features/users/user/model/user_model.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
)

// UserModel: akun pengguna. Tepat satu role; field konteks yang terisi
// WAJIB sesuai role (invariant dicek Validate + dikonstruksi via
// dto.RoleContext):
//   - admin      → ketiga field konteks nil
//   - guru       → hanya user_subject_id
//   - wali_kelas → hanya user_class
//   - alumni     → hanya user_alumni_nim
type UserModel struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`

	UserName     string `gorm:"column:user_name;type:varchar(100);not null" json:"user_name"`
	UserEmail    string `gorm:"column:user_email;type:varchar(100);not null;uniqueIndex" json:"user_email"`
	UserPassword string `gorm:"column:user_password;type:varchar(250);not null" json:"-"`

	UserRole string `gorm:"column:user_role;type:varchar(20);not null;index" json:"user_role"`

	UserSubjectID *uuid.UUID `gorm:"column:user_subject_id;type:uuid" json:"user_subject_id,omitempty"`
	UserClass     *string    `gorm:"column:user_class;type:varchar(10)" json:"user_class,omitempty"`
	UserAlumniNIM *string    `gorm:"column:user_alumni_nim;type:varchar(20)" json:"user_alumni_nim,omitempty"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;not null;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;not null;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (u UserModel) IsAdmin() bool     { return u.UserRole == constants.RoleAdmin }
func (u UserModel) IsGuru() bool      { return u.UserRole == constants.RoleGuru }
func (u UserModel) IsWaliKelas() bool { return u.UserRole == constants.RoleWaliKelas }
func (u UserModel) IsAlumni() bool    { return u.UserRole == constants.RoleAlumni }

// Validate memastikan field konteks terisi persis sesuai role.
func (u UserModel) Validate() error {
	if !constants.IsValidRole(u.UserRole) {
		return fmt.Errorf("role tidak dikenal: %q", u.UserRole)
	}

	wantSubject := u.UserRole == constants.RoleGuru
	wantClass := u.UserRole == constants.RoleWaliKelas
	wantAlumni := u.UserRole == constants.RoleAlumni

	if wantSubject != (u.UserSubjectID != nil) {
		return fmt.Errorf("role %s: user_subject_id harus %s", u.UserRole, fillWord(wantSubject))
	}
	if wantClass != (u.UserClass != nil) {
		return fmt.Errorf("role %s: user_class harus %s", u.UserRole, fillWord(wantClass))
	}
	if wantAlumni != (u.UserAlumniNIM != nil) {
		return fmt.Errorf("role %s: user_alumni_nim harus %s", u.UserRole, fillWord(wantAlumni))
	}
	return nil
}

func fillWord(want bool) string {
	if want {
		return "terisi"
	}
	return "kosong"
}
