// internals/features/users/user/dto/user_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	m "sekolahku_backend/internals/features/users/user/model"
)

/* =========================================================
   ROLE CONTEXT
   Satu role satu field scope; konstruksi lewat sini supaya
   kombinasi role+scope selalu konsisten.
   ========================================================= */

type RoleContext struct {
	Role      string
	SubjectID *uuid.UUID
	Class     *string
	AlumniNIM *string
}

func AdminContext() RoleContext {
	return RoleContext{Role: constants.RoleAdmin}
}

func GuruContext(subjectID uuid.UUID) RoleContext {
	return RoleContext{Role: constants.RoleGuru, SubjectID: &subjectID}
}

func WaliKelasContext(class string) RoleContext {
	return RoleContext{Role: constants.RoleWaliKelas, Class: &class}
}

func AlumniContext(nim string) RoleContext {
	return RoleContext{Role: constants.RoleAlumni, AlumniNIM: &nim}
}

/* =========================================================
   CREATE (admin)
   ========================================================= */

type CreateUserRequest struct {
	Name     string `json:"user_name" validate:"required,min=2,max=100"`
	Email    string `json:"user_email" validate:"required,email,max=100"`
	Password string `json:"user_password" validate:"required,min=8,max=100"`
	Role     string `json:"user_role" validate:"required"`

	SubjectID *uuid.UUID `json:"user_subject_id" validate:"omitempty"`
	Class     *string    `json:"user_class" validate:"omitempty,max=10"`
	AlumniNIM *string    `json:"user_alumni_nim" validate:"omitempty,max=20"`
}

func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	if r.Class != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Class))
		if v == "" {
			r.Class = nil
		} else {
			r.Class = &v
		}
	}
	if r.AlumniNIM != nil {
		v := strings.TrimSpace(*r.AlumniNIM)
		if v == "" {
			r.AlumniNIM = nil
		} else {
			r.AlumniNIM = &v
		}
	}
}

// Context memetakan payload ke RoleContext; field scope yang tidak
// relevan dengan role ditolak (bukan diam-diam dibuang).
func (r CreateUserRequest) Context() (RoleContext, error) {
	return buildContext(r.Role, r.SubjectID, r.Class, r.AlumniNIM)
}

func buildContext(role string, subjectID *uuid.UUID, class *string, nim *string) (RoleContext, error) {
	bad := func(msg string) (RoleContext, error) {
		return RoleContext{}, fiber.NewError(fiber.StatusUnprocessableEntity, msg)
	}
	switch role {
	case constants.RoleAdmin:
		if subjectID != nil || class != nil || nim != nil {
			return bad("Role admin tidak boleh membawa field scope")
		}
		return AdminContext(), nil
	case constants.RoleGuru:
		if subjectID == nil {
			return bad("Role guru wajib membawa user_subject_id")
		}
		if class != nil || nim != nil {
			return bad("Role guru hanya boleh membawa user_subject_id")
		}
		return GuruContext(*subjectID), nil
	case constants.RoleWaliKelas:
		if class == nil {
			return bad("Role wali_kelas wajib membawa user_class")
		}
		if subjectID != nil || nim != nil {
			return bad("Role wali_kelas hanya boleh membawa user_class")
		}
		return WaliKelasContext(*class), nil
	case constants.RoleAlumni:
		if nim == nil {
			return bad("Role alumni wajib membawa user_alumni_nim")
		}
		if subjectID != nil || class != nil {
			return bad("Role alumni hanya boleh membawa user_alumni_nim")
		}
		return AlumniContext(*nim), nil
	default:
		return bad("Role tidak dikenal")
	}
}

/* =========================================================
   UPDATE (partial; ganti role wajib bawa scope barunya)
   ========================================================= */

type UpdateUserRequest struct {
	Name     *string `json:"user_name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"user_email" validate:"omitempty,email,max=100"`
	Password *string `json:"user_password" validate:"omitempty,min=8,max=100"`
	Role     *string `json:"user_role" validate:"omitempty"`

	SubjectID *uuid.UUID `json:"user_subject_id" validate:"omitempty"`
	Class     *string    `json:"user_class" validate:"omitempty,max=10"`
	AlumniNIM *string    `json:"user_alumni_nim" validate:"omitempty,max=20"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
	}
	if r.Role != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Role))
		r.Role = &v
	}
	if r.Class != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Class))
		r.Class = &v
	}
	if r.AlumniNIM != nil {
		v := strings.TrimSpace(*r.AlumniNIM)
		r.AlumniNIM = &v
	}
}

// Context menghitung RoleContext hasil update: role efektif (baru atau
// lama), scope dari payload bila ada, selain itu warisan scope lama
// HANYA jika role tidak berubah.
func (r UpdateUserRequest) Context(existing m.UserModel) (RoleContext, error) {
	role := existing.UserRole
	roleChanged := false
	if r.Role != nil && *r.Role != existing.UserRole {
		role = *r.Role
		roleChanged = true
	}

	subjectID := r.SubjectID
	class := r.Class
	nim := r.AlumniNIM
	if !roleChanged {
		if subjectID == nil {
			subjectID = existing.UserSubjectID
		}
		if class == nil {
			class = existing.UserClass
		}
		if nim == nil {
			nim = existing.UserAlumniNIM
		}
	}
	return buildContext(role, subjectID, class, nim)
}

/* =========================================================
   RESPONSES
   ========================================================= */

type UserResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"user_name"`
	Email  string    `json:"user_email"`
	Role   string    `json:"user_role"`

	SubjectID *uuid.UUID `json:"user_subject_id,omitempty"`
	Class     *string    `json:"user_class,omitempty"`
	AlumniNIM *string    `json:"user_alumni_nim,omitempty"`

	CreatedAt time.Time `json:"user_created_at"`
	UpdatedAt time.Time `json:"user_updated_at"`
}

func FromUserModel(u m.UserModel) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Name:      u.UserName,
		Email:     u.UserEmail,
		Role:      u.UserRole,
		SubjectID: u.UserSubjectID,
		Class:     u.UserClass,
		AlumniNIM: u.UserAlumniNIM,
		CreatedAt: u.UserCreatedAt,
		UpdatedAt: u.UserUpdatedAt,
	}
}

func FromUserModels(items []m.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(items))
	for _, it := range items {
		out = append(out, FromUserModel(it))
	}
	return out
}
