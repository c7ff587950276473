package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"sekolahku_backend/internals/constants"
)

func ptr[T any](v T) *T { return &v }

func TestUserValidateRoleContext(t *testing.T) {
	subjectID := uuid.New()

	tests := []struct {
		name    string
		user    UserModel
		wantErr bool
	}{
		{
			"admin tanpa scope",
			UserModel{UserRole: constants.RoleAdmin},
			false,
		},
		{
			"admin dengan subject ditolak",
			UserModel{UserRole: constants.RoleAdmin, UserSubjectID: &subjectID},
			true,
		},
		{
			"guru dengan subject",
			UserModel{UserRole: constants.RoleGuru, UserSubjectID: &subjectID},
			false,
		},
		{
			"guru tanpa subject ditolak",
			UserModel{UserRole: constants.RoleGuru},
			true,
		},
		{
			"guru dengan class nyasar ditolak",
			UserModel{UserRole: constants.RoleGuru, UserSubjectID: &subjectID, UserClass: ptr("X-1")},
			true,
		},
		{
			"wali dengan class",
			UserModel{UserRole: constants.RoleWaliKelas, UserClass: ptr("X-1")},
			false,
		},
		{
			"wali tanpa class ditolak",
			UserModel{UserRole: constants.RoleWaliKelas},
			true,
		},
		{
			"alumni dengan nim",
			UserModel{UserRole: constants.RoleAlumni, UserAlumniNIM: ptr("A001")},
			false,
		},
		{
			"alumni dengan nim + subject ditolak",
			UserModel{UserRole: constants.RoleAlumni, UserAlumniNIM: ptr("A001"), UserSubjectID: &subjectID},
			true,
		},
		{
			"role tidak dikenal",
			UserModel{UserRole: "superuser"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
