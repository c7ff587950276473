// internals/features/school/subjects/dto/subject_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/school/subjects/model"
)

type CreateSubjectRequest struct {
	Name string  `json:"subject_name" validate:"required,min=2,max=100"`
	Code *string `json:"subject_code" validate:"omitempty,min=1,max=20"`
}

func (r *CreateSubjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.Code != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Code))
		if v == "" {
			r.Code = nil
		} else {
			r.Code = &v
		}
	}
}

type UpdateSubjectRequest struct {
	Name *string `json:"subject_name" validate:"omitempty,min=2,max=100"`
	Code *string `json:"subject_code" validate:"omitempty,max=20"`
}

func (r *UpdateSubjectRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.Code != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Code))
		r.Code = &v
	}
}

type SubjectResponse struct {
	SubjectID uuid.UUID `json:"subject_id"`
	Name      string    `json:"subject_name"`
	Code      *string   `json:"subject_code,omitempty"`
	CreatedBy *uuid.UUID `json:"subject_created_by,omitempty"`
	CreatedAt time.Time `json:"subject_created_at"`
	UpdatedAt time.Time `json:"subject_updated_at"`
}

func FromSubjectModel(s m.SubjectModel) SubjectResponse {
	return SubjectResponse{
		SubjectID: s.SubjectID,
		Name:      s.SubjectName,
		Code:      s.SubjectCode,
		CreatedBy: s.SubjectCreatedBy,
		CreatedAt: s.SubjectCreatedAt,
		UpdatedAt: s.SubjectUpdatedAt,
	}
}

func FromSubjectModels(items []m.SubjectModel) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(items))
	for _, it := range items {
		out = append(out, FromSubjectModel(it))
	}
	return out
}
