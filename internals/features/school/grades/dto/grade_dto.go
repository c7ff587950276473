// internals/features/school/grades/dto/grade_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/school/grades/model"
)

/* =========================================================
   CREATE
   ========================================================= */

type CreateGradeRequest struct {
	StudentID string     `json:"grade_student_id" validate:"required,max=20"`
	SubjectID *uuid.UUID `json:"grade_subject_id" validate:"omitempty"`
	Semester  string     `json:"grade_semester" validate:"required,min=1,max=50"`
	Score     *int       `json:"grade_score" validate:"required,gte=0,lte=100"`
}

func (r *CreateGradeRequest) Normalize() {
	r.StudentID = strings.TrimSpace(r.StudentID)
	r.Semester = strings.TrimSpace(r.Semester)
}

/* =========================================================
   UPDATE (partial)
   ========================================================= */

type UpdateGradeRequest struct {
	StudentID *string    `json:"grade_student_id" validate:"omitempty,min=1,max=20"`
	SubjectID *uuid.UUID `json:"grade_subject_id" validate:"omitempty"`
	Semester  *string    `json:"grade_semester" validate:"omitempty,min=1,max=50"`
	Score     *int       `json:"grade_score" validate:"omitempty,gte=0,lte=100"`
}

func (r *UpdateGradeRequest) Normalize() {
	if r.StudentID != nil {
		v := strings.TrimSpace(*r.StudentID)
		r.StudentID = &v
	}
	if r.Semester != nil {
		v := strings.TrimSpace(*r.Semester)
		r.Semester = &v
	}
}

/* =========================================================
   RESPONSES
   ========================================================= */

type GradeStudentLite struct {
	NIS         string `json:"student_nis"`
	Name        string `json:"student_name"`
	RombelAbsen string `json:"student_rombel_absen"`
	Class       string `json:"student_class"`
}

type GradeSubjectLite struct {
	ID   uuid.UUID `json:"subject_id"`
	Name string    `json:"subject_name"`
	Code *string   `json:"subject_code,omitempty"`
}

type GradeResponse struct {
	GradeID   uuid.UUID `json:"grade_id"`
	StudentID string    `json:"grade_student_id"`
	SubjectID uuid.UUID `json:"grade_subject_id"`
	Semester  string    `json:"grade_semester"`
	Score     int       `json:"grade_score"`

	// Derived (dihitung saat read, tidak disimpan)
	GradeLetter string `json:"grade_letter"`
	IsPassing   bool   `json:"is_passing"`

	LastEditedBy *uuid.UUID `json:"grade_last_edited_by,omitempty"`
	LastEditedAt *time.Time `json:"grade_last_edited_at,omitempty"`
	UpdatedAt    time.Time  `json:"grade_updated_at"`

	Student *GradeStudentLite `json:"student,omitempty"`
	Subject *GradeSubjectLite `json:"subject,omitempty"`
}

func FromGradeModel(g m.GradeModel) GradeResponse {
	resp := GradeResponse{
		GradeID:      g.GradeID,
		StudentID:    g.GradeStudentID,
		SubjectID:    g.GradeSubjectID,
		Semester:     g.GradeSemester,
		Score:        g.GradeScore,
		GradeLetter:  m.GradeLetter(g.GradeScore),
		IsPassing:    g.IsPassing(),
		LastEditedBy: g.GradeLastEditedBy,
		LastEditedAt: g.GradeLastEditedAt,
		UpdatedAt:    g.GradeUpdatedAt,
	}
	if g.Student != nil {
		resp.Student = &GradeStudentLite{
			NIS:         g.Student.StudentNIS,
			Name:        g.Student.StudentName,
			RombelAbsen: g.Student.StudentRombelAbsen,
			Class:       g.Student.Class(),
		}
	}
	if g.Subject != nil {
		resp.Subject = &GradeSubjectLite{
			ID:   g.Subject.SubjectID,
			Name: g.Subject.SubjectName,
			Code: g.Subject.SubjectCode,
		}
	}
	return resp
}

func FromGradeModels(items []m.GradeModel) []GradeResponse {
	out := make([]GradeResponse, 0, len(items))
	for _, it := range items {
		out = append(out, FromGradeModel(it))
	}
	return out
}

type GradeSummaryResponse struct {
	SummaryID    uuid.UUID `json:"grade_summary_id"`
	StudentID    string    `json:"grade_summary_student_id"`
	Semester     string    `json:"grade_summary_semester"`
	TotalScore   int       `json:"grade_summary_total_score"`
	AverageScore float64   `json:"grade_summary_average_score"`

	// Derived (view-level, dihitung dari average_score)
	GradePointAverage float64 `json:"grade_point_average"`
	Status            string  `json:"status"`

	CalculatedAt time.Time `json:"grade_summary_calculated_at"`

	Student *GradeStudentLite `json:"student,omitempty"`
}

func FromGradeSummaryModel(s m.GradeSummaryModel) GradeSummaryResponse {
	resp := GradeSummaryResponse{
		SummaryID:         s.GradeSummaryID,
		StudentID:         s.GradeSummaryStudentID,
		Semester:          s.GradeSummarySemester,
		TotalScore:        s.GradeSummaryTotalScore,
		AverageScore:      s.GradeSummaryAverageScore,
		GradePointAverage: s.GradePointAverage(),
		Status:            s.Status(),
		CalculatedAt:      s.GradeSummaryCalculatedAt,
	}
	if s.Student != nil {
		resp.Student = &GradeStudentLite{
			NIS:         s.Student.StudentNIS,
			Name:        s.Student.StudentName,
			RombelAbsen: s.Student.StudentRombelAbsen,
			Class:       s.Student.Class(),
		}
	}
	return resp
}

func FromGradeSummaryModels(items []m.GradeSummaryModel) []GradeSummaryResponse {
	out := make([]GradeSummaryResponse, 0, len(items))
	for _, it := range items {
		out = append(out, FromGradeSummaryModel(it))
	}
	return out
}
