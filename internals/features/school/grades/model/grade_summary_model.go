// internals/features/school/grades/model/grade_summary_model.go
package model

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	studentModel "sekolahku_backend/internals/features/school/students/model"
)

// GradeSummaryModel: ringkasan nilai per (siswa, semester).
// Baris ini DERIVED murni dari tabel grades — hanya boleh ditulis oleh
// RecomputeSummary, tidak pernah di-update manual. GPA & status dihitung
// saat read, tidak disimpan.
type GradeSummaryModel struct {
	GradeSummaryID uuid.UUID `gorm:"column:grade_summary_id;type:uuid;default:gen_random_uuid();primaryKey" json:"grade_summary_id"`

	GradeSummaryStudentID string `gorm:"column:grade_summary_student_id;type:varchar(20);not null;index;uniqueIndex:grade_summaries_unique_constraint" json:"grade_summary_student_id"`
	GradeSummarySemester  string `gorm:"column:grade_summary_semester;type:varchar(50);not null;index;uniqueIndex:grade_summaries_unique_constraint" json:"grade_summary_semester"`

	GradeSummaryTotalScore   int     `gorm:"column:grade_summary_total_score;not null;default:0" json:"grade_summary_total_score"`
	GradeSummaryAverageScore float64 `gorm:"column:grade_summary_average_score;type:numeric(5,2);not null;default:0" json:"grade_summary_average_score"`

	GradeSummaryCalculatedAt time.Time `gorm:"column:grade_summary_calculated_at;not null" json:"grade_summary_calculated_at"`

	GradeSummaryCreatedAt time.Time `gorm:"column:grade_summary_created_at;not null;autoCreateTime" json:"grade_summary_created_at"`
	GradeSummaryUpdatedAt time.Time `gorm:"column:grade_summary_updated_at;not null;autoUpdateTime" json:"grade_summary_updated_at"`

	Student *studentModel.StudentModel `gorm:"foreignKey:GradeSummaryStudentID;references:StudentNIS;constraint:OnDelete:CASCADE" json:"student,omitempty"`
}

func (GradeSummaryModel) TableName() string { return "grade_summaries" }

// ID digenerate app-side supaya tidak bergantung gen_random_uuid di DB.
func (s *GradeSummaryModel) BeforeCreate(tx *gorm.DB) error {
	if s.GradeSummaryID == uuid.Nil {
		s.GradeSummaryID = uuid.New()
	}
	return nil
}

// GradePointAverage konversi rata-rata 0-100 ke skala 0.00-4.00.
func (s GradeSummaryModel) GradePointAverage() float64 {
	return math.Round(s.GradeSummaryAverageScore/100*4*100) / 100
}

// Status kelulusan berdasarkan rata-rata (lulus jika >= 75).
func (s GradeSummaryModel) Status() string {
	if s.IsPassing() {
		return "Lulus"
	}
	return "Tidak Lulus"
}

func (s GradeSummaryModel) IsPassing() bool {
	return s.GradeSummaryAverageScore >= PassingScore
}
