// internals/features/school/grades/model/grade_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	studentModel "sekolahku_backend/internals/features/school/students/model"
	subjectModel "sekolahku_backend/internals/features/school/subjects/model"
)

// Nilai minimal lulus
const PassingScore = 75

// GradeModel: nilai raport siswa per mapel per semester.
// Unik per (student, subject, semester). Setiap mutasi baris ini WAJIB
// diikuti RecomputeSummary dalam transaksi yang sama.
type GradeModel struct {
	GradeID uuid.UUID `gorm:"column:grade_id;type:uuid;default:gen_random_uuid();primaryKey" json:"grade_id"`

	GradeStudentID string    `gorm:"column:grade_student_id;type:varchar(20);not null;index;uniqueIndex:grades_unique_constraint" json:"grade_student_id"`
	GradeSubjectID uuid.UUID `gorm:"column:grade_subject_id;type:uuid;not null;index;uniqueIndex:grades_unique_constraint" json:"grade_subject_id"`
	GradeSemester  string    `gorm:"column:grade_semester;type:varchar(50);not null;index;uniqueIndex:grades_unique_constraint" json:"grade_semester"`

	GradeScore int `gorm:"column:grade_score;type:smallint;not null" json:"grade_score"`

	// Tracking perubahan data
	GradeLastEditedBy *uuid.UUID `gorm:"column:grade_last_edited_by;type:uuid" json:"grade_last_edited_by,omitempty"`
	GradeLastEditedIP *string    `gorm:"column:grade_last_edited_ip;type:varchar(45)" json:"grade_last_edited_ip,omitempty"`
	GradeLastEditedAt *time.Time `gorm:"column:grade_last_edited_at" json:"grade_last_edited_at,omitempty"`

	GradeCreatedAt time.Time `gorm:"column:grade_created_at;not null;autoCreateTime" json:"grade_created_at"`
	GradeUpdatedAt time.Time `gorm:"column:grade_updated_at;not null;autoUpdateTime" json:"grade_updated_at"`

	// Relasi (cascade delete mengikuti siswa/mapel)
	Student *studentModel.StudentModel `gorm:"foreignKey:GradeStudentID;references:StudentNIS;constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Subject *subjectModel.SubjectModel `gorm:"foreignKey:GradeSubjectID;references:SubjectID;constraint:OnDelete:CASCADE" json:"subject,omitempty"`
}

func (GradeModel) TableName() string { return "grades" }

// ID digenerate app-side supaya tidak bergantung gen_random_uuid di DB.
func (g *GradeModel) BeforeCreate(tx *gorm.DB) error {
	if g.GradeID == uuid.Nil {
		g.GradeID = uuid.New()
	}
	return nil
}

// GradeLetter mengembalikan huruf mutu A..E berdasarkan score.
func GradeLetter(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "E"
	}
}

// IsPassing: lulus jika score >= 75
func (g GradeModel) IsPassing() bool {
	return g.GradeScore >= PassingScore
}
