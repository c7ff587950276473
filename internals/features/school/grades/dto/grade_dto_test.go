package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	m "sekolahku_backend/internals/features/school/grades/model"
	studentModel "sekolahku_backend/internals/features/school/students/model"
)

func TestFromGradeModelDerivedFields(t *testing.T) {
	g := m.GradeModel{
		GradeID:        uuid.New(),
		GradeStudentID: "12345",
		GradeSubjectID: uuid.New(),
		GradeSemester:  "Ganjil 2024/2025",
		GradeScore:     92,
		Student: &studentModel.StudentModel{
			StudentNIS:         "12345",
			StudentName:        "Budi",
			StudentRombelAbsen: "XI-2-05",
		},
	}

	resp := FromGradeModel(g)
	assert.Equal(t, "A", resp.GradeLetter)
	assert.True(t, resp.IsPassing)
	assert.NotNil(t, resp.Student)
	assert.Equal(t, "XI-2", resp.Student.Class)

	g.GradeScore = 64
	resp = FromGradeModel(g)
	assert.Equal(t, "D", resp.GradeLetter)
	assert.False(t, resp.IsPassing)
}

func TestFromGradeSummaryModelDerivedFields(t *testing.T) {
	s := m.GradeSummaryModel{
		GradeSummaryID:           uuid.New(),
		GradeSummaryStudentID:    "12345",
		GradeSummarySemester:     "Ganjil 2024/2025",
		GradeSummaryTotalScore:   170,
		GradeSummaryAverageScore: 85.0,
	}

	resp := FromGradeSummaryModel(s)
	assert.InDelta(t, 3.40, resp.GradePointAverage, 0.001)
	assert.Equal(t, "Lulus", resp.Status)

	s.GradeSummaryAverageScore = 70.0
	resp = FromGradeSummaryModel(s)
	assert.Equal(t, "Tidak Lulus", resp.Status)
	assert.InDelta(t, 2.80, resp.GradePointAverage, 0.001)
}
