// internals/features/alumni/dto/alumni_dto_test.go
package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "sekolahku_backend/internals/features/alumni/model"
)

func strPtr(v string) *string { return &v }

func TestUpdateMyProfileChangedFields(t *testing.T) {
	req := UpdateMyProfileRequest{
		JobTitle: strPtr("Backend Engineer"),
		Phone:    strPtr("081234567890"),
	}
	assert.Equal(t, []string{"alumni_job_title", "alumni_phone"}, req.ChangedFields())

	assert.Empty(t, UpdateMyProfileRequest{}.ChangedFields())
}

func TestUpdateMyProfileApplyOnlyCareerAndContact(t *testing.T) {
	alumni := m.AlumniModel{
		AlumniNIM:  "A2019001",
		AlumniName: "Budi Santoso",
	}

	req := UpdateMyProfileRequest{
		University: strPtr("  ITB  "),
		JobTitle:   strPtr("Data Analyst"),
		JobStart:   strPtr("2023-07-01"),
	}
	require.NoError(t, req.Apply(&alumni))

	// identitas tidak tersentuh
	assert.Equal(t, "A2019001", alumni.AlumniNIM)
	assert.Equal(t, "Budi Santoso", alumni.AlumniName)

	require.NotNil(t, alumni.AlumniUniversity)
	assert.Equal(t, "ITB", *alumni.AlumniUniversity)
	require.NotNil(t, alumni.AlumniJobStart)
	assert.Equal(t, "2023-07-01", alumni.AlumniJobStart.Format("2006-01-02"))
}

func TestUpdateMyProfileApplyRejectsBadDate(t *testing.T) {
	alumni := m.AlumniModel{AlumniNIM: "A2019001"}
	req := UpdateMyProfileRequest{JobStart: strPtr("01-07-2023")}
	assert.Error(t, req.Apply(&alumni))
}
