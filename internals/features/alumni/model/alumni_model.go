// internals/features/alumni/model/alumni_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	studentModel "sekolahku_backend/internals/features/school/students/model"
)

// AlumniModel: data alumni setelah lulus.
// NIM dipakai sebagai primary key; link opsional ke data siswa (NIS).
// Semua field kontak & karir nullable.
type AlumniModel struct {
	AlumniNIM  string `gorm:"column:alumni_nim;type:varchar(20);primaryKey" json:"alumni_nim"`
	AlumniName string `gorm:"column:alumni_name;type:varchar(100);not null;index" json:"alumni_name"`

	AlumniGraduationYear *int `gorm:"column:alumni_graduation_year" json:"alumni_graduation_year,omitempty"`

	AlumniUniversity *string    `gorm:"column:alumni_university;type:varchar(100)" json:"alumni_university,omitempty"`
	AlumniJobTitle   *string    `gorm:"column:alumni_job_title;type:varchar(100)" json:"alumni_job_title,omitempty"`
	AlumniJobStart   *time.Time `gorm:"column:alumni_job_start;type:date" json:"alumni_job_start,omitempty"`
	AlumniJobEnd     *time.Time `gorm:"column:alumni_job_end;type:date" json:"alumni_job_end,omitempty"`

	AlumniPhone     *string `gorm:"column:alumni_phone;type:varchar(30)" json:"alumni_phone,omitempty"`
	AlumniEmail     *string `gorm:"column:alumni_email;type:varchar(100)" json:"alumni_email,omitempty"`
	AlumniLinkedin  *string `gorm:"column:alumni_linkedin;type:varchar(150)" json:"alumni_linkedin,omitempty"`
	AlumniInstagram *string `gorm:"column:alumni_instagram;type:varchar(150)" json:"alumni_instagram,omitempty"`
	AlumniFacebook  *string `gorm:"column:alumni_facebook;type:varchar(150)" json:"alumni_facebook,omitempty"`
	AlumniWebsite   *string `gorm:"column:alumni_website;type:varchar(150)" json:"alumni_website,omitempty"`

	// Link opsional ke data siswa
	AlumniNIS *string `gorm:"column:alumni_nis;type:varchar(20);index" json:"alumni_nis,omitempty"`

	// Tracking perubahan data
	AlumniUpdatedBy *uuid.UUID `gorm:"column:alumni_updated_by;type:uuid" json:"alumni_updated_by,omitempty"`
	AlumniUpdatedIP *string    `gorm:"column:alumni_updated_ip;type:varchar(45)" json:"alumni_updated_ip,omitempty"`

	AlumniCreatedAt time.Time `gorm:"column:alumni_created_at;not null;autoCreateTime" json:"alumni_created_at"`
	AlumniUpdatedAt time.Time `gorm:"column:alumni_updated_at;not null;autoUpdateTime" json:"alumni_updated_at"`

	Student *studentModel.StudentModel `gorm:"foreignKey:AlumniNIS;references:StudentNIS;constraint:OnDelete:SET NULL" json:"student,omitempty"`
}

func (AlumniModel) TableName() string { return "alumni" }

// IsCurrentlyWorking: masih bekerja jika job_title & job_start terisi
// dan job_end kosong.
func (a AlumniModel) IsCurrentlyWorking() bool {
	return a.AlumniJobTitle != nil && a.AlumniJobStart != nil && a.AlumniJobEnd == nil
}
