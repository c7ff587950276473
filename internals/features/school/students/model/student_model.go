// internals/features/school/students/model/student_model.go
package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Jenis kelamin yang valid
var Genders = map[string]string{
	"L": "Laki-laki",
	"P": "Perempuan",
}

// Agama yang valid (closed set)
var Religions = []string{
	"Islam",
	"Kristen",
	"Katolik",
	"Hindu",
	"Buddha",
	"Konghucu",
}

// Format rombel_absen: {tingkat}-{rombel}-{absen}, misal X-1-07
var RombelAbsenRE = regexp.MustCompile(`^(X|XI|XII)-\d+-\d+$`)

func IsValidReligion(r string) bool {
	for _, v := range Religions {
		if v == r {
			return true
		}
	}
	return false
}

// StudentModel: data induk siswa (format Model 8355).
// NIS dipakai sebagai primary key (string, diberikan dari luar, immutable).
type StudentModel struct {
	StudentNIS  string `gorm:"column:student_nis;type:varchar(20);primaryKey" json:"student_nis"`
	StudentNISN string `gorm:"column:student_nisn;type:varchar(20);not null;uniqueIndex" json:"student_nisn"`
	StudentName string `gorm:"column:student_name;type:varchar(100);not null;index" json:"student_name"`

	StudentGender     string    `gorm:"column:student_gender;type:varchar(1);not null;index" json:"student_gender"`
	StudentBirthPlace string    `gorm:"column:student_birth_place;type:varchar(50);not null" json:"student_birth_place"`
	StudentBirthDate  time.Time `gorm:"column:student_birth_date;type:date;not null" json:"student_birth_date"`
	StudentReligion   string    `gorm:"column:student_religion;type:varchar(20);not null;default:Islam" json:"student_religion"`

	StudentFatherName string `gorm:"column:student_father_name;type:varchar(100);not null" json:"student_father_name"`
	StudentAddress    string `gorm:"column:student_address;type:text;not null" json:"student_address"`

	StudentIjazahNumber *string `gorm:"column:student_ijazah_number;type:varchar(50)" json:"student_ijazah_number,omitempty"`
	StudentRombelAbsen  string  `gorm:"column:student_rombel_absen;type:varchar(10);not null;index" json:"student_rombel_absen"`

	// Tracking perubahan data
	StudentLastEditedBy *uuid.UUID `gorm:"column:student_last_edited_by;type:uuid" json:"student_last_edited_by,omitempty"`
	StudentLastEditedIP *string    `gorm:"column:student_last_edited_ip;type:varchar(45)" json:"student_last_edited_ip,omitempty"`
	StudentLastEditedAt *time.Time `gorm:"column:student_last_edited_at" json:"student_last_edited_at,omitempty"`

	StudentCreatedAt time.Time `gorm:"column:student_created_at;not null;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"column:student_updated_at;not null;autoUpdateTime" json:"student_updated_at"`
}

func (StudentModel) TableName() string { return "students" }

// Class mengambil kelas dari rombel_absen (misal: X-1-01 → X-1)
func (s StudentModel) Class() string {
	return ClassFromRombel(s.StudentRombelAbsen)
}

// AbsenNumber mengambil nomor absen dari rombel_absen (misal: X-1-01 → 01)
func (s StudentModel) AbsenNumber() string {
	parts := strings.Split(s.StudentRombelAbsen, "-")
	if len(parts) >= 3 {
		return parts[2]
	}
	return ""
}

// ClassFromRombel memotong dua komponen pertama rombel_absen.
func ClassFromRombel(rombel string) string {
	parts := strings.Split(rombel, "-")
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return rombel
}
