// internals/features/school/students/dto/student_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/school/students/model"
)

/* =========================================================
   CREATE (admin)
   ========================================================= */

type CreateStudentRequest struct {
	NIS  string `json:"student_nis" validate:"required,min=3,max=20"`
	NISN string `json:"student_nisn" validate:"required,min=3,max=20"`
	Name string `json:"student_name" validate:"required,min=2,max=100"`

	Gender     string `json:"student_gender" validate:"required,oneof=L P"`
	BirthPlace string `json:"student_birth_place" validate:"required,max=50"`
	BirthDate  string `json:"student_birth_date" validate:"required"` // format 2006-01-02
	Religion   string `json:"student_religion" validate:"required"`

	FatherName string `json:"student_father_name" validate:"required,max=100"`
	Address    string `json:"student_address" validate:"required"`

	IjazahNumber *string `json:"student_ijazah_number" validate:"omitempty,max=50"`
	RombelAbsen  string  `json:"student_rombel_absen" validate:"required,max=10"`
}

func (r *CreateStudentRequest) Normalize() {
	r.NIS = strings.TrimSpace(r.NIS)
	r.NISN = strings.TrimSpace(r.NISN)
	r.Name = strings.TrimSpace(r.Name)
	r.Gender = strings.ToUpper(strings.TrimSpace(r.Gender))
	r.BirthPlace = strings.TrimSpace(r.BirthPlace)
	r.BirthDate = strings.TrimSpace(r.BirthDate)
	r.Religion = strings.TrimSpace(r.Religion)
	r.FatherName = strings.TrimSpace(r.FatherName)
	r.Address = strings.TrimSpace(r.Address)
	r.RombelAbsen = strings.ToUpper(strings.TrimSpace(r.RombelAbsen))
	if r.IjazahNumber != nil {
		v := strings.TrimSpace(*r.IjazahNumber)
		if v == "" {
			r.IjazahNumber = nil
		} else {
			r.IjazahNumber = &v
		}
	}
}

// ToModel validasi domain (agama, rombel, tanggal) lalu bentuk model.
func (r CreateStudentRequest) ToModel() (*m.StudentModel, error) {
	if !m.IsValidReligion(r.Religion) {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Agama tidak dikenal")
	}
	if !m.RombelAbsenRE.MatchString(r.RombelAbsen) {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Format rombel_absen tidak valid (contoh: X-1-07)")
	}
	birthDate, err := time.Parse("2006-01-02", r.BirthDate)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Format tanggal lahir tidak valid (YYYY-MM-DD)")
	}

	return &m.StudentModel{
		StudentNIS:          r.NIS,
		StudentNISN:         r.NISN,
		StudentName:         r.Name,
		StudentGender:       r.Gender,
		StudentBirthPlace:   r.BirthPlace,
		StudentBirthDate:    birthDate,
		StudentReligion:     r.Religion,
		StudentFatherName:   r.FatherName,
		StudentAddress:      r.Address,
		StudentIjazahNumber: r.IjazahNumber,
		StudentRombelAbsen:  r.RombelAbsen,
	}, nil
}

/* =========================================================
   UPDATE (partial; NIS immutable)
   ========================================================= */

type UpdateStudentRequest struct {
	NISN *string `json:"student_nisn" validate:"omitempty,min=3,max=20"`
	Name *string `json:"student_name" validate:"omitempty,min=2,max=100"`

	Gender     *string `json:"student_gender" validate:"omitempty,oneof=L P"`
	BirthPlace *string `json:"student_birth_place" validate:"omitempty,max=50"`
	BirthDate  *string `json:"student_birth_date" validate:"omitempty"`
	Religion   *string `json:"student_religion" validate:"omitempty"`

	FatherName *string `json:"student_father_name" validate:"omitempty,max=100"`
	Address    *string `json:"student_address" validate:"omitempty"`

	IjazahNumber *string `json:"student_ijazah_number" validate:"omitempty,max=50"`
	RombelAbsen  *string `json:"student_rombel_absen" validate:"omitempty,max=10"`
}

func (r *UpdateStudentRequest) Normalize() {
	trim := func(p **string, upper bool) {
		if *p == nil {
			return
		}
		v := strings.TrimSpace(**p)
		if upper {
			v = strings.ToUpper(v)
		}
		*p = &v
	}
	trim(&r.NISN, false)
	trim(&r.Name, false)
	trim(&r.Gender, true)
	trim(&r.BirthPlace, false)
	trim(&r.BirthDate, false)
	trim(&r.Religion, false)
	trim(&r.FatherName, false)
	trim(&r.Address, false)
	trim(&r.IjazahNumber, false)
	trim(&r.RombelAbsen, true)
}

// Apply menerapkan field yang terisi ke model, dengan validasi domain.
func (r UpdateStudentRequest) Apply(s *m.StudentModel) error {
	if r.NISN != nil {
		s.StudentNISN = *r.NISN
	}
	if r.Name != nil {
		s.StudentName = *r.Name
	}
	if r.Gender != nil {
		s.StudentGender = *r.Gender
	}
	if r.BirthPlace != nil {
		s.StudentBirthPlace = *r.BirthPlace
	}
	if r.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *r.BirthDate)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Format tanggal lahir tidak valid (YYYY-MM-DD)")
		}
		s.StudentBirthDate = birthDate
	}
	if r.Religion != nil {
		if !m.IsValidReligion(*r.Religion) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Agama tidak dikenal")
		}
		s.StudentReligion = *r.Religion
	}
	if r.FatherName != nil {
		s.StudentFatherName = *r.FatherName
	}
	if r.Address != nil {
		s.StudentAddress = *r.Address
	}
	if r.IjazahNumber != nil {
		if *r.IjazahNumber == "" {
			s.StudentIjazahNumber = nil
		} else {
			s.StudentIjazahNumber = r.IjazahNumber
		}
	}
	if r.RombelAbsen != nil {
		if !m.RombelAbsenRE.MatchString(*r.RombelAbsen) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Format rombel_absen tidak valid (contoh: X-1-07)")
		}
		s.StudentRombelAbsen = *r.RombelAbsen
	}
	return nil
}

/* =========================================================
   RESPONSES
   ========================================================= */

type StudentResponse struct {
	NIS  string `json:"student_nis"`
	NISN string `json:"student_nisn"`
	Name string `json:"student_name"`

	Gender     string    `json:"student_gender"`
	GenderName string    `json:"student_gender_name"`
	BirthPlace string    `json:"student_birth_place"`
	BirthDate  time.Time `json:"student_birth_date"`
	Religion   string    `json:"student_religion"`

	FatherName string `json:"student_father_name"`
	Address    string `json:"student_address"`

	IjazahNumber *string `json:"student_ijazah_number,omitempty"`
	RombelAbsen  string  `json:"student_rombel_absen"`
	Class        string  `json:"student_class"`
	AbsenNumber  string  `json:"student_absen_number"`

	LastEditedBy *uuid.UUID `json:"student_last_edited_by,omitempty"`
	LastEditedAt *time.Time `json:"student_last_edited_at,omitempty"`
	CreatedAt    time.Time  `json:"student_created_at"`
	UpdatedAt    time.Time  `json:"student_updated_at"`
}

func FromStudentModel(s m.StudentModel) StudentResponse {
	return StudentResponse{
		NIS:          s.StudentNIS,
		NISN:         s.StudentNISN,
		Name:         s.StudentName,
		Gender:       s.StudentGender,
		GenderName:   m.Genders[s.StudentGender],
		BirthPlace:   s.StudentBirthPlace,
		BirthDate:    s.StudentBirthDate,
		Religion:     s.StudentReligion,
		FatherName:   s.StudentFatherName,
		Address:      s.StudentAddress,
		IjazahNumber: s.StudentIjazahNumber,
		RombelAbsen:  s.StudentRombelAbsen,
		Class:        s.Class(),
		AbsenNumber:  s.AbsenNumber(),
		LastEditedBy: s.StudentLastEditedBy,
		LastEditedAt: s.StudentLastEditedAt,
		CreatedAt:    s.StudentCreatedAt,
		UpdatedAt:    s.StudentUpdatedAt,
	}
}

func FromStudentModels(items []m.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(items))
	for _, it := range items {
		out = append(out, FromStudentModel(it))
	}
	return out
}

// PublicStudentResponse: subset aman untuk endpoint publik
// (tanpa alamat, tanggal lahir, nama ayah, NISN).
type PublicStudentResponse struct {
	NIS         string `json:"student_nis"`
	Name        string `json:"student_name"`
	Gender      string `json:"student_gender"`
	RombelAbsen string `json:"student_rombel_absen"`
	Class       string `json:"student_class"`
}

func ToPublicStudent(s m.StudentModel) PublicStudentResponse {
	return PublicStudentResponse{
		NIS:         s.StudentNIS,
		Name:        s.StudentName,
		Gender:      s.StudentGender,
		RombelAbsen: s.StudentRombelAbsen,
		Class:       s.Class(),
	}
}

func ToPublicStudents(items []m.StudentModel) []PublicStudentResponse {
	out := make([]PublicStudentResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToPublicStudent(it))
	}
	return out
}
