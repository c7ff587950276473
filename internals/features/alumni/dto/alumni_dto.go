// internals/features/alumni/dto/alumni_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/alumni/model"
)

const dateLayout = "2006-01-02"

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func parseDatePtr(p *string, field string) (*time.Time, error) {
	p = trimPtr(p)
	if p == nil {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *p)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Format "+field+" tidak valid (YYYY-MM-DD)")
	}
	return &t, nil
}

/* =========================================================
   CREATE (admin)
   ========================================================= */

type CreateAlumniRequest struct {
	NIM            string `json:"alumni_nim" validate:"required,min=3,max=20"`
	Name           string `json:"alumni_name" validate:"required,min=2,max=100"`
	GraduationYear *int   `json:"alumni_graduation_year" validate:"omitempty,gte=1990,lte=2100"`

	University *string `json:"alumni_university" validate:"omitempty,max=100"`
	JobTitle   *string `json:"alumni_job_title" validate:"omitempty,max=100"`
	JobStart   *string `json:"alumni_job_start" validate:"omitempty"`
	JobEnd     *string `json:"alumni_job_end" validate:"omitempty"`

	Phone     *string `json:"alumni_phone" validate:"omitempty,max=30"`
	Email     *string `json:"alumni_email" validate:"omitempty,email,max=100"`
	Linkedin  *string `json:"alumni_linkedin" validate:"omitempty,max=150"`
	Instagram *string `json:"alumni_instagram" validate:"omitempty,max=150"`
	Facebook  *string `json:"alumni_facebook" validate:"omitempty,max=150"`
	Website   *string `json:"alumni_website" validate:"omitempty,max=150"`

	NIS *string `json:"alumni_nis" validate:"omitempty,max=20"`
}

func (r *CreateAlumniRequest) Normalize() {
	r.NIM = strings.TrimSpace(r.NIM)
	r.Name = strings.TrimSpace(r.Name)
	r.University = trimPtr(r.University)
	r.JobTitle = trimPtr(r.JobTitle)
	r.Phone = trimPtr(r.Phone)
	r.Email = trimPtr(r.Email)
	r.Linkedin = trimPtr(r.Linkedin)
	r.Instagram = trimPtr(r.Instagram)
	r.Facebook = trimPtr(r.Facebook)
	r.Website = trimPtr(r.Website)
	r.NIS = trimPtr(r.NIS)
}

func (r CreateAlumniRequest) ToModel() (*m.AlumniModel, error) {
	jobStart, err := parseDatePtr(r.JobStart, "alumni_job_start")
	if err != nil {
		return nil, err
	}
	jobEnd, err := parseDatePtr(r.JobEnd, "alumni_job_end")
	if err != nil {
		return nil, err
	}
	return &m.AlumniModel{
		AlumniNIM:            r.NIM,
		AlumniName:           r.Name,
		AlumniGraduationYear: r.GraduationYear,
		AlumniUniversity:     r.University,
		AlumniJobTitle:       r.JobTitle,
		AlumniJobStart:       jobStart,
		AlumniJobEnd:         jobEnd,
		AlumniPhone:          r.Phone,
		AlumniEmail:          r.Email,
		AlumniLinkedin:       r.Linkedin,
		AlumniInstagram:      r.Instagram,
		AlumniFacebook:       r.Facebook,
		AlumniWebsite:        r.Website,
		AlumniNIS:            r.NIS,
	}, nil
}

/* =========================================================
   UPDATE (admin, partial; NIM immutable)
   ========================================================= */

type UpdateAlumniRequest struct {
	Name           *string `json:"alumni_name" validate:"omitempty,min=2,max=100"`
	GraduationYear *int    `json:"alumni_graduation_year" validate:"omitempty,gte=1990,lte=2100"`

	University *string `json:"alumni_university" validate:"omitempty,max=100"`
	JobTitle   *string `json:"alumni_job_title" validate:"omitempty,max=100"`
	JobStart   *string `json:"alumni_job_start" validate:"omitempty"`
	JobEnd     *string `json:"alumni_job_end" validate:"omitempty"`

	Phone     *string `json:"alumni_phone" validate:"omitempty,max=30"`
	Email     *string `json:"alumni_email" validate:"omitempty,email,max=100"`
	Linkedin  *string `json:"alumni_linkedin" validate:"omitempty,max=150"`
	Instagram *string `json:"alumni_instagram" validate:"omitempty,max=150"`
	Facebook  *string `json:"alumni_facebook" validate:"omitempty,max=150"`
	Website   *string `json:"alumni_website" validate:"omitempty,max=150"`

	NIS *string `json:"alumni_nis" validate:"omitempty,max=20"`
}

func (r UpdateAlumniRequest) Apply(a *m.AlumniModel) error {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		a.AlumniName = v
	}
	if r.GraduationYear != nil {
		a.AlumniGraduationYear = r.GraduationYear
	}
	if r.University != nil {
		a.AlumniUniversity = trimPtr(r.University)
	}
	if r.JobTitle != nil {
		a.AlumniJobTitle = trimPtr(r.JobTitle)
	}
	if r.JobStart != nil {
		t, err := parseDatePtr(r.JobStart, "alumni_job_start")
		if err != nil {
			return err
		}
		a.AlumniJobStart = t
	}
	if r.JobEnd != nil {
		t, err := parseDatePtr(r.JobEnd, "alumni_job_end")
		if err != nil {
			return err
		}
		a.AlumniJobEnd = t
	}
	if r.Phone != nil {
		a.AlumniPhone = trimPtr(r.Phone)
	}
	if r.Email != nil {
		a.AlumniEmail = trimPtr(r.Email)
	}
	if r.Linkedin != nil {
		a.AlumniLinkedin = trimPtr(r.Linkedin)
	}
	if r.Instagram != nil {
		a.AlumniInstagram = trimPtr(r.Instagram)
	}
	if r.Facebook != nil {
		a.AlumniFacebook = trimPtr(r.Facebook)
	}
	if r.Website != nil {
		a.AlumniWebsite = trimPtr(r.Website)
	}
	if r.NIS != nil {
		a.AlumniNIS = trimPtr(r.NIS)
	}
	return nil
}

/* =========================================================
   MY PROFILE (role alumni; subset field karir & kontak saja,
   identitas & link NIS tetap urusan admin)
   ========================================================= */

type UpdateMyProfileRequest struct {
	University *string `json:"alumni_university" validate:"omitempty,max=100"`
	JobTitle   *string `json:"alumni_job_title" validate:"omitempty,max=100"`
	JobStart   *string `json:"alumni_job_start" validate:"omitempty"`
	JobEnd     *string `json:"alumni_job_end" validate:"omitempty"`

	Phone     *string `json:"alumni_phone" validate:"omitempty,max=30"`
	Email     *string `json:"alumni_email" validate:"omitempty,email,max=100"`
	Linkedin  *string `json:"alumni_linkedin" validate:"omitempty,max=150"`
	Instagram *string `json:"alumni_instagram" validate:"omitempty,max=150"`
	Facebook  *string `json:"alumni_facebook" validate:"omitempty,max=150"`
	Website   *string `json:"alumni_website" validate:"omitempty,max=150"`
}

// ChangedFields mengembalikan nama field JSON yang dikirim pada request
// (dipakai sebagai payload notifikasi admin).
func (r UpdateMyProfileRequest) ChangedFields() []string {
	fields := []string{}
	add := func(name string, p *string) {
		if p != nil {
			fields = append(fields, name)
		}
	}
	add("alumni_university", r.University)
	add("alumni_job_title", r.JobTitle)
	add("alumni_job_start", r.JobStart)
	add("alumni_job_end", r.JobEnd)
	add("alumni_phone", r.Phone)
	add("alumni_email", r.Email)
	add("alumni_linkedin", r.Linkedin)
	add("alumni_instagram", r.Instagram)
	add("alumni_facebook", r.Facebook)
	add("alumni_website", r.Website)
	return fields
}

func (r UpdateMyProfileRequest) Apply(a *m.AlumniModel) error {
	full := UpdateAlumniRequest{
		University: r.University,
		JobTitle:   r.JobTitle,
		JobStart:   r.JobStart,
		JobEnd:     r.JobEnd,
		Phone:      r.Phone,
		Email:      r.Email,
		Linkedin:   r.Linkedin,
		Instagram:  r.Instagram,
		Facebook:   r.Facebook,
		Website:    r.Website,
	}
	return full.Apply(a)
}

/* =========================================================
   RESPONSES
   ========================================================= */

type AlumniResponse struct {
	NIM            string `json:"alumni_nim"`
	Name           string `json:"alumni_name"`
	GraduationYear *int   `json:"alumni_graduation_year,omitempty"`

	University *string    `json:"alumni_university,omitempty"`
	JobTitle   *string    `json:"alumni_job_title,omitempty"`
	JobStart   *time.Time `json:"alumni_job_start,omitempty"`
	JobEnd     *time.Time `json:"alumni_job_end,omitempty"`

	Phone     *string `json:"alumni_phone,omitempty"`
	Email     *string `json:"alumni_email,omitempty"`
	Linkedin  *string `json:"alumni_linkedin,omitempty"`
	Instagram *string `json:"alumni_instagram,omitempty"`
	Facebook  *string `json:"alumni_facebook,omitempty"`
	Website   *string `json:"alumni_website,omitempty"`

	NIS *string `json:"alumni_nis,omitempty"`

	IsCurrentlyWorking bool `json:"is_currently_working"`

	UpdatedBy *uuid.UUID `json:"alumni_updated_by,omitempty"`
	CreatedAt time.Time  `json:"alumni_created_at"`
	UpdatedAt time.Time  `json:"alumni_updated_at"`
}

func FromAlumniModel(a m.AlumniModel) AlumniResponse {
	return AlumniResponse{
		NIM:                a.AlumniNIM,
		Name:               a.AlumniName,
		GraduationYear:     a.AlumniGraduationYear,
		University:         a.AlumniUniversity,
		JobTitle:           a.AlumniJobTitle,
		JobStart:           a.AlumniJobStart,
		JobEnd:             a.AlumniJobEnd,
		Phone:              a.AlumniPhone,
		Email:              a.AlumniEmail,
		Linkedin:           a.AlumniLinkedin,
		Instagram:          a.AlumniInstagram,
		Facebook:           a.AlumniFacebook,
		Website:            a.AlumniWebsite,
		NIS:                a.AlumniNIS,
		IsCurrentlyWorking: a.IsCurrentlyWorking(),
		UpdatedBy:          a.AlumniUpdatedBy,
		CreatedAt:          a.AlumniCreatedAt,
		UpdatedAt:          a.AlumniUpdatedAt,
	}
}

func FromAlumniModels(items []m.AlumniModel) []AlumniResponse {
	out := make([]AlumniResponse, 0, len(items))
	for _, it := range items {
		out = append(out, FromAlumniModel(it))
	}
	return out
}

// PublicAlumniResponse: subset aman untuk endpoint publik
// (tanpa kontak pribadi).
type PublicAlumniResponse struct {
	NIM                string  `json:"alumni_nim"`
	Name               string  `json:"alumni_name"`
	GraduationYear     *int    `json:"alumni_graduation_year,omitempty"`
	University         *string `json:"alumni_university,omitempty"`
	JobTitle           *string `json:"alumni_job_title,omitempty"`
	IsCurrentlyWorking bool    `json:"is_currently_working"`
}

func ToPublicAlumni(a m.AlumniModel) PublicAlumniResponse {
	return PublicAlumniResponse{
		NIM:                a.AlumniNIM,
		Name:               a.AlumniName,
		GraduationYear:     a.AlumniGraduationYear,
		University:         a.AlumniUniversity,
		JobTitle:           a.AlumniJobTitle,
		IsCurrentlyWorking: a.IsCurrentlyWorking(),
	}
}

func ToPublicAlumnis(items []m.AlumniModel) []PublicAlumniResponse {
	out := make([]PublicAlumniResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToPublicAlumni(it))
	}
	return out
}
