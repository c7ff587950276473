// internals/seeds/runner.go
package seeds

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/constants"
	subjectModel "sekolahku_backend/internals/features/school/subjects/model"
	authService "sekolahku_backend/internals/features/users/auth/service"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

// Daftar mapel bawaan (idempotent, FirstOrCreate per nama)
var defaultSubjects = []struct {
	Name string
	Code string
}{
	{"Matematika", "MTK"},
	{"Bahasa Indonesia", "BIN"},
	{"Bahasa Inggris", "BIG"},
	{"Fisika", "FIS"},
	{"Kimia", "KIM"},
	{"Biologi", "BIO"},
	{"Sejarah", "SEJ"},
	{"Geografi", "GEO"},
	{"Ekonomi", "EKO"},
	{"Sosiologi", "SOS"},
	{"Pendidikan Agama", "PAI"},
	{"Pendidikan Kewarganegaraan", "PKN"},
	{"Pendidikan Jasmani", "PJK"},
	{"Seni Budaya", "SBD"},
	{"Informatika", "INF"},
}

// Run menjalankan seluruh seeder. Aman dipanggil berulang.
func Run(db *gorm.DB) error {
	if err := seedSubjects(db); err != nil {
		return err
	}
	return seedAdminUser(db)
}

func seedSubjects(db *gorm.DB) error {
	for _, s := range defaultSubjects {
		code := s.Code
		row := subjectModel.SubjectModel{
			SubjectName: s.Name,
			SubjectCode: &code,
		}
		if err := db.
			Where("subject_name = ?", s.Name).
			FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}
	log.Printf("🌱 Seeder mapel selesai (%d entri)", len(defaultSubjects))
	return nil
}

// seedAdminUser membuat akun admin pertama dari env. Dilewati kalau
// env tidak lengkap atau email sudah terdaftar.
func seedAdminUser(db *gorm.DB) error {
	email := configs.GetEnv("ADMIN_EMAIL")
	password := configs.GetEnv("ADMIN_PASSWORD")
	name := configs.GetEnv("ADMIN_NAME", "Administrator")

	if email == "" || password == "" {
		log.Println("⚠️ ADMIN_EMAIL/ADMIN_PASSWORD tidak diset, skip seeder admin")
		return nil
	}

	var existing userModel.UserModel
	err := db.First(&existing, "user_email = ?", email).Error
	if err == nil {
		return nil // sudah ada
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := authService.HashPassword(password)
	if err != nil {
		return err
	}

	admin := userModel.UserModel{
		UserName:     name,
		UserEmail:    email,
		UserPassword: hashed,
		UserRole:     constants.RoleAdmin,
	}
	if err := admin.Validate(); err != nil {
		return err
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("🌱 Akun admin %s dibuat", email)
	return nil
}
