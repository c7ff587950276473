package database

import (
	"log"

	"gorm.io/gorm"

	alumniModel "sekolahku_backend/internals/features/alumni/model"
	notificationModel "sekolahku_backend/internals/features/notifications/model"
	gradeModel "sekolahku_backend/internals/features/school/grades/model"
	studentModel "sekolahku_backend/internals/features/school/students/model"
	subjectModel "sekolahku_backend/internals/features/school/subjects/model"
	authModel "sekolahku_backend/internals/features/users/auth/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

// Migrate menjalankan AutoMigrate semua model + constraint tambahan
// yang tidak bisa dinyatakan lewat tag gorm.
func Migrate(db *gorm.DB) {
	log.Println("🛠  Menjalankan migrasi database...")

	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&subjectModel.SubjectModel{},
		&studentModel.StudentModel{},
		&gradeModel.GradeModel{},
		&gradeModel.GradeSummaryModel{},
		&alumniModel.AlumniModel{},
		&notificationModel.NotificationModel{},
		&authModel.RefreshTokenModel{},
		&authModel.TokenBlacklist{},
	); err != nil {
		log.Fatalf("❌ Migrasi gagal: %v", err)
	}

	// CHECK constraint nilai 0-100 (idempotent)
	db.Exec(`
		DO $$ BEGIN
			ALTER TABLE grades ADD CONSTRAINT check_grade_score_range
				CHECK (grade_score >= 0 AND grade_score <= 100);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$;
	`)

	log.Println("✅ Migrasi selesai.")
}
