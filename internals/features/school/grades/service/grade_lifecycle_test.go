// internals/features/school/grades/service/grade_lifecycle_test.go
package service

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"sekolahku_backend/internals/constants"
	gradeDTO "sekolahku_backend/internals/features/school/grades/dto"
	gradeModel "sekolahku_backend/internals/features/school/grades/model"
	studentModel "sekolahku_backend/internals/features/school/students/model"
	subjectModel "sekolahku_backend/internals/features/school/subjects/model"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// Skema minimal untuk sqlite in-memory. Default gen_random_uuid tidak ada
// di sqlite, jadi ID diisi app-side (BeforeCreate / struct literal).
var gradeTestDDL = []string{
	`CREATE TABLE students (
		student_nis varchar(20) PRIMARY KEY,
		student_nisn varchar(20) NOT NULL UNIQUE,
		student_name varchar(100) NOT NULL,
		student_gender varchar(1) NOT NULL,
		student_birth_place varchar(50) NOT NULL,
		student_birth_date date NOT NULL,
		student_religion varchar(20) NOT NULL DEFAULT 'Islam',
		student_father_name varchar(100) NOT NULL,
		student_address text NOT NULL,
		student_ijazah_number varchar(50),
		student_rombel_absen varchar(10) NOT NULL,
		student_last_edited_by varchar(36),
		student_last_edited_ip varchar(45),
		student_last_edited_at datetime,
		student_created_at datetime NOT NULL,
		student_updated_at datetime NOT NULL
	)`,
	`CREATE TABLE subjects (
		subject_id varchar(36) PRIMARY KEY,
		subject_name varchar(100) NOT NULL UNIQUE,
		subject_code varchar(20),
		subject_created_by varchar(36),
		subject_created_at datetime NOT NULL,
		subject_updated_at datetime NOT NULL
	)`,
	`CREATE TABLE grades (
		grade_id varchar(36) PRIMARY KEY,
		grade_student_id varchar(20) NOT NULL,
		grade_subject_id varchar(36) NOT NULL,
		grade_semester varchar(50) NOT NULL,
		grade_score smallint NOT NULL,
		grade_last_edited_by varchar(36),
		grade_last_edited_ip varchar(45),
		grade_last_edited_at datetime,
		grade_created_at datetime NOT NULL,
		grade_updated_at datetime NOT NULL,
		CONSTRAINT grades_unique_constraint UNIQUE (grade_student_id, grade_subject_id, grade_semester)
	)`,
	`CREATE TABLE grade_summaries (
		grade_summary_id varchar(36) PRIMARY KEY,
		grade_summary_student_id varchar(20) NOT NULL,
		grade_summary_semester varchar(50) NOT NULL,
		grade_summary_total_score integer NOT NULL DEFAULT 0,
		grade_summary_average_score numeric(5,2) NOT NULL DEFAULT 0,
		grade_summary_calculated_at datetime NOT NULL,
		grade_summary_created_at datetime NOT NULL,
		grade_summary_updated_at datetime NOT NULL,
		CONSTRAINT grade_summaries_unique_constraint UNIQUE (grade_summary_student_id, grade_summary_semester)
	)`,
}

func newGradeTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// satu koneksi supaya semua statement melihat DB in-memory yang sama
	sqlDB.SetMaxOpenConns(1)

	for _, ddl := range gradeTestDDL {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, nis, rombel string) {
	t.Helper()
	require.NoError(t, db.Create(&studentModel.StudentModel{
		StudentNIS:         nis,
		StudentNISN:        "00" + nis,
		StudentName:        "Siswa " + nis,
		StudentGender:      "L",
		StudentBirthPlace:  "Bandung",
		StudentReligion:    "Islam",
		StudentFatherName:  "Ayah " + nis,
		StudentAddress:     "Jl. Test No. 1",
		StudentRombelAbsen: rombel,
	}).Error)
}

func seedSubject(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	subject := subjectModel.SubjectModel{
		SubjectID:   uuid.New(),
		SubjectName: name,
	}
	require.NoError(t, db.Create(&subject).Error)
	return subject.SubjectID
}

func adminActor() helperAuth.Actor {
	return helperAuth.Actor{UserID: uuid.New(), Role: constants.RoleAdmin}
}

func fetchSummary(db *gorm.DB, nis, semester string) (gradeModel.GradeSummaryModel, error) {
	var summary gradeModel.GradeSummaryModel
	err := db.
		Where("grade_summary_student_id = ? AND grade_summary_semester = ?", nis, semester).
		First(&summary).Error
	return summary, err
}

func requireSummary(t *testing.T, db *gorm.DB, nis, semester string, wantTotal int, wantAverage float64) {
	t.Helper()
	summary, err := fetchSummary(db, nis, semester)
	require.NoError(t, err)
	assert.Equal(t, wantTotal, summary.GradeSummaryTotalScore)
	assert.InDelta(t, wantAverage, summary.GradeSummaryAverageScore, 0.001)
}

func requireNoSummary(t *testing.T, db *gorm.DB, nis, semester string) {
	t.Helper()
	_, err := fetchSummary(db, nis, semester)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound), "summary untuk %s/%s seharusnya sudah terhapus", nis, semester)
}

func createGradeTx(t *testing.T, db *gorm.DB, actor helperAuth.Actor, req gradeDTO.CreateGradeRequest) *gradeModel.GradeModel {
	t.Helper()
	var grade *gradeModel.GradeModel
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		var err error
		grade, err = CreateGrade(tx, actor, req, "127.0.0.1")
		return err
	}))
	return grade
}

func scorePtr(v int) *int { return &v }

// Ringkasan harus selalu sama dengan hasil hitung ulang dari tabel grades
// setelah rangkaian create, update, dan delete apa pun.
func TestGradeLifecycleKeepsSummaryConsistent(t *testing.T) {
	db := newGradeTestDB(t)
	actor := adminActor()

	const (
		nis      = "8355"
		semester = "Ganjil 2024/2025"
	)
	seedStudent(t, db, nis, "X-1-07")
	mtk := seedSubject(t, db, "Matematika")
	fisika := seedSubject(t, db, "Fisika")

	// nilai pertama: summary dibuat dari satu baris
	first := createGradeTx(t, db, actor, gradeDTO.CreateGradeRequest{
		StudentID: nis,
		SubjectID: &mtk,
		Semester:  semester,
		Score:     scorePtr(80),
	})
	requireSummary(t, db, nis, semester, 80, 80.0)

	// nilai kedua di mapel lain: total & rata-rata ikut bergeser
	second := createGradeTx(t, db, actor, gradeDTO.CreateGradeRequest{
		StudentID: nis,
		SubjectID: &fisika,
		Semester:  semester,
		Score:     scorePtr(90),
	})
	requireSummary(t, db, nis, semester, 170, 85.0)

	// update score: full recompute, bukan patch inkremental
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		_, err := UpdateGrade(tx, actor, first.GradeID, gradeDTO.UpdateGradeRequest{
			Score: scorePtr(60),
		}, "127.0.0.1")
		return err
	}))
	requireSummary(t, db, nis, semester, 150, 75.0)

	// hapus satu nilai: summary menyusut ke sisa baris
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return DeleteGrade(tx, actor, first.GradeID)
	}))
	requireSummary(t, db, nis, semester, 90, 90.0)

	// hapus nilai terakhir: baris summary ikut DIHAPUS, bukan di-nol-kan
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return DeleteGrade(tx, actor, second.GradeID)
	}))
	requireNoSummary(t, db, nis, semester)
}

// Pindah semester lewat update harus recompute DUA key: key lama kempes,
// key baru terbentuk.
func TestUpdateGradeSemesterMoveRecomputesBothKeys(t *testing.T) {
	db := newGradeTestDB(t)
	actor := adminActor()

	const (
		nis    = "8356"
		ganjil = "Ganjil 2024/2025"
		genap  = "Genap 2024/2025"
	)
	seedStudent(t, db, nis, "XI-2-11")
	mtk := seedSubject(t, db, "Matematika")
	biologi := seedSubject(t, db, "Biologi")

	createGradeTx(t, db, actor, gradeDTO.CreateGradeRequest{
		StudentID: nis,
		SubjectID: &mtk,
		Semester:  ganjil,
		Score:     scorePtr(70),
	})
	moved := createGradeTx(t, db, actor, gradeDTO.CreateGradeRequest{
		StudentID: nis,
		SubjectID: &biologi,
		Semester:  ganjil,
		Score:     scorePtr(90),
	})
	requireSummary(t, db, nis, ganjil, 160, 80.0)
	requireNoSummary(t, db, nis, genap)

	sems := genap
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		_, err := UpdateGrade(tx, actor, moved.GradeID, gradeDTO.UpdateGradeRequest{
			Semester: &sems,
		}, "127.0.0.1")
		return err
	}))

	// key lama tinggal nilai yang tidak pindah
	requireSummary(t, db, nis, ganjil, 70, 70.0)
	// key baru berisi nilai yang dipindahkan
	requireSummary(t, db, nis, genap, 90, 90.0)

	// pindahkan balik: key tujuan lama harus terhapus lagi
	sems2 := ganjil
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		_, err := UpdateGrade(tx, actor, moved.GradeID, gradeDTO.UpdateGradeRequest{
			Semester: &sems2,
		}, "127.0.0.1")
		return err
	}))
	requireSummary(t, db, nis, ganjil, 160, 80.0)
	requireNoSummary(t, db, nis, genap)
}

// Duplikat (student, subject, semester) ditolak 409 dan tidak mengubah
// summary yang sudah ada.
func TestCreateGradeDuplicateRejected(t *testing.T) {
	db := newGradeTestDB(t)
	actor := adminActor()

	const (
		nis      = "8357"
		semester = "Ganjil 2024/2025"
	)
	seedStudent(t, db, nis, "XII-1-03")
	mtk := seedSubject(t, db, "Matematika")

	createGradeTx(t, db, actor, gradeDTO.CreateGradeRequest{
		StudentID: nis,
		SubjectID: &mtk,
		Semester:  semester,
		Score:     scorePtr(85),
	})

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := CreateGrade(tx, actor, gradeDTO.CreateGradeRequest{
			StudentID: nis,
			SubjectID: &mtk,
			Semester:  semester,
			Score:     scorePtr(95),
		}, "127.0.0.1")
		return err
	})
	require.Error(t, err)

	var fe *fiber.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, fiber.StatusConflict, fe.Code)

	requireSummary(t, db, nis, semester, 85, 85.0)
}
