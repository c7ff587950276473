// internals/features/school/grades/service/summary_service.go
package service

import (
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	gradeModel "sekolahku_backend/internals/features/school/grades/model"
)

// Round2 membulatkan ke 2 digit desimal.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeStats menghitung total & rata-rata (2 desimal) dari kumpulan score.
func ComputeStats(scores []int) (total int, average float64) {
	if len(scores) == 0 {
		return 0, 0
	}
	for _, s := range scores {
		total += s
	}
	average = Round2(float64(total) / float64(len(scores)))
	return total, average
}

// RecomputeSummary menghitung ulang ringkasan (student, semester) dari baris
// grades SAAT INI — selalu full recompute, tidak pernah incremental patch,
// sehingga idempoten. WAJIB dipanggil dalam transaksi yang sama dengan mutasi
// grade pemicunya; error di sini membatalkan seluruh transaksi (summary dan
// sumbernya tidak boleh divergen).
//
// Jika tidak ada grade tersisa untuk pasangan itu, baris summary DIHAPUS.
func RecomputeSummary(tx *gorm.DB, studentNIS, semester string) error {
	var scores []int
	if err := tx.Model(&gradeModel.GradeModel{}).
		Where("grade_student_id = ? AND grade_semester = ?", studentNIS, semester).
		Pluck("grade_score", &scores).Error; err != nil {
		return err
	}

	if len(scores) == 0 {
		return tx.
			Where("grade_summary_student_id = ? AND grade_summary_semester = ?", studentNIS, semester).
			Delete(&gradeModel.GradeSummaryModel{}).Error
	}

	total, average := ComputeStats(scores)
	now := time.Now()

	summary := gradeModel.GradeSummaryModel{
		GradeSummaryStudentID:    studentNIS,
		GradeSummarySemester:     semester,
		GradeSummaryTotalScore:   total,
		GradeSummaryAverageScore: average,
		GradeSummaryCalculatedAt: now,
	}

	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "grade_summary_student_id"},
			{Name: "grade_summary_semester"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"grade_summary_total_score":   total,
			"grade_summary_average_score": average,
			"grade_summary_calculated_at": now,
			"grade_summary_updated_at":    now,
		}),
	}).Create(&summary).Error
}
