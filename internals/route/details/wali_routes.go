// internals/route/details/wali_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	gradeController "sekolahku_backend/internals/features/school/grades/controller"
	studentController "sekolahku_backend/internals/features/school/students/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// WaliRoutes: wali kelas melihat & mengelola data kelasnya sendiri.
// Pembatasan ke kelas terjadi lewat Actor scope di query & policy.
func WaliRoutes(api fiber.Router, db *gorm.DB) {
	studentCtrl := &studentController.StudentController{DB: db}
	gradeCtrl := &gradeController.GradeController{DB: db}
	summaryCtrl := &gradeController.GradeSummaryController{DB: db}

	waliGate := authMiddleware.OnlyRoles(
		constants.RoleErrorWaliKelas("data kelas"),
		constants.RoleWaliKelas,
	)

	wali := api.Group("/wali", waliGate)

	wali.Get("/students", studentCtrl.ListStudents)
	wali.Get("/students/:nis", studentCtrl.GetStudent)
	wali.Put("/students/:nis", studentCtrl.UpdateStudent)

	wali.Get("/grades", gradeCtrl.ListGrades)
	wali.Get("/grades/:id", gradeCtrl.GetGrade)
	wali.Post("/grades", gradeCtrl.CreateGrade)
	wali.Put("/grades/:id", gradeCtrl.UpdateGrade)
	wali.Delete("/grades/:id", gradeCtrl.DeleteGrade)

	wali.Get("/grade-summaries", summaryCtrl.ListSummaries)
	wali.Get("/grade-summaries/:student/:semester", summaryCtrl.GetSummary)
}
