// internals/route/details/admin_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	alumniController "sekolahku_backend/internals/features/alumni/controller"
	notificationController "sekolahku_backend/internals/features/notifications/controller"
	gradeController "sekolahku_backend/internals/features/school/grades/controller"
	studentController "sekolahku_backend/internals/features/school/students/controller"
	subjectController "sekolahku_backend/internals/features/school/subjects/controller"
	userController "sekolahku_backend/internals/features/users/user/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// AdminRoutes: seluruh endpoint manajemen (gate role admin).
// Catatan: GET /subjects dibuka untuk semua role terautentikasi.
func AdminRoutes(api fiber.Router, db *gorm.DB) {
	subjectCtrl := &subjectController.SubjectController{DB: db}
	studentCtrl := &studentController.StudentController{DB: db}
	gradeCtrl := &gradeController.GradeController{DB: db}
	summaryCtrl := &gradeController.GradeSummaryController{DB: db}
	userCtrl := &userController.UserController{DB: db}
	alumniCtrl := &alumniController.AlumniController{DB: db}
	notifCtrl := &notificationController.NotificationController{DB: db}

	// subjects: read untuk semua role, mutasi admin-only
	subjects := api.Group("/subjects")
	subjects.Get("/", subjectCtrl.ListSubjects)
	subjects.Get("/:id", subjectCtrl.GetSubject)

	adminGate := authMiddleware.OnlyRoles(
		constants.RoleErrorAdmin("manajemen data sekolah"),
		constants.AdminOnly...,
	)

	subjects.Post("/", adminGate, subjectCtrl.CreateSubject)
	subjects.Put("/:id", adminGate, subjectCtrl.UpdateSubject)
	subjects.Delete("/:id", adminGate, subjectCtrl.DeleteSubject)

	students := api.Group("/students", adminGate)
	students.Get("/", studentCtrl.ListStudents)
	students.Get("/:nis", studentCtrl.GetStudent)
	students.Post("/", studentCtrl.CreateStudent)
	students.Put("/:nis", studentCtrl.UpdateStudent)
	students.Delete("/:nis", studentCtrl.DeleteStudent)

	grades := api.Group("/grades", adminGate)
	grades.Get("/", gradeCtrl.ListGrades)
	grades.Get("/:id", gradeCtrl.GetGrade)
	grades.Post("/", gradeCtrl.CreateGrade)
	grades.Put("/:id", gradeCtrl.UpdateGrade)
	grades.Delete("/:id", gradeCtrl.DeleteGrade)

	summaries := api.Group("/grade-summaries", adminGate)
	summaries.Get("/", summaryCtrl.ListSummaries)
	summaries.Get("/:student/:semester", summaryCtrl.GetSummary)

	users := api.Group("/users", adminGate)
	users.Get("/", userCtrl.ListUsers)
	users.Get("/:id", userCtrl.GetUser)
	users.Post("/", userCtrl.CreateUser)
	users.Put("/:id", userCtrl.UpdateUser)
	users.Delete("/:id", userCtrl.DeleteUser)

	alumni := api.Group("/alumni", adminGate)
	alumni.Get("/", alumniCtrl.ListAlumni)
	alumni.Get("/:nim", alumniCtrl.GetAlumni)
	alumni.Post("/", alumniCtrl.CreateAlumni)
	alumni.Put("/:nim", alumniCtrl.UpdateAlumni)
	alumni.Delete("/:nim", alumniCtrl.DeleteAlumni)

	notifications := api.Group("/notifications", adminGate)
	notifications.Get("/", notifCtrl.ListNotifications)
	notifications.Patch("/:id/read", notifCtrl.MarkRead)
}
