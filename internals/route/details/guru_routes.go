// internals/route/details/guru_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	gradeController "sekolahku_backend/internals/features/school/grades/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// GuruRoutes: guru mengelola nilai mapel yang diampunya.
// Scoping ke mapel terjadi di service lewat Actor, bukan di route.
func GuruRoutes(api fiber.Router, db *gorm.DB) {
	gradeCtrl := &gradeController.GradeController{DB: db}

	guruGate := authMiddleware.OnlyRoles(
		constants.RoleErrorGuru("nilai mata pelajaran"),
		constants.RoleGuru,
	)

	myGrades := api.Group("/my-grades", guruGate)
	myGrades.Get("/", gradeCtrl.ListGrades)
	myGrades.Get("/:id", gradeCtrl.GetGrade)
	myGrades.Post("/", gradeCtrl.CreateGrade)
	myGrades.Put("/:id", gradeCtrl.UpdateGrade)
	myGrades.Delete("/:id", gradeCtrl.DeleteGrade)
}
