// internals/route/details/public_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	alumniController "sekolahku_backend/internals/features/alumni/controller"
	studentController "sekolahku_backend/internals/features/school/students/controller"
)

// PublicRoutes: endpoint publik tanpa auth, response field dikurangi.
func PublicRoutes(api fiber.Router, db *gorm.DB) {
	studentCtrl := &studentController.StudentController{DB: db}
	alumniCtrl := &alumniController.AlumniController{DB: db}

	public := api.Group("/public")

	students := public.Group("/students")
	students.Get("/", studentCtrl.PublicListStudents)
	students.Get("/search", studentCtrl.PublicSearchStudents)
	students.Get("/:nis", studentCtrl.PublicGetStudent)

	alumni := public.Group("/alumni")
	alumni.Get("/", alumniCtrl.PublicListAlumni)
	alumni.Get("/search", alumniCtrl.PublicSearchAlumni)
	alumni.Get("/:nim", alumniCtrl.PublicGetAlumni)
}
