// internals/route/details/alumni_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	alumniController "sekolahku_backend/internals/features/alumni/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// AlumniRoutes: alumni mengelola profilnya sendiri.
func AlumniRoutes(api fiber.Router, db *gorm.DB) {
	alumniCtrl := &alumniController.AlumniController{DB: db}

	alumniGate := authMiddleware.OnlyRoles(
		constants.RoleErrorAlumni("profil alumni"),
		constants.RoleAlumni,
	)

	profile := api.Group("/my-profile", alumniGate)
	profile.Get("/", alumniCtrl.GetMyProfile)
	profile.Put("/", alumniCtrl.UpdateMyProfile)
}
