// internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "sekolahku_backend/internals/middlewares/auth"
	routeDetails "sekolahku_backend/internals/route/details"
)

// SetupRoutes memasang seluruh route aplikasi.
// Susunan:
//   - base (/, /health) tanpa auth
//   - /api/public/* dan /api/login dkk tanpa auth
//   - sisanya di bawah AuthMiddleware, lalu digate per role
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app)

	api := app.Group("/api")

	// tanpa auth
	routeDetails.PublicRoutes(api, db)
	routeDetails.AuthRoutes(api, db)

	// dengan auth
	protected := api.Group("", authMiddleware.AuthMiddleware(db))
	routeDetails.AuthProtectedRoutes(protected, db)
	routeDetails.AdminRoutes(protected, db)
	routeDetails.GuruRoutes(protected, db)
	routeDetails.WaliRoutes(protected, db)
	routeDetails.AlumniRoutes(protected, db)
}
