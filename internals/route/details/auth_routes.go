// internals/route/details/auth_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "sekolahku_backend/internals/features/users/auth/controller"
	"sekolahku_backend/internals/middlewares"
)

// AuthRoutes: endpoint auth TANPA AuthMiddleware (login, refresh).
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := &authController.AuthController{DB: db}

	api.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	api.Post("/refresh-token", ctrl.RefreshToken)
}

// AuthProtectedRoutes: endpoint auth DI DALAM AuthMiddleware.
func AuthProtectedRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := &authController.AuthController{DB: db}

	api.Post("/logout", ctrl.Logout)
	api.Post("/logout-all", ctrl.LogoutAll)
	api.Get("/current-user", ctrl.CurrentUser)
}
