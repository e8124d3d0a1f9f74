package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "courtclub_backend/internals/features/users/auth/controller"
	"courtclub_backend/internals/middlewares"
)

// AuthRoutes: register/login/logout (publik, dengan limiter ketat)
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/logout", ctrl.Logout)
}
