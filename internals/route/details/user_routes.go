package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "courtclub_backend/internals/features/users/user/controller"
)

// UserMemberRoutes: profil sendiri
func UserMemberRoutes(member fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	users := member.Group("/users")
	users.Get("/me", ctrl.GetMe)
	users.Patch("/me", ctrl.UpdateMe)
}

// UserAdminRoutes: daftar user + koreksi saldo kredit
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	users := admin.Group("/users")
	users.Get("/", ctrl.GetAllUsers)
	users.Patch("/:id/credits", ctrl.AdjustCredits)
}
