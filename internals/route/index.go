// internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"courtclub_backend/internals/constants"
	authMiddleware "courtclub_backend/internals/middlewares/auth"
	"courtclub_backend/internals/route/details"
)

// SetupRoutes pasang seluruh route aplikasi:
//
//	/api/auth/...   publik (register/login/logout)
//	/api/public/... publik (kelas, slot, paket top-up)
//	/api/u/...      member login
//	/api/a/...      admin
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	// ===== Publik =====
	details.AuthRoutes(api, db)

	public := api.Group("/public")
	details.ClassPublicRoutes(public, db)
	details.BookingPublicRoutes(public, db)
	details.TopupPublicRoutes(api, public, db)

	// ===== Member (wajib login) =====
	member := api.Group("/u", authMiddleware.AuthMiddleware())
	details.UserMemberRoutes(member, db)
	details.BookingMemberRoutes(member, db)
	details.TopupMemberRoutes(member, db)

	// ===== Admin =====
	admin := api.Group("/a",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("manajemen klub"), constants.AdminOnly...),
	)
	details.UserAdminRoutes(admin, db)
	details.BookingAdminRoutes(admin, db)
	details.ClassAdminRoutes(admin, db)
}
