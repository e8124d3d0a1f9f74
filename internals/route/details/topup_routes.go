package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	topupController "courtclub_backend/internals/features/payment/topups/controller"
)

// TopupPublicRoutes: daftar paket + webhook Midtrans
func TopupPublicRoutes(api fiber.Router, public fiber.Router, db *gorm.DB) {
	ctrl := topupController.NewTopupController(db)

	public.Get("/topup-packages", ctrl.GetPackages)

	// Webhook gateway — path ini di-skip AuthMiddleware
	api.Post("/payments/notification", ctrl.HandleNotification)
}

// TopupMemberRoutes: order top-up + riwayat
func TopupMemberRoutes(member fiber.Router, db *gorm.DB) {
	ctrl := topupController.NewTopupController(db)

	topups := member.Group("/topups")
	topups.Post("/", ctrl.CreateTopup)
	topups.Get("/", ctrl.GetMyTopups)
}
