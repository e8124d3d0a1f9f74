package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookingController "courtclub_backend/internals/features/bookings/controller"
)

// BookingPublicRoutes: ketersediaan slot (tanpa login)
func BookingPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctrl := bookingController.NewBookingController(db)
	public.Get("/slots", ctrl.GetSlotAvailability)
}

// BookingMemberRoutes: booking milik member
func BookingMemberRoutes(member fiber.Router, db *gorm.DB) {
	ctrl := bookingController.NewBookingController(db)

	bookings := member.Group("/bookings")
	bookings.Post("/", ctrl.CreateBooking)
	bookings.Get("/", ctrl.GetMyBookings)
	bookings.Delete("/:id", ctrl.CancelBooking)
}

// BookingAdminRoutes: overview semua booking
func BookingAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := bookingController.NewBookingController(db)
	admin.Get("/bookings", ctrl.GetAllBookings)
}
