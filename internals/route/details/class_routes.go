package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classController "courtclub_backend/internals/features/classes/controller"
)

// ClassPublicRoutes: daftar & detail kelas (dengan enrolled count live)
func ClassPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctrl := classController.NewClassController(db)

	classes := public.Group("/classes")
	classes.Get("/", ctrl.GetAllClasses)
	classes.Get("/:id", ctrl.GetClassByID)
}

// ClassAdminRoutes: kelola kelas (create + cascade delete dengan refund)
func ClassAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := classController.NewClassController(db)

	classes := admin.Group("/classes")
	classes.Post("/", ctrl.CreateClass)
	classes.Delete("/:id", ctrl.DeleteClass)
}
