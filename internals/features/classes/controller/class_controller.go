// internals/features/classes/controller/class_controller.go
package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	service "courtclub_backend/internals/features/bookings/service"
	"courtclub_backend/internals/features/classes/dto"
	helper "courtclub_backend/internals/helpers"
)

var validate = validator.New()

type ClassController struct {
	DB     *gorm.DB
	Ledger *service.LedgerService
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db, Ledger: service.NewLedgerService(db)}
}

// GET /api/public/classes — kelas + jumlah peserta live
func (ctrl *ClassController) GetAllClasses(c *fiber.Ctx) error {
	rows, err := ctrl.Ledger.ListClasses(c.Context())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data kelas")
	}
	return helper.JsonList(c, "Daftar kelas", rows, nil)
}

// GET /api/public/classes/:id
func (ctrl *ClassController) GetClassByID(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	cls, err := ctrl.Ledger.GetClassWithEnrollment(c.Context(), classID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail kelas", cls)
}

// POST /api/a/classes — admin
func (ctrl *ClassController) CreateClass(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		fieldErrors := map[string][]string{}
		for _, fe := range err.(validator.ValidationErrors) {
			fieldErrors[fe.Field()] = append(fieldErrors[fe.Field()], "Field tidak valid: "+fe.Tag())
		}
		return helper.JsonValidationError(c, fieldErrors)
	}

	cls, err := ctrl.Ledger.CreateClass(c.Context(), req.ClassName, req.ClassDate, req.ClassTime, req.ClassMaxCapacity, req.ClassCreditCost)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("✅ Kelas dibuat: %s (%s %s)\n", cls.ClassName, cls.ClassDate, cls.ClassTime)
	return helper.JsonCreated(c, "Kelas berhasil dibuat", cls)
}

// DELETE /api/a/classes/:id — admin
// Cascade: semua booking peserta dihapus dan kreditnya dikembalikan, atomik.
func (ctrl *ClassController) DeleteClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	refunded, err := ctrl.Ledger.DeleteClass(c.Context(), classID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("✅ Kelas %s dihapus, %d peserta di-refund\n", classID, refunded)
	return helper.JsonDeleted(c, "Kelas dihapus, peserta di-refund", fiber.Map{
		"class_id":         classID,
		"refunded_members": refunded,
	})
}
