// internals/features/users/user/controller/user_controller.go
package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	service "courtclub_backend/internals/features/bookings/service"
	"courtclub_backend/internals/features/users/user/dto"
	"courtclub_backend/internals/features/users/user/model"
	helper "courtclub_backend/internals/helpers"
)

var validate = validator.New()

type UserController struct {
	DB     *gorm.DB
	Ledger *service.LedgerService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Ledger: service.NewLedgerService(db)}
}

// GET /api/u/users/me
func (ctrl *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helper.JsonOK(c, "Profil Anda", dto.NewUserResponse(&user))
}

// PATCH /api/u/users/me
func (ctrl *UserController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"user_name": {"user_name harus 3-50 karakter"},
		})
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	if req.UserName != nil {
		user.UserName = *req.UserName
	}
	if err := ctrl.DB.Model(&user).Update("user_name", user.UserName).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui profil")
	}
	return helper.JsonUpdated(c, "Profil diperbarui", dto.NewUserResponse(&user))
}

// GET /api/a/users — admin, paginated
func (ctrl *UserController) GetAllUsers(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, helper.AdminOpts)

	var total int64
	if err := ctrl.DB.Model(&model.UserModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung user")
	}

	var rows []model.UserModel
	if err := ctrl.DB.Order("created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Daftar user", dto.NewUserResponses(rows), pg)
}

// PATCH /api/a/users/:id/credits — koreksi saldo manual (lewat ledger,
// saldo tidak pernah bisa negatif)
func (ctrl *UserController) AdjustCredits(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID user tidak valid")
	}

	var req dto.AdjustCreditsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"delta": {"delta wajib diisi dan tidak boleh 0"},
		})
	}

	newBalance, err := ctrl.Ledger.AdjustCredits(c.Context(), userID, req.Delta)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("✅ Saldo user %s disesuaikan %+d, saldo baru %d\n", userID, req.Delta, newBalance)
	return helper.JsonUpdated(c, "Saldo kredit diperbarui", fiber.Map{
		"user_id": userID,
		"credits": newBalance,
	})
}
