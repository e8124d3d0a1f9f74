// internals/features/payment/topups/controller/topup_controller.go
package controller

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"courtclub_backend/internals/features/payment/topups/dto"
	"courtclub_backend/internals/features/payment/topups/model"
	"courtclub_backend/internals/features/payment/topups/service"
	userModel "courtclub_backend/internals/features/users/user/model"
	helper "courtclub_backend/internals/helpers"
)

var validate = validator.New()

type TopupController struct {
	DB *gorm.DB
}

func NewTopupController(db *gorm.DB) *TopupController {
	return &TopupController{DB: db}
}

// GET /api/public/topup-packages
func (ctrl *TopupController) GetPackages(c *fiber.Ctx) error {
	return helper.JsonList(c, "Paket top-up kredit", service.TopupPackages, nil)
}

// POST /api/u/topups — buat order + Snap token
func (ctrl *TopupController) CreateTopup(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateTopupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"package_code": {"package_code wajib diisi"},
		})
	}

	pkg, ok := service.FindTopupPackage(req.PackageCode)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Paket top-up tidak dikenal")
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}

	t := model.TopupModel{
		TopupUserID:      userID,
		TopupPackageCode: pkg.Code,
		TopupCredits:     pkg.Credits,
		TopupAmountIDR:   pkg.AmountIDR,
		TopupStatus:      model.TopupStatusPending,
		TopupOrderID:     fmt.Sprintf("TOPUP-%d", time.Now().UnixNano()),
	}
	if err := ctrl.DB.Create(&t).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat order top-up")
	}

	token, err := service.GenerateSnapToken(&t, user.UserName, user.Email)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	t.TopupPaymentToken = token
	if err := ctrl.DB.Model(&t).Update("topup_payment_token", token).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan token pembayaran")
	}

	log.Printf("✅ Order top-up dibuat: %s (%s) oleh %s\n", t.TopupOrderID, pkg.Code, userID)
	return helper.JsonCreated(c, "Order top-up dibuat", dto.NewTopupResponse(&t))
}

// GET /api/u/topups — riwayat top-up milik sendiri
func (ctrl *TopupController) GetMyTopups(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.TopupModel
	if err := ctrl.DB.Where("topup_user_id = ?", userID).
		Order("topup_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat top-up")
	}
	return helper.JsonList(c, "Riwayat top-up Anda", dto.NewTopupResponses(rows), nil)
}

// POST /api/payments/notification — webhook Midtrans (tanpa auth)
func (ctrl *TopupController) HandleNotification(c *fiber.Ctx) error {
	var payload map[string]interface{}
	if err := c.BodyParser(&payload); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload notifikasi tidak valid")
	}

	if err := service.HandleTopupNotification(ctrl.DB, payload); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Notifikasi diproses", nil)
}
