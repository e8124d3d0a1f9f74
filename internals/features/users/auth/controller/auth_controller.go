// internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "courtclub_backend/internals/features/users/auth/service"
	userDTO "courtclub_backend/internals/features/users/user/dto"
	"courtclub_backend/internals/features/users/user/model"
	helper "courtclub_backend/internals/helpers"
)

var validate = validator.New()

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type registerRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req registerRequest
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

	hashed, err := authService.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	user := model.UserModel{
		UserName: req.UserName,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashed,
	}
	if err := ctrl.DB.Create(&user).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}

	log.Printf("✅ User baru terdaftar: %s (%s)\n", user.UserName, user.Email)
	return helper.JsonCreated(c, "Registrasi berhasil", userDTO.NewUserResponse(&user))
}

// POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"email": {"email dan password wajib diisi"},
		})
	}

	var user model.UserModel
	err := ctrl.DB.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(req.Email))).Error
	if err != nil || !authService.CheckPassword(user.Password, req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda dinonaktifkan")
	}

	token, err := authService.CreateAccessToken(&user)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(authService.AccessTokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	log.Printf("✅ Login: %s (%s)\n", user.UserName, user.Role)
	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"access_token": token,
		"user":         userDTO.NewUserResponse(&user),
	})
}

// POST /api/auth/logout
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return helper.JsonOK(c, "Logout berhasil", nil)
}
