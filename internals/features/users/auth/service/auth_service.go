// internals/features/users/auth/service/auth_service.go
package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"courtclub_backend/internals/configs"
	"courtclub_backend/internals/features/users/user/model"
)

const AccessTokenTTL = 24 * time.Hour

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// CreateAccessToken buat JWT HS256 berisi identitas user.
// Klaim user_id/sub/user_name/role dibaca ulang oleh AuthMiddleware.
func CreateAccessToken(user *model.UserModel) (string, error) {
	if configs.JWTSecret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum dikonfigurasi")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"user_id":   user.ID.String(),
		"user_name": user.UserName,
		"role":      user.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(AccessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
