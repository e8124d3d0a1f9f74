// dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"courtclub_backend/internals/features/users/user/model"
)

/* ========== REQUEST DTOs ========== */

type UpdateProfileRequest struct {
	UserName *string `json:"user_name" form:"user_name" validate:"omitempty,min=3,max=50"`
}

// AdjustCreditsRequest: koreksi saldo manual oleh admin (delta boleh negatif)
type AdjustCreditsRequest struct {
	Delta int `json:"delta" form:"delta" validate:"required"`
}

/* ========== RESPONSE DTO ========== */

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Credits   int       `json:"credits"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(m *model.UserModel) *UserResponse {
	if m == nil {
		return nil
	}
	return &UserResponse{
		ID:        m.ID,
		UserName:  m.UserName,
		Email:     m.Email,
		Role:      m.Role,
		Credits:   m.Credits,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

func NewUserResponses(rows []model.UserModel) []*UserResponse {
	out := make([]*UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewUserResponse(&rows[i]))
	}
	return out
}
