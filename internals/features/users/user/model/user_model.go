package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"courtclub_backend/internals/constants"
)

// UserModel merepresentasikan tabel users.
// Saldo kredit hanya boleh berubah lewat ledger (features/bookings/service).
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName string    `gorm:"size:50;not null" json:"user_name" validate:"required,min=3,max=50"`
	Email    string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password string    `gorm:"not null" json:"-" validate:"required,min=8"`
	Role     string    `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	Credits  int       `gorm:"not null;default:0;check:credits >= 0" json:"credits"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate isi ID & role default (portable, tidak bergantung gen_random_uuid)
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = constants.RoleMember
	}
	return nil
}
