package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status top-up
const (
	TopupStatusPending = "pending"
	TopupStatusPaid    = "paid"
	TopupStatusFailed  = "failed"
	TopupStatusExpired = "expired"
)

// TopupModel merepresentasikan tabel `topups` (pembelian paket kredit via Midtrans).
// Kredit baru masuk ke user saat webhook settlement, lewat ledger.
type TopupModel struct {
	TopupID     uuid.UUID `json:"topup_id" gorm:"column:topup_id;type:uuid;primaryKey"`
	TopupUserID uuid.UUID `json:"topup_user_id" gorm:"column:topup_user_id;type:uuid;not null;index"`

	TopupPackageCode string `json:"topup_package_code" gorm:"column:topup_package_code;type:varchar(30);not null"`
	TopupCredits     int    `json:"topup_credits" gorm:"column:topup_credits;not null;check:topup_credits > 0"`
	TopupAmountIDR   int64  `json:"topup_amount_idr" gorm:"column:topup_amount_idr;not null"`

	TopupStatus       string `json:"topup_status" gorm:"column:topup_status;type:varchar(10);not null;default:'pending'"`
	TopupOrderID      string `json:"topup_order_id" gorm:"column:topup_order_id;type:varchar(60);unique;not null"`
	TopupPaymentToken string `json:"topup_payment_token,omitempty" gorm:"column:topup_payment_token;type:text"`

	// Payload mentah notifikasi gateway terakhir (audit)
	TopupGatewayPayload datatypes.JSON `json:"topup_gateway_payload,omitempty" gorm:"column:topup_gateway_payload"`

	TopupCreatedAt time.Time  `json:"topup_created_at" gorm:"column:topup_created_at;not null;autoCreateTime"`
	TopupPaidAt    *time.Time `json:"topup_paid_at,omitempty" gorm:"column:topup_paid_at"`
}

func (TopupModel) TableName() string {
	return "topups"
}

func (m *TopupModel) BeforeCreate(tx *gorm.DB) error {
	if m.TopupID == uuid.Nil {
		m.TopupID = uuid.New()
	}
	return nil
}
