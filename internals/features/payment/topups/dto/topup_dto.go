// dto/topup_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"courtclub_backend/internals/features/payment/topups/model"
)

/* ========== REQUEST DTOs ========== */

type CreateTopupRequest struct {
	PackageCode string `json:"package_code" form:"package_code" validate:"required,max=30"`
}

/* ========== RESPONSE DTO ========== */

type TopupResponse struct {
	TopupID          uuid.UUID  `json:"topup_id"`
	TopupPackageCode string     `json:"topup_package_code"`
	TopupCredits     int        `json:"topup_credits"`
	TopupAmountIDR   int64      `json:"topup_amount_idr"`
	TopupStatus      string     `json:"topup_status"`
	TopupOrderID     string     `json:"topup_order_id"`
	TopupSnapToken   string     `json:"topup_snap_token,omitempty"`
	TopupCreatedAt   time.Time  `json:"topup_created_at"`
	TopupPaidAt      *time.Time `json:"topup_paid_at,omitempty"`
}

func NewTopupResponse(m *model.TopupModel) *TopupResponse {
	if m == nil {
		return nil
	}
	return &TopupResponse{
		TopupID:          m.TopupID,
		TopupPackageCode: m.TopupPackageCode,
		TopupCredits:     m.TopupCredits,
		TopupAmountIDR:   m.TopupAmountIDR,
		TopupStatus:      m.TopupStatus,
		TopupOrderID:     m.TopupOrderID,
		TopupSnapToken:   m.TopupPaymentToken,
		TopupCreatedAt:   m.TopupCreatedAt,
		TopupPaidAt:      m.TopupPaidAt,
	}
}

func NewTopupResponses(rows []model.TopupModel) []*TopupResponse {
	out := make([]*TopupResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewTopupResponse(&rows[i]))
	}
	return out
}
