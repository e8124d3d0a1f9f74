// dto/booking_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"courtclub_backend/internals/features/bookings/model"
)

/* ========== REQUEST DTOs ========== */

// CreateBookingRequest: satu endpoint untuk tiga jenis booking.
// court/open-play butuh date+time; class cukup class_id (jadwal ikut kelas).
type CreateBookingRequest struct {
	BookingType        string     `json:"booking_type"         form:"booking_type"         validate:"required,oneof=court class open-play"`
	BookingDate        string     `json:"booking_date"         form:"booking_date"         validate:"omitempty,len=10"`
	BookingTime        string     `json:"booking_time"         form:"booking_time"         validate:"omitempty,max=10"`
	BookingCourtNumber *int       `json:"booking_court_number" form:"booking_court_number"`
	BookingClassID     *uuid.UUID `json:"booking_class_id"     form:"booking_class_id"`
}

/* ========== RESPONSE DTO ========== */

type BookingResponse struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingUserID uuid.UUID `json:"booking_user_id"`

	BookingDate string `json:"booking_date"`
	BookingTime string `json:"booking_time"`
	BookingType string `json:"booking_type"`
	BookingName string `json:"booking_name"`

	BookingCreditCost  int        `json:"booking_credit_cost"`
	BookingCourtNumber *int       `json:"booking_court_number,omitempty"`
	BookingClassID     *uuid.UUID `json:"booking_class_id,omitempty"`

	BookingCreatedAt time.Time `json:"booking_created_at"`
}

func NewBookingResponse(m *model.BookingModel) *BookingResponse {
	if m == nil {
		return nil
	}
	return &BookingResponse{
		BookingID:          m.BookingID,
		BookingUserID:      m.BookingUserID,
		BookingDate:        m.BookingDate,
		BookingTime:        m.BookingTime,
		BookingType:        m.BookingType,
		BookingName:        m.BookingName,
		BookingCreditCost:  m.BookingCreditCost,
		BookingCourtNumber: m.BookingCourtNumber,
		BookingClassID:     m.BookingClassID,
		BookingCreatedAt:   m.BookingCreatedAt,
	}
}

func NewBookingResponses(rows []model.BookingModel) []*BookingResponse {
	out := make([]*BookingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewBookingResponse(&rows[i]))
	}
	return out
}
