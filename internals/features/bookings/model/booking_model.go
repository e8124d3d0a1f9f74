// models/booking_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingModel merepresentasikan tabel `bookings`.
//
// Dua unique index jadi backstop invariant di level DB:
//   - uq_bookings_court_slot: satu lapangan per (tanggal, jam) — court_number NULL
//     untuk booking non-court jadi tidak pernah bentrok.
//   - uq_bookings_enrollment: satu user hanya sekali per kelas.
type BookingModel struct {
	BookingID     uuid.UUID `json:"booking_id" gorm:"column:booking_id;type:uuid;primaryKey"`
	BookingUserID uuid.UUID `json:"booking_user_id" gorm:"column:booking_user_id;type:uuid;not null;index;uniqueIndex:uq_bookings_enrollment,priority:1"`

	BookingDate string `json:"booking_date" gorm:"column:booking_date;type:varchar(10);not null;index;uniqueIndex:uq_bookings_court_slot,priority:1"`
	BookingTime string `json:"booking_time" gorm:"column:booking_time;type:varchar(10);not null;uniqueIndex:uq_bookings_court_slot,priority:2"`

	// court | class | open-play
	BookingType string `json:"booking_type" gorm:"column:booking_type;type:varchar(10);not null"`
	BookingName string `json:"booking_name" gorm:"column:booking_name;type:varchar(120);not null"`

	// Snapshot tarif saat booking dibuat; perubahan harga kelas TIDAK retroaktif.
	BookingCreditCost int `json:"booking_credit_cost" gorm:"column:booking_credit_cost;not null;check:booking_credit_cost >= 0"`

	BookingCourtNumber *int       `json:"booking_court_number,omitempty" gorm:"column:booking_court_number;uniqueIndex:uq_bookings_court_slot,priority:3"`
	BookingClassID     *uuid.UUID `json:"booking_class_id,omitempty" gorm:"column:booking_class_id;type:uuid;index;uniqueIndex:uq_bookings_enrollment,priority:2"`

	BookingCreatedAt time.Time `json:"booking_created_at" gorm:"column:booking_created_at;not null;autoCreateTime"`
}

func (BookingModel) TableName() string {
	return "bookings"
}

func (m *BookingModel) BeforeCreate(tx *gorm.DB) error {
	if m.BookingID == uuid.Nil {
		m.BookingID = uuid.New()
	}
	return nil
}
