// models/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassModel merepresentasikan tabel `classes`.
// Jumlah peserta TIDAK disimpan: selalu dihitung dari bookings (anti drift).
type ClassModel struct {
	ClassID uuid.UUID `json:"class_id" gorm:"column:class_id;type:uuid;primaryKey"`

	ClassName string `json:"class_name" gorm:"column:class_name;type:varchar(120);not null"`

	// Tanggal YYYY-MM-DD + label jam operasional ("9:00 AM")
	ClassDate string `json:"class_date" gorm:"column:class_date;type:varchar(10);not null;index"`
	ClassTime string `json:"class_time" gorm:"column:class_time;type:varchar(10);not null"`

	ClassMaxCapacity int `json:"class_max_capacity" gorm:"column:class_max_capacity;not null;check:class_max_capacity > 0"`
	ClassCreditCost  int `json:"class_credit_cost" gorm:"column:class_credit_cost;not null;default:0;check:class_credit_cost >= 0"`

	ClassCreatedAt time.Time  `json:"class_created_at" gorm:"column:class_created_at;not null;autoCreateTime"`
	ClassUpdatedAt *time.Time `json:"class_updated_at,omitempty" gorm:"column:class_updated_at"`
}

func (ClassModel) TableName() string {
	return "classes"
}

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}
