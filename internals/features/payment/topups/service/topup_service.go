// internals/features/payment/topups/service/topup_service.go
package service

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	ledger "courtclub_backend/internals/features/bookings/service"
	"courtclub_backend/internals/features/payment/topups/model"
)

// TopupPackage: paket kredit yang bisa dibeli member.
type TopupPackage struct {
	Code      string `json:"code"`
	Credits   int    `json:"credits"`
	AmountIDR int64  `json:"amount_idr"`
}

// Daftar paket statis. Harga dalam Rupiah.
var TopupPackages = []TopupPackage{
	{Code: "CREDIT_10", Credits: 10, AmountIDR: 100000},
	{Code: "CREDIT_25", Credits: 25, AmountIDR: 225000},
	{Code: "CREDIT_50", Credits: 50, AmountIDR: 400000},
}

func FindTopupPackage(code string) (TopupPackage, bool) {
	for _, p := range TopupPackages {
		if p.Code == code {
			return p, true
		}
	}
	return TopupPackage{}, false
}

var ErrTopupNotFound = fiber.NewError(fiber.StatusNotFound, "Top-up tidak ditemukan")

// HandleTopupNotification proses webhook Midtrans: tandai paid + grant kredit
// dalam SATU transaksi. Idempoten — notifikasi ulang untuk order yang sudah
// paid tidak menambah kredit lagi.
func HandleTopupNotification(db *gorm.DB, payload map[string]interface{}) error {
	orderID, _ := payload["order_id"].(string)
	status, _ := payload["transaction_status"].(string)
	fraud, _ := payload["fraud_status"].(string)
	if orderID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "order_id kosong")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload notifikasi tidak valid")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var t model.TopupModel
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&t, "topup_order_id = ?", orderID).Error; err != nil {
		tx.Rollback()
		return ErrTopupNotFound
	}

	updates := map[string]interface{}{
		"topup_gateway_payload": datatypes.JSON(raw),
	}

	switch status {
	case "settlement", "capture":
		if fraud == "deny" {
			updates["topup_status"] = model.TopupStatusFailed
			break
		}
		if t.TopupStatus == model.TopupStatusPaid {
			break // sudah diproses, jangan grant dua kali
		}
		now := time.Now()
		updates["topup_status"] = model.TopupStatusPaid
		updates["topup_paid_at"] = &now
		if err := ledger.GrantCreditsTx(tx, t.TopupUserID, t.TopupCredits); err != nil {
			tx.Rollback()
			return err
		}
		log.Printf("✅ Top-up %s settlement: +%d kredit untuk %s\n", orderID, t.TopupCredits, t.TopupUserID)
	case "deny", "cancel":
		if t.TopupStatus == model.TopupStatusPending {
			updates["topup_status"] = model.TopupStatusFailed
		}
	case "expire":
		if t.TopupStatus == model.TopupStatusPending {
			updates["topup_status"] = model.TopupStatusExpired
		}
	default:
		// pending / unknown: simpan payload saja
	}

	if err := tx.Model(&model.TopupModel{}).
		Where("topup_order_id = ?", orderID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
