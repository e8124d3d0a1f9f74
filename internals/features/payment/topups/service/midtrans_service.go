// internals/features/payment/topups/service/midtrans_service.go
package service

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"courtclub_backend/internals/configs"
	"courtclub_backend/internals/features/payment/topups/model"
)

var snapClient snap.Client

// InitMidtrans dipanggil sekali di startup. Tanpa server key, top-up nonaktif.
func InitMidtrans() {
	if configs.MidtransServerKey == "" {
		log.Println("⚠️ Midtrans tidak diinisialisasi (MIDTRANS_SERVER_KEY kosong)")
		return
	}
	snapClient.New(configs.MidtransServerKey, midtrans.Sandbox)
	log.Println("🔌 Midtrans Snap client siap")
}

// GenerateSnapToken buat token pembayaran Snap untuk satu top-up.
func GenerateSnapToken(t *model.TopupModel, customerName, customerEmail string) (string, error) {
	if configs.MidtransServerKey == "" {
		return "", fiber.NewError(fiber.StatusServiceUnavailable, "Top-up kredit sedang nonaktif")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  t.TopupOrderID,
			GrossAmt: t.TopupAmountIDR,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: customerName,
			Email: customerEmail,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    t.TopupPackageCode,
				Name:  "Paket " + t.TopupPackageCode,
				Price: t.TopupAmountIDR,
				Qty:   1,
			},
		},
	}

	resp, err := snapClient.CreateTransaction(req)
	if err != nil {
		log.Printf("❌ Gagal membuat transaksi Snap %s: %v\n", t.TopupOrderID, err)
		return "", fiber.NewError(fiber.StatusBadGateway, "Gagal membuat transaksi pembayaran")
	}
	return resp.Token, nil
}
