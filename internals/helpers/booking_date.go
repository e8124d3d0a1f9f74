package helper

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"courtclub_backend/internals/constants"
)

// ParseBookingDate validasi tanggal booking: format YYYY-MM-DD dan tidak di masa lalu
// relatif terhadap jam server (UTC). Mengembalikan string yang sudah dinormalisasi.
func ParseBookingDate(s string) (string, error) {
	d, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Format tanggal tidak valid (YYYY-MM-DD)")
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if d.Before(today) {
		return "", fiber.NewError(fiber.StatusBadRequest, "Tanggal booking tidak boleh di masa lalu")
	}
	return d.Format(constants.DateLayout), nil
}
