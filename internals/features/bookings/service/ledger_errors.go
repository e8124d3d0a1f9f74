package service

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

// Error taxonomy ledger. Sentinel *fiber.Error supaya controller tinggal
// meneruskan (helper.FromFiberError) dan test bisa errors.Is.
var (
	ErrUserNotFound    = fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
	ErrClassNotFound   = fiber.NewError(fiber.StatusNotFound, "Kelas tidak ditemukan")
	ErrBookingNotFound = fiber.NewError(fiber.StatusNotFound, "Booking tidak ditemukan")

	ErrForbidden = fiber.NewError(fiber.StatusForbidden, "Bukan milik Anda")

	ErrInsufficientCredits = fiber.NewError(fiber.StatusPaymentRequired, "Kredit tidak mencukupi")
	ErrClassFull           = fiber.NewError(fiber.StatusConflict, "Kelas sudah penuh")
	ErrAlreadyEnrolled     = fiber.NewError(fiber.StatusConflict, "Sudah terdaftar di kelas ini")
	ErrSlotTaken           = fiber.NewError(fiber.StatusConflict, "Slot lapangan sudah dibooking")

	// Transaksi bentrok terus setelah retry — biar klien yang mengulang.
	ErrTxConflict = fiber.NewError(fiber.StatusConflict, "Transaksi bentrok, silakan coba lagi")
)

// isSerializationFailure: serialization_failure / deadlock_detected (Postgres)
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// mapUniqueViolation terjemahkan pelanggaran unique index bookings ke error domain.
// Cocokkan nama index (Postgres) maupun nama kolom (SQLite menyebut kolom).
func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "duplicate") && !strings.Contains(msg, "unique") {
		return err
	}
	switch {
	case strings.Contains(msg, "uq_bookings_court_slot"), strings.Contains(msg, "booking_court_number"):
		return ErrSlotTaken
	case strings.Contains(msg, "uq_bookings_enrollment"), strings.Contains(msg, "booking_class_id"):
		return ErrAlreadyEnrolled
	}
	return err
}
