// internals/features/bookings/service/ledger_service.go
//
// LedgerService: satu-satunya pintu untuk transisi yang menyentuh kredit atau
// kapasitas (booking lapangan/kelas/open play, cancel + refund, cascade delete
// kelas, grant kredit). Semua badan operasi jalan dalam SATU transaksi DB
// dengan row lock FOR UPDATE di baris user/kelas yang disentuh, supaya
// check-then-write tidak pernah balapan (dua join rebutan kursi terakhir dsb.).
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"courtclub_backend/internals/constants"
	bookingModel "courtclub_backend/internals/features/bookings/model"
	classModel "courtclub_backend/internals/features/classes/model"
	userModel "courtclub_backend/internals/features/users/user/model"
	helper "courtclub_backend/internals/helpers"
)

const maxTxRetry = 3

type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

/* ================= Tx plumbing ================= */

// runLedgerTx: satu attempt = Begin → fn → Commit, rollback saat error/panic.
// Retry terbatas khusus serialization failure / deadlock, lalu ErrTxConflict.
func (s *LedgerService) runLedgerTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < maxTxRetry; attempt++ {
		err = s.txOnce(ctx, fn)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * 25 * time.Millisecond)
	}
	return ErrTxConflict
}

func (s *LedgerService) txOnce(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := s.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// FOR UPDATE hanya di Postgres; SQLite (dipakai test) menserialisasi penulis sendiri.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

/* ================= Booking lapangan & open play ================= */

// CreateCourtBooking: debit tarif lapangan + insert booking, atomik.
// Eksklusivitas slot dijaga unique index uq_bookings_court_slot (ErrSlotTaken).
func (s *LedgerService) CreateCourtBooking(ctx context.Context, userID uuid.UUID, date, timeLabel string, courtNumber int) (*bookingModel.BookingModel, error) {
	date, err := validateSlot(date, timeLabel)
	if err != nil {
		return nil, err
	}
	if !constants.IsValidCourtNumber(courtNumber) {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Nomor lapangan harus 1..%d", constants.CourtCount))
	}

	b := &bookingModel.BookingModel{
		BookingUserID:      userID,
		BookingDate:        date,
		BookingTime:        timeLabel,
		BookingType:        constants.BookingTypeCourt,
		BookingName:        fmt.Sprintf("Court %d", courtNumber),
		BookingCreditCost:  constants.CreditCostCourt,
		BookingCourtNumber: &courtNumber,
	}

	err = s.runLedgerTx(ctx, func(tx *gorm.DB) error {
		// Cek slot duluan biar pesan errornya ramah; unique index tetap backstop.
		var taken int64
		if err := tx.Model(&bookingModel.BookingModel{}).
			Where("booking_date = ? AND booking_time = ? AND booking_court_number = ?",
				date, timeLabel, courtNumber).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrSlotTaken
		}
		if err := debitUser(tx, userID, b.BookingCreditCost); err != nil {
			return err
		}
		if err := tx.Create(b).Error; err != nil {
			return mapUniqueViolation(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CreateOpenPlayBooking: seperti court tanpa eksklusivitas slot (kapasitas bebas).
func (s *LedgerService) CreateOpenPlayBooking(ctx context.Context, userID uuid.UUID, date, timeLabel string) (*bookingModel.BookingModel, error) {
	date, err := validateSlot(date, timeLabel)
	if err != nil {
		return nil, err
	}

	b := &bookingModel.BookingModel{
		BookingUserID:     userID,
		BookingDate:       date,
		BookingTime:       timeLabel,
		BookingType:       constants.BookingTypeOpenPlay,
		BookingName:       "Open Play",
		BookingCreditCost: constants.CreditCostOpenPlay,
	}

	err = s.runLedgerTx(ctx, func(tx *gorm.DB) error {
		if err := debitUser(tx, userID, b.BookingCreditCost); err != nil {
			return err
		}
		return tx.Create(b).Error
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

/* ================= Kelas ================= */

// JoinClass: semua precondition dievaluasi DI DALAM transaksi terhadap state
// terkini (bukan snapshot awal request). Lock kelas menserialisasi dua join
// yang rebutan kursi terakhir: tepat satu yang berhasil.
func (s *LedgerService) JoinClass(ctx context.Context, userID, classID uuid.UUID) (*bookingModel.BookingModel, error) {
	var b *bookingModel.BookingModel

	err := s.runLedgerTx(ctx, func(tx *gorm.DB) error {
		var cls classModel.ClassModel
		if err := lockForUpdate(tx).First(&cls, "class_id = ?", classID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassNotFound
			}
			return err
		}

		var usr userModel.UserModel
		if err := lockForUpdate(tx).First(&usr, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		// Sudah terdaftar?
		var dup int64
		if err := tx.Model(&bookingModel.BookingModel{}).
			Where("booking_user_id = ? AND booking_class_id = ?", userID, classID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrAlreadyEnrolled
		}

		// Kapasitas: enrolled DIHITUNG dari bookings, di bawah lock kelas.
		var enrolled int64
		if err := tx.Model(&bookingModel.BookingModel{}).
			Where("booking_class_id = ?", classID).
			Count(&enrolled).Error; err != nil {
			return err
		}
		if enrolled >= int64(cls.ClassMaxCapacity) {
			return ErrClassFull
		}

		if usr.Credits < cls.ClassCreditCost {
			return ErrInsufficientCredits
		}
		if err := debitUser(tx, userID, cls.ClassCreditCost); err != nil {
			return err
		}

		cid := cls.ClassID
		b = &bookingModel.BookingModel{
			BookingUserID:     userID,
			BookingDate:       cls.ClassDate,
			BookingTime:       cls.ClassTime,
			BookingType:       constants.BookingTypeClass,
			BookingName:       cls.ClassName,
			BookingCreditCost: cls.ClassCreditCost, // snapshot tarif saat join
			BookingClassID:    &cid,
		}
		if err := tx.Create(b).Error; err != nil {
			return mapUniqueViolation(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CreateClass: insert kelas baru (enrolled otomatis 0 karena derived).
func (s *LedgerService) CreateClass(ctx context.Context, name, date, timeLabel string, maxCapacity, creditCost int) (*classModel.ClassModel, error) {
	date, err := validateSlot(date, timeLabel)
	if err != nil {
		return nil, err
	}
	if maxCapacity <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Kapasitas kelas harus > 0")
	}
	if creditCost < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tarif kredit tidak boleh negatif")
	}

	cls := &classModel.ClassModel{
		ClassName:        name,
		ClassDate:        date,
		ClassTime:        timeLabel,
		ClassMaxCapacity: maxCapacity,
		ClassCreditCost:  creditCost,
	}
	if err := s.DB.WithContext(ctx).Create(cls).Error; err != nil {
		return nil, err
	}
	return cls, nil
}

// DeleteClass: cascade atomik — refund tiap pemilik booking, hapus booking,
// hapus kelas. Refund hanya untuk baris yang benar-benar terhapus DI SINI
// (RowsAffected), jadi cancel yang komit duluan tidak pernah di-refund dobel.
func (s *LedgerService) DeleteClass(ctx context.Context, classID uuid.UUID) (int, error) {
	refunded := 0

	err := s.runLedgerTx(ctx, func(tx *gorm.DB) error {
		refunded = 0

		var cls classModel.ClassModel
		if err := lockForUpdate(tx).First(&cls, "class_id = ?", classID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassNotFound
			}
			return err
		}

		var enrolled []bookingModel.BookingModel
		if err := tx.Where("booking_class_id = ?", classID).Find(&enrolled).Error; err != nil {
			return err
		}

		for i := range enrolled {
			res := tx.Delete(&bookingModel.BookingModel{}, "booking_id = ?", enrolled[i].BookingID)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				continue // keburu di-cancel oleh pemiliknya
			}
			if err := creditUser(tx, enrolled[i].BookingUserID, enrolled[i].BookingCreditCost); err != nil {
				return err
			}
			refunded++
		}

		return tx.Delete(&classModel.ClassModel{}, "class_id = ?", classID).Error
	})
	if err != nil {
		return 0, err
	}
	return refunded, nil
}

/* ================= Cancel ================= */

// CancelBooking: hapus booking + refund creditCost ke pemilik, satu transaksi.
// Refund tepat sekali: request ulang dengan id yang sama dapat ErrBookingNotFound
// karena barisnya sudah tidak ada.
func (s *LedgerService) CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID) (*bookingModel.BookingModel, error) {
	var b bookingModel.BookingModel

	err := s.runLedgerTx(ctx, func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&b, "booking_id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if b.BookingUserID != requesterID {
			return ErrForbidden
		}

		res := tx.Delete(&bookingModel.BookingModel{}, "booking_id = ?", bookingID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBookingNotFound
		}
		return creditUser(tx, b.BookingUserID, b.BookingCreditCost)
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

/* ================= Kredit ================= */

// GrantCredits: tambah kredit user (top-up settlement, bonus admin).
func (s *LedgerService) GrantCredits(ctx context.Context, userID uuid.UUID, amount int) error {
	if amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Jumlah kredit harus > 0")
	}
	return s.runLedgerTx(ctx, func(tx *gorm.DB) error {
		return GrantCreditsTx(tx, userID, amount)
	})
}

// GrantCreditsTx: varian untuk dipakai di dalam transaksi pemanggil
// (mis. webhook top-up yang harus mark-paid + grant sekali jalan).
func GrantCreditsTx(tx *gorm.DB, userID uuid.UUID, amount int) error {
	var usr userModel.UserModel
	if err := lockForUpdate(tx).First(&usr, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return creditUser(tx, userID, amount)
}

// AdjustCredits: koreksi manual oleh admin, boleh negatif tapi saldo
// tidak pernah boleh turun di bawah nol.
func (s *LedgerService) AdjustCredits(ctx context.Context, userID uuid.UUID, delta int) (int, error) {
	if delta == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Delta kredit tidak boleh 0")
	}
	newBalance := 0
	err := s.runLedgerTx(ctx, func(tx *gorm.DB) error {
		var usr userModel.UserModel
		if err := lockForUpdate(tx).First(&usr, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if usr.Credits+delta < 0 {
			return ErrInsufficientCredits
		}
		newBalance = usr.Credits + delta
		if delta > 0 {
			return creditUser(tx, userID, delta)
		}
		return debitUserUnchecked(tx, userID, -delta)
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

/* ================= Reads ================= */

// ClassWithEnrollment: kelas + jumlah peserta live dari bookings.
type ClassWithEnrollment struct {
	classModel.ClassModel `gorm:"embedded"`
	ClassEnrolledCount    int64 `json:"class_enrolled_count" gorm:"column:class_enrolled_count"`
}

func (s *LedgerService) ListClasses(ctx context.Context) ([]ClassWithEnrollment, error) {
	var out []ClassWithEnrollment
	err := s.DB.WithContext(ctx).Model(&classModel.ClassModel{}).
		Select("classes.*, (SELECT COUNT(*) FROM bookings WHERE bookings.booking_class_id = classes.class_id) AS class_enrolled_count").
		Order("class_date ASC, class_time ASC").
		Find(&out).Error
	return out, err
}

func (s *LedgerService) GetClassWithEnrollment(ctx context.Context, classID uuid.UUID) (*ClassWithEnrollment, error) {
	var out ClassWithEnrollment
	err := s.DB.WithContext(ctx).Model(&classModel.ClassModel{}).
		Select("classes.*, (SELECT COUNT(*) FROM bookings WHERE bookings.booking_class_id = classes.class_id) AS class_enrolled_count").
		Where("class_id = ?", classID).
		First(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (s *LedgerService) ListBookingsForUser(ctx context.Context, userID uuid.UUID) ([]bookingModel.BookingModel, error) {
	var rows []bookingModel.BookingModel
	err := s.DB.WithContext(ctx).
		Where("booking_user_id = ?", userID).
		Order("booking_date ASC, booking_time ASC").
		Find(&rows).Error
	return rows, err
}

// SlotInfo: ketersediaan nyata per label jam (pengganti availability acak
// di tampilan lama) — lapangan yang masih kosong + kelas di jam itu.
type SlotInfo struct {
	SlotTime        string                `json:"slot_time"`
	CourtsAvailable []int                 `json:"courts_available"`
	Classes         []ClassWithEnrollment `json:"classes"`
}

func (s *LedgerService) SlotAvailability(ctx context.Context, date string) ([]SlotInfo, error) {
	var courtRows []bookingModel.BookingModel
	if err := s.DB.WithContext(ctx).
		Where("booking_date = ? AND booking_type = ?", date, constants.BookingTypeCourt).
		Find(&courtRows).Error; err != nil {
		return nil, err
	}

	var classRows []ClassWithEnrollment
	if err := s.DB.WithContext(ctx).Model(&classModel.ClassModel{}).
		Select("classes.*, (SELECT COUNT(*) FROM bookings WHERE bookings.booking_class_id = classes.class_id) AS class_enrolled_count").
		Where("class_date = ?", date).
		Find(&classRows).Error; err != nil {
		return nil, err
	}

	takenByTime := make(map[string]map[int]bool)
	for i := range courtRows {
		if courtRows[i].BookingCourtNumber == nil {
			continue
		}
		if takenByTime[courtRows[i].BookingTime] == nil {
			takenByTime[courtRows[i].BookingTime] = make(map[int]bool)
		}
		takenByTime[courtRows[i].BookingTime][*courtRows[i].BookingCourtNumber] = true
	}

	labels := constants.OperatingTimeLabels()
	out := make([]SlotInfo, 0, len(labels))
	for _, label := range labels {
		info := SlotInfo{SlotTime: label, CourtsAvailable: []int{}, Classes: []ClassWithEnrollment{}}
		for n := 1; n <= constants.CourtCount; n++ {
			if !takenByTime[label][n] {
				info.CourtsAvailable = append(info.CourtsAvailable, n)
			}
		}
		for i := range classRows {
			if classRows[i].ClassTime == label {
				info.Classes = append(info.Classes, classRows[i])
			}
		}
		out = append(out, info)
	}
	return out, nil
}

/* ================= Internal ================= */

// debitUser: lock user, cek saldo, kurangi. Saldo tidak pernah negatif.
func debitUser(tx *gorm.DB, userID uuid.UUID, amount int) error {
	var usr userModel.UserModel
	if err := lockForUpdate(tx).First(&usr, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if usr.Credits < amount {
		return ErrInsufficientCredits
	}
	return debitUserUnchecked(tx, userID, amount)
}

func debitUserUnchecked(tx *gorm.DB, userID uuid.UUID, amount int) error {
	return tx.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		UpdateColumn("credits", gorm.Expr("credits - ?", amount)).Error
}

func creditUser(tx *gorm.DB, userID uuid.UUID, amount int) error {
	return tx.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		UpdateColumn("credits", gorm.Expr("credits + ?", amount)).Error
}

// validateSlot: tanggal & label jam operasional.
func validateSlot(date, timeLabel string) (string, error) {
	normalized, err := helper.ParseBookingDate(date)
	if err != nil {
		return "", err
	}
	if !constants.IsOperatingTime(timeLabel) {
		return "", fiber.NewError(fiber.StatusBadRequest, "Jam di luar jam operasional")
	}
	return normalized, nil
}
