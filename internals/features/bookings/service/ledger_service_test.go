package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"courtclub_backend/internals/constants"
	bookingModel "courtclub_backend/internals/features/bookings/model"
	classModel "courtclub_backend/internals/features/classes/model"
	userModel "courtclub_backend/internals/features/users/user/model"
)

/* ================= Test fixtures ================= */

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Satu koneksi: memory DB hidup di koneksi itu, dan penulis terserialisasi
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&classModel.ClassModel{},
		&bookingModel.BookingModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, credits int) uuid.UUID {
	t.Helper()
	u := userModel.UserModel{
		UserName: "user-" + uuid.NewString()[:8],
		Email:    uuid.NewString() + "@test.local",
		Password: "rahasia-banget",
		Credits:  credits,
	}
	require.NoError(t, db.Create(&u).Error)
	return u.ID
}

func seedClass(t *testing.T, db *gorm.DB, capacity, cost int) uuid.UUID {
	t.Helper()
	cls := classModel.ClassModel{
		ClassName:        "Kelas Drill",
		ClassDate:        futureDate(),
		ClassTime:        "9:00 AM",
		ClassMaxCapacity: capacity,
		ClassCreditCost:  cost,
	}
	require.NoError(t, db.Create(&cls).Error)
	return cls.ClassID
}

func futureDate() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format(constants.DateLayout)
}

func userCredits(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var u userModel.UserModel
	require.NoError(t, db.First(&u, "id = ?", id).Error)
	return u.Credits
}

func bookingCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&bookingModel.BookingModel{}).Count(&n).Error)
	return n
}

/* ================= Court booking ================= */

func TestCreateCourtBooking_DebitsAndRecords(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	userID := seedUser(t, db, 10)

	b, err := svc.CreateCourtBooking(context.Background(), userID, futureDate(), "10:00 AM", 2)
	require.NoError(t, err)
	require.Equal(t, constants.BookingTypeCourt, b.BookingType)
	require.Equal(t, constants.CreditCostCourt, b.BookingCreditCost)
	require.NotNil(t, b.BookingCourtNumber)
	require.Equal(t, 2, *b.BookingCourtNumber)

	require.Equal(t, 10-constants.CreditCostCourt, userCredits(t, db, userID))
	require.EqualValues(t, 1, bookingCount(t, db))
}

func TestCreateCourtBooking_SlotTaken(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	first := seedUser(t, db, 10)
	second := seedUser(t, db, 10)
	date := futureDate()

	_, err := svc.CreateCourtBooking(context.Background(), first, date, "10:00 AM", 1)
	require.NoError(t, err)

	_, err = svc.CreateCourtBooking(context.Background(), second, date, "10:00 AM", 1)
	require.ErrorIs(t, err, ErrSlotTaken)

	// Gagal booking tidak boleh menyentuh saldo
	require.Equal(t, 10, userCredits(t, db, second))
	require.EqualValues(t, 1, bookingCount(t, db))

	// Lapangan lain di jam yang sama tetap bebas
	_, err = svc.CreateCourtBooking(context.Background(), second, date, "10:00 AM", 2)
	require.NoError(t, err)
}

func TestCreateCourtBooking_InsufficientCredits(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	userID := seedUser(t, db, constants.CreditCostCourt-1)

	_, err := svc.CreateCourtBooking(context.Background(), userID, futureDate(), "11:00 AM", 1)
	require.ErrorIs(t, err, ErrInsufficientCredits)

	require.Equal(t, constants.CreditCostCourt-1, userCredits(t, db, userID))
	require.EqualValues(t, 0, bookingCount(t, db))
}

func TestCreateCourtBooking_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	userID := seedUser(t, db, 10)

	_, err := svc.CreateCourtBooking(context.Background(), userID, "31-12-2030", "10:00 AM", 1)
	require.Error(t, err)

	_, err = svc.CreateCourtBooking(context.Background(), userID, "2020-01-01", "10:00 AM", 1)
	require.Error(t, err)

	_, err = svc.CreateCourtBooking(context.Background(), userID, futureDate(), "6:00 AM", 1)
	require.Error(t, err)

	_, err = svc.CreateCourtBooking(context.Background(), userID, futureDate(), "10:00 AM", constants.CourtCount+1)
	require.Error(t, err)

	require.Equal(t, 10, userCredits(t, db, userID))
}

func TestCreateOpenPlayBooking_NoExclusivity(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	a := seedUser(t, db, 5)
	b := seedUser(t, db, 5)
	date := futureDate()

	_, err := svc.CreateOpenPlayBooking(context.Background(), a, date, "7:00 PM")
	require.NoError(t, err)
	_, err = svc.CreateOpenPlayBooking(context.Background(), b, date, "7:00 PM")
	require.NoError(t, err)

	require.Equal(t, 5-constants.CreditCostOpenPlay, userCredits(t, db, a))
	require.Equal(t, 5-constants.CreditCostOpenPlay, userCredits(t, db, b))
}

/* ================= Join class ================= */

func TestJoinClass_SnapshotCost(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	userID := seedUser(t, db, 10)
	classID := seedClass(t, db, 5, 4)

	b, err := svc.JoinClass(context.Background(), userID, classID)
	require.NoError(t, err)
	require.Equal(t, 4, b.BookingCreditCost)
	require.Equal(t, 6, userCredits(t, db, userID))

	// Tarif kelas naik SETELAH join — refund tetap pakai snapshot lama
	require.NoError(t, db.Model(&classModel.ClassModel{}).
		Where("class_id = ?", classID).
		Update("class_credit_cost", 9).Error)

	_, err = svc.CancelBooking(context.Background(), b.BookingID, userID)
	require.NoError(t, err)
	require.Equal(t, 10, userCredits(t, db, userID))
}

func TestJoinClass_FullThenSeatFreed(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	alice := seedUser(t, db, 10)
	bob := seedUser(t, db, 10)
	classID := seedClass(t, db, 1, 2)

	bookingA, err := svc.JoinClass(context.Background(), alice, classID)
	require.NoError(t, err)

	_, err = svc.JoinClass(context.Background(), bob, classID)
	require.ErrorIs(t, err, ErrClassFull)
	require.Equal(t, 10, userCredits(t, db, bob))

	// Kursi kosong lagi setelah cancel
	_, err = svc.CancelBooking(context.Background(), bookingA.BookingID, alice)
	require.NoError(t, err)

	_, err = svc.JoinClass(context.Background(), bob, classID)
	require.NoError(t, err)
	require.Equal(t, 8, userCredits(t, db, bob))
}

func TestJoinClass_AlreadyEnrolled(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	userID := seedUser(t, db, 10)
	classID := seedClass(t, db, 5, 2)

	_, err := svc.JoinClass(context.Background(), userID, classID)
	require.NoError(t, err)

	_, err = svc.JoinClass(context.Background(), userID, classID)
	require.ErrorIs(t, err, ErrAlreadyEnrolled)
	require.Equal(t, 8, userCredits(t, db, userID))
}

func TestJoinClass_InsufficientCredits(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	userID := seedUser(t, db, 1)
	classID := seedClass(t, db, 5, 2)

	_, err := svc.JoinClass(context.Background(), userID, classID)
	require.ErrorIs(t, err, ErrInsufficientCredits)
	require.Equal(t, 1, userCredits(t, db, userID))
	require.EqualValues(t, 0, bookingCount(t, db))
}

func TestJoinClass_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	userID := seedUser(t, db, 10)

	_, err := svc.JoinClass(context.Background(), userID, uuid.New())
	require.ErrorIs(t, err, ErrClassNotFound)
}

/* ================= Cancel ================= */

func TestCancelBooking_RefundExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	userID := seedUser(t, db, 10)

	b, err := svc.CreateCourtBooking(context.Background(), userID, futureDate(), "3:00 PM", 3)
	require.NoError(t, err)
	require.Equal(t, 7, userCredits(t, db, userID))

	_, err = svc.CancelBooking(context.Background(), b.BookingID, userID)
	require.NoError(t, err)
	require.Equal(t, 10, userCredits(t, db, userID))

	// Cancel ulang id yang sama: barisnya sudah tidak ada, saldo tidak berubah
	_, err = svc.CancelBooking(context.Background(), b.BookingID, userID)
	require.ErrorIs(t, err, ErrBookingNotFound)
	require.Equal(t, 10, userCredits(t, db, userID))
}

func TestCancelBooking_Forbidden(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	owner := seedUser(t, db, 10)
	intruder := seedUser(t, db, 10)

	b, err := svc.CreateCourtBooking(context.Background(), owner, futureDate(), "4:00 PM", 1)
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), b.BookingID, intruder)
	require.ErrorIs(t, err, ErrForbidden)

	// Booking masih ada, tidak ada refund nyasar
	require.EqualValues(t, 1, bookingCount(t, db))
	require.Equal(t, 7, userCredits(t, db, owner))
	require.Equal(t, 10, userCredits(t, db, intruder))
}

/* ================= Delete class (cascade) ================= */

func TestDeleteClass_CascadeRefunds(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	classID := seedClass(t, db, 10, 3)

	members := make([]uuid.UUID, 3)
	for i := range members {
		members[i] = seedUser(t, db, 10)
		_, err := svc.JoinClass(context.Background(), members[i], classID)
		require.NoError(t, err)
	}

	// Booking lapangan tak terkait — tidak boleh ikut terhapus
	outsider := seedUser(t, db, 10)
	_, err := svc.CreateCourtBooking(context.Background(), outsider, futureDate(), "5:00 PM", 4)
	require.NoError(t, err)

	refunded, err := svc.DeleteClass(context.Background(), classID)
	require.NoError(t, err)
	require.Equal(t, 3, refunded)

	for _, id := range members {
		require.Equal(t, 10, userCredits(t, db, id))
	}
	require.EqualValues(t, 1, bookingCount(t, db))

	var classCount int64
	require.NoError(t, db.Model(&classModel.ClassModel{}).Count(&classCount).Error)
	require.EqualValues(t, 0, classCount)
}

func TestDeleteClass_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)

	_, err := svc.DeleteClass(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrClassNotFound)
}

/* ================= Kredit ================= */

func TestAdjustCredits(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	userID := seedUser(t, db, 5)

	balance, err := svc.AdjustCredits(context.Background(), userID, 7)
	require.NoError(t, err)
	require.Equal(t, 12, balance)

	balance, err = svc.AdjustCredits(context.Background(), userID, -2)
	require.NoError(t, err)
	require.Equal(t, 10, balance)

	// Saldo tidak boleh turun di bawah nol
	_, err = svc.AdjustCredits(context.Background(), userID, -11)
	require.ErrorIs(t, err, ErrInsufficientCredits)
	require.Equal(t, 10, userCredits(t, db, userID))

	_, err = svc.AdjustCredits(context.Background(), userID, 0)
	require.Error(t, err)

	_, err = svc.AdjustCredits(context.Background(), uuid.New(), 5)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestGrantCredits(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	userID := seedUser(t, db, 0)

	require.NoError(t, svc.GrantCredits(context.Background(), userID, 25))
	require.Equal(t, 25, userCredits(t, db, userID))

	require.Error(t, svc.GrantCredits(context.Background(), userID, 0))
	require.ErrorIs(t, svc.GrantCredits(context.Background(), uuid.New(), 5), ErrUserNotFound)
}

/* ================= Reads ================= */

func TestListClasses_EnrolledCount(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	classID := seedClass(t, db, 10, 1)

	for i := 0; i < 2; i++ {
		userID := seedUser(t, db, 5)
		_, err := svc.JoinClass(context.Background(), userID, classID)
		require.NoError(t, err)
	}

	rows, err := svc.ListClasses(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.EqualValues(t, 2, rows[0].ClassEnrolledCount)

	cls, err := svc.GetClassWithEnrollment(context.Background(), classID)
	require.NoError(t, err)
	require.EqualValues(t, 2, cls.ClassEnrolledCount)
}

func TestSlotAvailability(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	userID := seedUser(t, db, 10)
	date := futureDate()

	_, err := svc.CreateCourtBooking(context.Background(), userID, date, "9:00 AM", 2)
	require.NoError(t, err)
	seedClass(t, db, 10, 1) // kelas jam 9:00 AM di tanggal yang sama

	slots, err := svc.SlotAvailability(context.Background(), date)
	require.NoError(t, err)
	require.Len(t, slots, constants.OperatingHourEnd-constants.OperatingHourStart)

	var nine *SlotInfo
	for i := range slots {
		if slots[i].SlotTime == "9:00 AM" {
			nine = &slots[i]
		}
	}
	require.NotNil(t, nine)
	require.NotContains(t, nine.CourtsAvailable, 2)
	require.Contains(t, nine.CourtsAvailable, 1)
	require.Len(t, nine.Classes, 1)
}

func TestListBookingsForUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	userID := seedUser(t, db, 10)
	other := seedUser(t, db, 10)
	date := futureDate()

	_, err := svc.CreateCourtBooking(context.Background(), userID, date, "8:00 AM", 1)
	require.NoError(t, err)
	_, err = svc.CreateOpenPlayBooking(context.Background(), other, date, "8:00 AM")
	require.NoError(t, err)

	rows, err := svc.ListBookingsForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, userID, rows[0].BookingUserID)
}

/* ================= Concurrency ================= */

// Delapan goroutine rebutan kursi terakhir: tepat satu join yang berhasil,
// dan hanya pemenang yang kena debit.
func TestConcurrentJoin_LastSeat(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	classID := seedClass(t, db, 1, 2)

	const contenders = 8
	users := make([]uuid.UUID, contenders)
	for i := range users {
		users[i] = seedUser(t, db, 10)
	}

	var success, full int32
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(userID uuid.UUID) {
			defer wg.Done()
			_, err := svc.JoinClass(context.Background(), userID, classID)
			switch {
			case err == nil:
				atomic.AddInt32(&success, 1)
			case err == ErrClassFull:
				atomic.AddInt32(&full, 1)
			default:
				t.Errorf("error tak terduga: %v", err)
			}
		}(users[i])
	}
	wg.Wait()

	require.EqualValues(t, 1, success)
	require.EqualValues(t, contenders-1, full)
	require.EqualValues(t, 1, bookingCount(t, db))

	// Total saldo: hanya satu debit sebesar tarif kelas
	total := 0
	for _, id := range users {
		total += userCredits(t, db, id)
	}
	require.Equal(t, contenders*10-2, total)
}
