// internals/features/bookings/controller/booking_controller.go
package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"courtclub_backend/internals/constants"
	"courtclub_backend/internals/features/bookings/dto"
	"courtclub_backend/internals/features/bookings/model"
	"courtclub_backend/internals/features/bookings/service"
	helper "courtclub_backend/internals/helpers"
)

var validate = validator.New()

type BookingController struct {
	DB     *gorm.DB
	Ledger *service.LedgerService
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{DB: db, Ledger: service.NewLedgerService(db)}
}

// POST /api/u/bookings
// Satu endpoint untuk court / class / open-play; ledger yang menjaga
// saldo, slot, dan kapasitas.
func (ctrl *BookingController) CreateBooking(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		fieldErrors := map[string][]string{}
		for _, fe := range err.(validator.ValidationErrors) {
			fieldErrors[fe.Field()] = append(fieldErrors[fe.Field()], "Field tidak valid: "+fe.Tag())
		}
		return helper.JsonValidationError(c, fieldErrors)
	}

	var (
		b       *model.BookingModel
		bookErr error
	)
	switch req.BookingType {
	case constants.BookingTypeCourt:
		if req.BookingCourtNumber == nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "booking_court_number wajib untuk booking lapangan")
		}
		b, bookErr = ctrl.Ledger.CreateCourtBooking(c.Context(), userID, req.BookingDate, req.BookingTime, *req.BookingCourtNumber)
	case constants.BookingTypeOpenPlay:
		b, bookErr = ctrl.Ledger.CreateOpenPlayBooking(c.Context(), userID, req.BookingDate, req.BookingTime)
	case constants.BookingTypeClass:
		if req.BookingClassID == nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "booking_class_id wajib untuk join kelas")
		}
		b, bookErr = ctrl.Ledger.JoinClass(c.Context(), userID, *req.BookingClassID)
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "Jenis booking tidak dikenal")
	}
	if bookErr != nil {
		return helper.FromFiberError(c, bookErr)
	}

	log.Printf("✅ Booking dibuat: %s (%s) oleh %s\n", b.BookingID, b.BookingType, userID)
	return helper.JsonCreated(c, "Booking berhasil dibuat", dto.NewBookingResponse(b))
}

// GET /api/u/bookings
func (ctrl *BookingController) GetMyBookings(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	rows, err := ctrl.Ledger.ListBookingsForUser(c.Context(), userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data booking")
	}
	return helper.JsonList(c, "Daftar booking Anda", dto.NewBookingResponses(rows), nil)
}

// DELETE /api/u/bookings/:id
// Refund otomatis sebesar snapshot tarif booking.
func (ctrl *BookingController) CancelBooking(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID booking tidak valid")
	}

	b, err := ctrl.Ledger.CancelBooking(c.Context(), bookingID, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("✅ Booking %s dibatalkan, refund %d kredit\n", b.BookingID, b.BookingCreditCost)
	return helper.JsonDeleted(c, "Booking dibatalkan, kredit dikembalikan", fiber.Map{
		"booking_id":       b.BookingID,
		"refunded_credits": b.BookingCreditCost,
	})
}

// GET /api/public/slots?date=YYYY-MM-DD
// Ketersediaan nyata: lapangan kosong + kelas per jam operasional.
func (ctrl *BookingController) GetSlotAvailability(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Parameter date wajib (YYYY-MM-DD)")
	}
	normalized, err := helper.ParseBookingDate(date)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	slots, err := ctrl.Ledger.SlotAvailability(c.Context(), normalized)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil ketersediaan slot")
	}
	return helper.JsonOK(c, "Ketersediaan slot", fiber.Map{
		"date":  normalized,
		"slots": slots,
	})
}

// GET /api/a/bookings — semua booking (admin), paginated
func (ctrl *BookingController) GetAllBookings(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, helper.AdminOpts)

	q := ctrl.DB.Model(&model.BookingModel{})
	if date := c.Query("date"); date != "" {
		q = q.Where("booking_date = ?", date)
	}
	if btype := c.Query("type"); btype != "" {
		q = q.Where("booking_type = ?", btype)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung booking")
	}

	var rows []model.BookingModel
	if err := q.Order("booking_date ASC, booking_time ASC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data booking")
	}

	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Daftar semua booking", dto.NewBookingResponses(rows), pg)
}
