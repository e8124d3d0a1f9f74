package constants

import "fmt"

// Jam operasional fasilitas (slot per jam)
const (
	OperatingHourStart = 7  // 7 AM
	OperatingHourEnd   = 20 // 8 PM, slot terakhir 7:00 PM
)

// Lapangan & tarif kredit
const (
	CourtCount = 4

	CreditCostCourt    = 3
	CreditCostOpenPlay = 1
)

// Jenis booking
const (
	BookingTypeCourt    = "court"
	BookingTypeClass    = "class"
	BookingTypeOpenPlay = "open-play"
)

// Format tanggal yang dipakai di seluruh boundary (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// OperatingTimeLabels menghasilkan label slot per jam, "7:00 AM" .. "7:00 PM".
func OperatingTimeLabels() []string {
	labels := make([]string, 0, OperatingHourEnd-OperatingHourStart)
	for hour := OperatingHourStart; hour < OperatingHourEnd; hour++ {
		labels = append(labels, hourLabel(hour))
	}
	return labels
}

func hourLabel(hour int) string {
	h12 := hour
	if hour > 12 {
		h12 = hour - 12
	}
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	return fmt.Sprintf("%d:00 %s", h12, period)
}

// IsOperatingTime cek apakah label waktu termasuk jam operasional.
func IsOperatingTime(label string) bool {
	for _, l := range OperatingTimeLabels() {
		if l == label {
			return true
		}
	}
	return false
}

// IsValidCourtNumber cek nomor lapangan 1..CourtCount.
func IsValidCourtNumber(n int) bool {
	return n >= 1 && n <= CourtCount
}

// IsValidBookingType cek jenis booking yang dikenal.
func IsValidBookingType(t string) bool {
	switch t {
	case BookingTypeCourt, BookingTypeClass, BookingTypeOpenPlay:
		return true
	}
	return false
}
