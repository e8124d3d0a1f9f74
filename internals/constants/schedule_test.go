package constants

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOperatingTimeLabels(t *testing.T) {
	labels := OperatingTimeLabels()
	require.Len(t, labels, OperatingHourEnd-OperatingHourStart)
	require.Equal(t, "7:00 AM", labels[0])
	require.Equal(t, "11:00 AM", labels[4])
	require.Equal(t, "12:00 PM", labels[5])
	require.Equal(t, "7:00 PM", labels[len(labels)-1])
}

func TestIsOperatingTime(t *testing.T) {
	require.True(t, IsOperatingTime("7:00 AM"))
	require.True(t, IsOperatingTime("7:00 PM"))
	require.False(t, IsOperatingTime("6:00 AM"))
	require.False(t, IsOperatingTime("8:00 PM"))
	require.False(t, IsOperatingTime("07:00"))
}

func TestIsValidCourtNumber(t *testing.T) {
	require.True(t, IsValidCourtNumber(1))
	require.True(t, IsValidCourtNumber(CourtCount))
	require.False(t, IsValidCourtNumber(0))
	require.False(t, IsValidCourtNumber(CourtCount+1))
}

func TestIsValidBookingType(t *testing.T) {
	require.True(t, IsValidBookingType(BookingTypeCourt))
	require.True(t, IsValidBookingType(BookingTypeClass))
	require.True(t, IsValidBookingType(BookingTypeOpenPlay))
	require.False(t, IsValidBookingType("futsal"))
}
