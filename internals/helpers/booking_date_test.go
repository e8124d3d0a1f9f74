package helper

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"courtclub_backend/internals/constants"
)

func TestParseBookingDate(t *testing.T) {
	today := time.Now().UTC().Format(constants.DateLayout)
	got, err := ParseBookingDate(today)
	require.NoError(t, err)
	require.Equal(t, today, got)

	future := time.Now().UTC().AddDate(0, 1, 0).Format(constants.DateLayout)
	got, err = ParseBookingDate(future)
	require.NoError(t, err)
	require.Equal(t, future, got)
}

func TestParseBookingDate_Invalid(t *testing.T) {
	cases := []string{
		"2030/01/01",
		"01-01-2030",
		"besok",
		"",
		"2020-01-01", // masa lalu
	}
	for _, in := range cases {
		_, err := ParseBookingDate(in)
		require.Error(t, err, in)

		fe, ok := err.(*fiber.Error)
		require.True(t, ok)
		require.Equal(t, fiber.StatusBadRequest, fe.Code)
	}
}

func TestBuildPaginationFromPage(t *testing.T) {
	pg := BuildPaginationFromPage(101, 2, 25)
	require.Equal(t, 5, pg.TotalPages)
	require.True(t, pg.HasNext)
	require.True(t, pg.HasPrev)

	pg = BuildPaginationFromPage(0, 1, 25)
	require.Equal(t, 1, pg.TotalPages)
	require.False(t, pg.HasNext)
	require.False(t, pg.HasPrev)
}
