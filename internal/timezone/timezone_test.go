package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_Fallback(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Marte/Olympus").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		tz   string
		want bool
	}{
		{"America/Sao_Paulo", true},
		{"UTC", true},
		{"", false},
		{"Marte/Olympus", false},
		{"Sao_Paulo", false},
	}

	for _, tt := range tests {
		t.Run(tt.tz, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.tz))
		})
	}
}

func TestMonthStart(t *testing.T) {
	loc := Location(DefaultTimezone)
	got := MonthStart(time.Date(2026, 2, 17, 15, 30, 0, 0, loc))

	assert.True(t, time.Date(2026, 2, 1, 0, 0, 0, 0, loc).Equal(got))
}

func TestParseDay(t *testing.T) {
	loc := Location(DefaultTimezone)

	got, err := ParseDay("2026-03-05", loc)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Day())
	assert.Equal(t, loc, got.Location())

	_, err = ParseDay("05/03/2026", loc)
	assert.Error(t, err)
}

func TestDayRange(t *testing.T) {
	loc := Location(DefaultTimezone)

	from, to, err := DayRange("2026-03-01", "2026-03-31", loc)
	require.NoError(t, err)
	assert.True(t, time.Date(2026, 3, 1, 0, 0, 0, 0, loc).Equal(*from))
	assert.True(t, time.Date(2026, 4, 1, 0, 0, 0, 0, loc).Equal(*to))

	from, to, err = DayRange("2026-03-05", "2026-03-05", loc)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, to.Sub(*from))

	from, to, err = DayRange("", "", loc)
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)

	_, _, err = DayRange("2026-03-10", "2026-03-01", loc)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, _, err = DayRange("ontem", "", loc)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
