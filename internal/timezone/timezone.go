package timezone

import (
	"time"
	_ "time/tzdata"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
)

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location cai para o fuso padrão quando tz é vazio ou desconhecido.
func Location(tz string) *time.Location {
	if !IsValid(tz) {
		tz = DefaultTimezone
	}
	if loc, err := time.LoadLocation(tz); err == nil {
		return loc
	}
	return time.UTC
}

func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ParseDay interpreta YYYY-MM-DD como meia-noite em loc.
func ParseDay(raw string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", raw, loc)
}

var (
	ErrInvalidDate  = httperr.InvalidArgument("invalid_date", "Data inválida, use YYYY-MM-DD.")
	ErrInvalidRange = httperr.InvalidArgument("invalid_date_range", "start_date posterior a end_date.")
)

// DayRange converte datas YYYY-MM-DD em [from, to). end é inclusivo, por
// isso to é o dia seguinte. Campos vazios voltam nil.
func DayRange(startRaw, endRaw string, loc *time.Location) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if startRaw != "" {
		t, err := ParseDay(startRaw, loc)
		if err != nil {
			return nil, nil, ErrInvalidDate
		}
		from = &t
	}

	if endRaw != "" {
		t, err := ParseDay(endRaw, loc)
		if err != nil {
			return nil, nil, ErrInvalidDate
		}
		next := t.AddDate(0, 0, 1)
		to = &next
	}

	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, ErrInvalidRange
	}
	return from, to, nil
}
