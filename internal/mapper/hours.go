package mapper

import (
	"math"
	"regexp"
	"strconv"

	"cstore-prefill/internal/models"
)

// Matches the first "H:MM AM – H:MM PM" range in a weekday line. The places
// provider separates the meridiem with a narrow no-break space on some locales.
var hoursRange = regexp.MustCompile(`(\d+):(\d+)[\s\x{00A0}\x{202F}]*(AM|PM)[\s\x{00A0}\x{202F}]*[–-][\s\x{00A0}\x{202F}]*(\d+):(\d+)[\s\x{00A0}\x{202F}]*(AM|PM)`)

// OperatingHours derives the daily operating hours of a place.
// A single period that opens and never closes means 24 hours. Otherwise the
// first weekday line is parsed; ok is false when it cannot be.
func OperatingHours(h *models.OpeningHours) (hours int, ok bool) {
	if h == nil {
		return 0, false
	}
	if len(h.Periods) == 1 && h.Periods[0].Open != nil && h.Periods[0].Close == nil {
		return 24, true
	}
	if len(h.WeekdayText) == 0 {
		return 0, false
	}

	m := hoursRange.FindStringSubmatch(h.WeekdayText[0])
	if m == nil {
		return 0, false
	}
	open := to24h(m[1], m[3])
	closing := to24h(m[4], m[6])

	diff := closing - open
	if diff < 0 {
		diff += 24
	}
	return int(math.Round(float64(diff))), true
}

func to24h(hour, meridiem string) int {
	h, _ := strconv.Atoi(hour)
	switch {
	case meridiem == "PM" && h != 12:
		h += 12
	case meridiem == "AM" && h == 12:
		h = 0
	}
	return h
}
