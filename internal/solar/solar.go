package solar

import (
	"math"
	"time"
)

// DefaultLatitude is the latitude (degrees north) used when none is configured.
const DefaultLatitude = 42.0

const (
	axialTilt      = 23.45 // degrees
	springEquinox  = 81    // day of year
	daysPerYear    = 365.0
	degreesPerHour = 15.0
	noon           = 12.0
)

// Times holds sunrise and sunset as decimal hours in [0, 24].
type Times struct {
	Sunrise float64
	Sunset  float64
}

// Daylight returns the number of daylight hours.
func (t Times) Daylight() float64 {
	return t.Sunset - t.Sunrise
}

// Compute approximates sunrise and sunset for the calendar day of date at the
// given latitude. The model is symmetric around solar noon and ignores
// longitude, time zone offsets and refraction.
func Compute(date time.Time, latitude float64) Times {
	declination := axialTilt * math.Sin((360/daysPerYear)*float64(DayOfYear(date)-springEquinox)*math.Pi/180)

	cosOmega := -math.Tan(radians(latitude)) * math.Tan(radians(declination))
	omega := math.Acos(clamp(cosOmega, -1, 1)) * 180 / math.Pi

	daylight := 2 * omega / degreesPerHour

	return Times{
		Sunrise: noon - daylight/2,
		Sunset:  noon + daylight/2,
	}
}

// DayOfYear returns the 1-based ordinal day of date in its own location.
func DayOfYear(date time.Time) int {
	return date.YearDay()
}

// DecimalHour expresses the wall clock of t as hours plus minutes/60.
// Seconds are ignored so the value only changes once per minute.
func DecimalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

// FormatHour renders a decimal hour as H:MM.
func FormatHour(h float64) string {
	hours := int(math.Floor(h))
	minutes := int(math.Round((h - math.Floor(h)) * 60))
	if minutes == 60 {
		hours++
		minutes = 0
	}
	return time.Date(0, 1, 1, hours%24, minutes, 0, 0, time.UTC).Format("15:04")
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
