package workout

import "math"

// PaceMinPerKm returns duration/distance rounded to one decimal.
// Callers must reject distanceKm == 0 before calling.
func PaceMinPerKm(distanceKm, durationMin float64) float64 {
	return round1(durationMin / distanceKm)
}

// SpeedKmPerH returns distance/(duration in hours) rounded to one
// decimal. Callers must reject durationMin == 0 before calling.
func SpeedKmPerH(distanceKm, durationMin float64) float64 {
	return round1(distanceKm / (durationMin / 60))
}

// round1 rounds half away from zero to one decimal place. The rounded
// value is what gets stored, so repeated renders are text-identical.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
