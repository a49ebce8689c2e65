package workout

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind discriminates the two workout variants. The set is closed: every
// switch on Kind handles exactly these two values.
type Kind string

const (
	Running Kind = "running"
	Cycling Kind = "cycling"
)

var ErrUnknownKind = errors.New("unknown workout kind")

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Workout is a single recorded activity. Records are immutable after
// construction: derived metrics and the description are computed once
// and persisted as-is, never recomputed on display.
type Workout struct {
	ID          string      `json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	Kind        Kind        `json:"kind"`
	Coords      Coordinates `json:"coords"`
	DistanceKm  float64     `json:"distance_km"`
	DurationMin float64     `json:"duration_min"`

	// Exactly one of the following pairs is set, per Kind.
	CadenceSpm     float64 `json:"cadence_spm,omitempty"`
	PaceMinPerKm   float64 `json:"pace_min_per_km,omitempty"`
	ElevationGainM float64 `json:"elevation_gain_m,omitempty"`
	SpeedKmPerH    float64 `json:"speed_km_per_h,omitempty"`

	Description string `json:"description"`
}

// NewRunning constructs a running record. Inputs must already be
// validated as finite and strictly positive; the constructor panics on
// caller bugs rather than producing a corrupt record.
func NewRunning(coords Coordinates, distanceKm, durationMin, cadenceSpm float64) Workout {
	mustPositive("distance", distanceKm)
	mustPositive("duration", durationMin)
	mustPositive("cadence", cadenceSpm)

	now := time.Now()
	return Workout{
		ID:           newID(now),
		CreatedAt:    now,
		Kind:         Running,
		Coords:       coords,
		DistanceKm:   distanceKm,
		DurationMin:  durationMin,
		CadenceSpm:   cadenceSpm,
		PaceMinPerKm: PaceMinPerKm(distanceKm, durationMin),
		Description:  describe(Running, now),
	}
}

// NewCycling constructs a cycling record under the same contract as
// NewRunning.
func NewCycling(coords Coordinates, distanceKm, durationMin, elevationGainM float64) Workout {
	mustPositive("distance", distanceKm)
	mustPositive("duration", durationMin)
	mustPositive("elevation gain", elevationGainM)

	now := time.Now()
	return Workout{
		ID:             newID(now),
		CreatedAt:      now,
		Kind:           Cycling,
		Coords:         coords,
		DistanceKm:     distanceKm,
		DurationMin:    durationMin,
		ElevationGainM: elevationGainM,
		SpeedKmPerH:    SpeedKmPerH(distanceKm, durationMin),
		Description:    describe(Cycling, now),
	}
}

// Rehydrate re-tags a decoded record and restores its variant
// behavior. Decoded data is inert; without this step a reloaded
// running record would be a bare structure carrying a stale pace
// number. Missing derived fields and descriptions are recomputed from
// the base fields.
func Rehydrate(w Workout) (Workout, error) {
	switch w.Kind {
	case Running:
		if w.PaceMinPerKm == 0 && w.DistanceKm > 0 {
			w.PaceMinPerKm = PaceMinPerKm(w.DistanceKm, w.DurationMin)
		}
	case Cycling:
		if w.SpeedKmPerH == 0 && w.DurationMin > 0 {
			w.SpeedKmPerH = SpeedKmPerH(w.DistanceKm, w.DurationMin)
		}
	default:
		return Workout{}, fmt.Errorf("%w: %q", ErrUnknownKind, w.Kind)
	}
	if w.Description == "" {
		w.Description = describe(w.Kind, w.CreatedAt)
	}
	if err := w.Validate(); err != nil {
		return Workout{}, err
	}
	return w, nil
}

// Validate checks the record invariants: positive base fields, the
// variant field matching Kind, and variant-field exclusivity.
func (w Workout) Validate() error {
	if w.ID == "" {
		return errors.New("workout id missing")
	}
	if !positive(w.DistanceKm) {
		return fmt.Errorf("distance must be positive, got %v", w.DistanceKm)
	}
	if !positive(w.DurationMin) {
		return fmt.Errorf("duration must be positive, got %v", w.DurationMin)
	}
	switch w.Kind {
	case Running:
		if !positive(w.CadenceSpm) {
			return fmt.Errorf("cadence must be positive, got %v", w.CadenceSpm)
		}
		if w.ElevationGainM != 0 || w.SpeedKmPerH != 0 {
			return errors.New("running workout carries cycling fields")
		}
	case Cycling:
		if !positive(w.ElevationGainM) {
			return fmt.Errorf("elevation gain must be positive, got %v", w.ElevationGainM)
		}
		if w.CadenceSpm != 0 || w.PaceMinPerKm != 0 {
			return errors.New("cycling workout carries running fields")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, w.Kind)
	}
	return nil
}

// DerivedMetric returns the variant metric: pace for running, speed
// for cycling.
func (w Workout) DerivedMetric() float64 {
	switch w.Kind {
	case Running:
		return w.PaceMinPerKm
	case Cycling:
		return w.SpeedKmPerH
	default:
		return 0
	}
}

// PopupLabel is the marker popup text shown on the map.
func (w Workout) PopupLabel() string {
	switch w.Kind {
	case Cycling:
		return "🚴‍♀️ " + w.Description
	default:
		return "🏃‍♂️ " + w.Description
	}
}

func describe(kind Kind, t time.Time) string {
	name := "Running"
	if kind == Cycling {
		name = "Cycling"
	}
	return fmt.Sprintf("%s on %s %d", name, t.Month().String(), t.Day())
}

// newID derives the record id from the creation timestamp. Collisions
// are negligible at nanosecond resolution for a single-user diary;
// once assigned the id never changes.
func newID(t time.Time) string {
	return strconv.FormatInt(t.UnixNano(), 10)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func mustPositive(field string, v float64) {
	if math.IsNaN(v) || !positive(v) {
		panic(fmt.Sprintf("workout: %s must be a positive finite number, got %v", field, v))
	}
}
