package session

import "github.com/PatF3lix/Mapty-App/internal/workout"

// MapView is the consumed side of the map collaborator. Its event side
// (clicks) arrives through Controller.MapClicked.
type MapView interface {
	CenterOn(c workout.Coordinates, zoom int)
	PlaceMarker(c workout.Coordinates, popupLabel, styleClass string)
}

// FormView is the form/list collaborator: it consumes render commands
// and user-visible error reports.
type FormView interface {
	ShowForm()
	HideForm()
	ClearForm()
	ToggleVariantFields(kind workout.Kind)
	AppendListItem(item ListItem)
	ReportError(msg string)
}

// Input carries the raw string field values read from the form.
type Input struct {
	Type      string `json:"type"`
	Distance  string `json:"distance"`
	Duration  string `json:"duration"`
	Cadence   string `json:"cadence"`
	Elevation string `json:"elevation"`
}

// ListItem is the render payload for one history entry.
type ListItem struct {
	WorkoutID     string       `json:"workout_id"`
	Kind          workout.Kind `json:"kind"`
	Description   string       `json:"description"`
	DistanceKm    float64      `json:"distance_km"`
	DurationMin   float64      `json:"duration_min"`
	DerivedMetric float64      `json:"derived_metric"`
	VariantField  float64      `json:"variant_field"`
	FromStartKm   float64      `json:"from_start_km"`
}
