package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"sync"

	"github.com/PatF3lix/Mapty-App/internal/history"
	"github.com/PatF3lix/Mapty-App/internal/shared/geo"
	"github.com/PatF3lix/Mapty-App/internal/workout"
)

type State int

const (
	// AwaitingLocation is the initial state, waiting for the browser's
	// one-shot geolocation result.
	AwaitingLocation State = iota
	// AwaitingSelection is the idle state: map and history rendered,
	// waiting for a map click.
	AwaitingSelection
	// FormOpen holds the clicked coordinates while the form is shown.
	FormOpen
	// Failed is terminal for the session: geolocation was refused and
	// is not retried.
	Failed
)

var (
	ErrValidation  = errors.New("invalid workout input")
	ErrNotStarted  = errors.New("session not started")
	ErrNoSelection = errors.New("no map location selected")
)

// Controller owns one browser session: the workout store, the pending
// map selection, and the render dispatch to the map and form
// collaborators. All mutable session state lives here; there are no
// package-level globals. Events arrive from HTTP handlers and are
// serialized by the controller's mutex.
type Controller struct {
	mu      sync.Mutex
	state   State
	start   workout.Coordinates
	pending workout.Coordinates
	store   *workout.Store
	history *history.Adapter
	mapView MapView
	form    FormView
	zoom    int
}

func NewController(hist *history.Adapter, mapView MapView, form FormView, zoom int) *Controller {
	return &Controller{
		state:   AwaitingLocation,
		store:   workout.NewStore(),
		history: hist,
		mapView: mapView,
		form:    form,
		zoom:    zoom,
	}
}

// Start consumes the geolocation result: it centers the map on the
// current position, rehydrates the persisted history, and renders a
// marker and list item for every record. A read failure degrades to an
// empty history.
func (c *Controller) Start(ctx context.Context, coords workout.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != AwaitingLocation {
		return ErrNotStarted
	}

	c.start = coords
	c.mapView.CenterOn(coords, c.zoom)
	c.mapView.PlaceMarker(coords, "Current Location", "current-popup")

	records, err := c.history.Load(ctx)
	if err != nil {
		log.Printf("history load failed, starting empty: %v", err)
		records = nil
	}
	if err := c.store.ReplaceAll(records); err != nil {
		log.Printf("history rejected, starting empty: %v", err)
		c.store.Reset()
	}
	for _, w := range c.store.All() {
		c.mapView.PlaceMarker(w.Coords, w.PopupLabel(), string(w.Kind)+"-popup")
		c.form.AppendListItem(c.listItem(w))
	}

	c.state = AwaitingSelection
	return nil
}

// StartFailed consumes a geolocation refusal. The error is reported
// once and the session stays terminal; there is no retry.
func (c *Controller) StartFailed(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != AwaitingLocation {
		return
	}
	c.state = Failed
	c.form.ReportError("Could not get your position: " + reason)
}

// MapClicked retains the clicked coordinates and reveals the form. A
// click while the form is already open overwrites the previous
// selection (last click wins).
func (c *Controller) MapClicked(coords workout.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != AwaitingSelection && c.state != FormOpen {
		return ErrNotStarted
	}
	c.pending = coords
	c.state = FormOpen
	c.form.ShowForm()
	return nil
}

// KindChanged toggles the cadence/elevation input visibility. Pure UI
// side effect, no domain state changes.
func (c *Controller) KindChanged(rawKind string) error {
	kind, err := parseKind(rawKind)
	if err != nil {
		return err
	}
	c.form.ToggleVariantFields(kind)
	return nil
}

// Submit validates the raw form input and, on success, creates the
// record bound to the retained click coordinates, appends it to the
// store, dispatches marker and list renders, and persists the full
// store. Validation failure keeps the form open and leaves the store
// and the persisted blob untouched.
func (c *Controller) Submit(ctx context.Context, input Input) (workout.Workout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != FormOpen {
		return workout.Workout{}, ErrNoSelection
	}

	w, err := c.buildWorkout(input)
	if err != nil {
		c.form.ReportError(err.Error())
		return workout.Workout{}, err
	}

	if err := c.store.Append(w); err != nil {
		c.form.ReportError(err.Error())
		return workout.Workout{}, err
	}

	c.mapView.PlaceMarker(w.Coords, w.PopupLabel(), string(w.Kind)+"-popup")
	c.form.AppendListItem(c.listItem(w))
	c.form.ClearForm()
	c.form.HideForm()
	c.state = AwaitingSelection

	// Append happens-before persist; a write failure degrades to
	// in-memory-only history, it never rolls the record back.
	if err := c.history.Save(ctx, c.store); err != nil {
		log.Printf("history save failed: %v", err)
		c.form.ReportError("Workout saved for this session only; storing history failed")
	}
	return w, nil
}

func (c *Controller) buildWorkout(input Input) (workout.Workout, error) {
	kind, err := parseKind(input.Type)
	if err != nil {
		return workout.Workout{}, err
	}

	distance, err := parseField("distance", input.Distance)
	if err != nil {
		return workout.Workout{}, err
	}
	duration, err := parseField("duration", input.Duration)
	if err != nil {
		return workout.Workout{}, err
	}

	switch kind {
	case workout.Running:
		cadence, err := parseField("cadence", input.Cadence)
		if err != nil {
			return workout.Workout{}, err
		}
		return workout.NewRunning(c.pending, distance, duration, cadence), nil
	default:
		elevation, err := parseField("elevation gain", input.Elevation)
		if err != nil {
			return workout.Workout{}, err
		}
		return workout.NewCycling(c.pending, distance, duration, elevation), nil
	}
}

// ListItemClicked re-centers the map on the clicked record. Controller
// state is unchanged.
func (c *Controller) ListItemClicked(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, err := c.store.FindByID(id)
	if err != nil {
		return err
	}
	c.mapView.CenterOn(w.Coords, c.zoom)
	return nil
}

// Workouts returns the ordered history, read-only.
func (c *Controller) Workouts() []workout.Workout {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.All()
}

// Reset clears the persisted blob and the in-memory store. The session
// must be restarted afterwards; this is an administrative escape
// hatch, not a normal transition.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.history.Clear(ctx); err != nil {
		return err
	}
	c.store.Reset()
	return nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) listItem(w workout.Workout) ListItem {
	variant := w.CadenceSpm
	if w.Kind == workout.Cycling {
		variant = w.ElevationGainM
	}
	return ListItem{
		WorkoutID:     w.ID,
		Kind:          w.Kind,
		Description:   w.Description,
		DistanceKm:    w.DistanceKm,
		DurationMin:   w.DurationMin,
		DerivedMetric: w.DerivedMetric(),
		VariantField:  variant,
		FromStartKm:   geo.HaversineKm(c.start.Lat, c.start.Lng, w.Coords.Lat, w.Coords.Lng),
	}
}

func parseKind(raw string) (workout.Kind, error) {
	switch workout.Kind(raw) {
	case workout.Running:
		return workout.Running, nil
	case workout.Cycling:
		return workout.Cycling, nil
	default:
		return "", fmt.Errorf("%w: unknown type %q", ErrValidation, raw)
	}
}

// parseField coerces a raw form value and enforces the shared numeric
// invariant: finite and strictly positive, for both kinds.
func parseField(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrValidation, name)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive number", ErrValidation, name)
	}
	return v, nil
}
