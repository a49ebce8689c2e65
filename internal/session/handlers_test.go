package session

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PatF3lix/Mapty-App/internal/history"
	"github.com/PatF3lix/Mapty-App/internal/workout"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func newTestApp(t *testing.T) (*fiber.App, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	reg := NewRegistry(func(sessionID string) *Controller {
		adapter := history.NewAdapter(history.NewRedisStore(client), "workouts:"+sessionID)
		return NewController(adapter, &fakeMap{}, &fakeForm{}, 13)
	})

	app := fiber.New()
	RegisterRoutes(app.Group("/sessions"), reg)
	return app, srv
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := postJSON(t, app, "/sessions/", fiber.Map{})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session status: %d", resp.StatusCode)
	}
	var body struct {
		SessionID string `json:"session_id"`
	}
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &body); err != nil || body.SessionID == "" {
		t.Fatalf("session id missing: %v %s", err, raw)
	}
	return body.SessionID
}

func TestSessionFlow(t *testing.T) {
	app, _ := newTestApp(t)
	id := createSession(t, app)

	resp := postJSON(t, app, "/sessions/"+id+"/location", fiber.Map{"lat": 40.7, "lng": -74.0})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("location status: %d", resp.StatusCode)
	}

	resp = postJSON(t, app, "/sessions/"+id+"/clicks", fiber.Map{"lat": 40.71, "lng": -74.01})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("click status: %d", resp.StatusCode)
	}

	resp = postJSON(t, app, "/sessions/"+id+"/kind", fiber.Map{"kind": "cycling"})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("kind status: %d", resp.StatusCode)
	}

	resp = postJSON(t, app, "/sessions/"+id+"/workouts", Input{
		Type: "cycling", Distance: "20", Duration: "60", Elevation: "300",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit status: %d", resp.StatusCode)
	}
	var created workout.Workout
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode workout: %v", err)
	}
	if created.SpeedKmPerH != 20.0 {
		t.Fatalf("unexpected speed: %v", created.SpeedKmPerH)
	}

	req := httptest.NewRequest(http.MethodGet, "/sessions/"+id+"/workouts", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v %d", err, resp.StatusCode)
	}
	var listed []workout.Workout
	raw, _ = io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &listed); err != nil || len(listed) != 1 {
		t.Fatalf("expected one workout: %v %s", err, raw)
	}

	resp = postJSON(t, app, "/sessions/"+id+"/workouts/"+created.ID+"/focus", fiber.Map{})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("focus status: %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodDelete, "/sessions/"+id, nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("reset status: %v %d", err, resp.StatusCode)
	}

	// session dropped after reset
	resp = postJSON(t, app, "/sessions/"+id+"/clicks", fiber.Map{"lat": 1.0, "lng": 2.0})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected session gone, got %d", resp.StatusCode)
	}
}

func TestLocationFailure(t *testing.T) {
	app, _ := newTestApp(t)
	id := createSession(t, app)

	resp := postJSON(t, app, "/sessions/"+id+"/location", fiber.Map{"error": "permission denied"})
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("failure status: %d", resp.StatusCode)
	}

	resp = postJSON(t, app, "/sessions/"+id+"/clicks", fiber.Map{"lat": 1.0, "lng": 2.0})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected conflict after geolocation failure, got %d", resp.StatusCode)
	}
}

func TestSubmitValidationStatus(t *testing.T) {
	app, _ := newTestApp(t)
	id := createSession(t, app)

	postJSON(t, app, "/sessions/"+id+"/location", fiber.Map{"lat": 40.7, "lng": -74.0})
	postJSON(t, app, "/sessions/"+id+"/clicks", fiber.Map{"lat": 40.71, "lng": -74.01})

	resp := postJSON(t, app, "/sessions/"+id+"/workouts", Input{
		Type: "running", Distance: "-1", Duration: "10", Cadence: "5",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}

func TestSubmitWithoutClickStatus(t *testing.T) {
	app, _ := newTestApp(t)
	id := createSession(t, app)

	postJSON(t, app, "/sessions/"+id+"/location", fiber.Map{"lat": 40.7, "lng": -74.0})

	resp := postJSON(t, app, "/sessions/"+id+"/workouts", Input{
		Type: "running", Distance: "5", Duration: "25", Cadence: "178",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected conflict, got %d", resp.StatusCode)
	}
}

func TestUnknownSession(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/sessions/nope/clicks", fiber.Map{"lat": 1.0, "lng": 2.0})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found, got %d", resp.StatusCode)
	}
}

func TestUnknownWorkoutFocus(t *testing.T) {
	app, _ := newTestApp(t)
	id := createSession(t, app)
	postJSON(t, app, "/sessions/"+id+"/location", fiber.Map{"lat": 40.7, "lng": -74.0})

	resp := postJSON(t, app, "/sessions/"+id+"/workouts/missing/focus", fiber.Map{})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found, got %d", resp.StatusCode)
	}
}

func TestBadRequestBodies(t *testing.T) {
	app, _ := newTestApp(t)
	id := createSession(t, app)

	for _, path := range []string{
		"/sessions/" + id + "/location",
		"/sessions/" + id + "/clicks",
		"/sessions/" + id + "/kind",
		"/sessions/" + id + "/workouts",
	} {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte("{")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil || resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected bad request for %s, got %d", path, resp.StatusCode)
		}
	}
}

func TestUnknownKindStatus(t *testing.T) {
	app, _ := newTestApp(t)
	id := createSession(t, app)

	resp := postJSON(t, app, "/sessions/"+id+"/kind", fiber.Map{"kind": "rowing"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}
