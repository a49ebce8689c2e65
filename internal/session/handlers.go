package session

import (
	"errors"

	"github.com/PatF3lix/Mapty-App/internal/workout"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, reg *Registry) {
	r.Post("/", func(c *fiber.Ctx) error {
		id, _ := reg.Create()
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session_id": id})
	})

	r.Post("/:id/location", func(c *fiber.Ctx) error {
		ctrl, ok := reg.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}

		var body struct {
			Lat   *float64 `json:"lat"`
			Lng   *float64 `json:"lng"`
			Error string   `json:"error"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if body.Error != "" || body.Lat == nil || body.Lng == nil {
			reason := body.Error
			if reason == "" {
				reason = "position unavailable"
			}
			ctrl.StartFailed(reason)
			return c.SendStatus(fiber.StatusAccepted)
		}

		coords := workout.Coordinates{Lat: *body.Lat, Lng: *body.Lng}
		if err := ctrl.Start(c.Context(), coords); err != nil {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/:id/clicks", func(c *fiber.Ctx) error {
		ctrl, ok := reg.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}

		var coords workout.Coordinates
		if err := c.BodyParser(&coords); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := ctrl.MapClicked(coords); err != nil {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/:id/kind", func(c *fiber.Ctx) error {
		ctrl, ok := reg.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}

		var body struct {
			Kind string `json:"kind"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := ctrl.KindChanged(body.Kind); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/:id/workouts", func(c *fiber.Ctx) error {
		ctrl, ok := reg.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}

		var input Input
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		w, err := ctrl.Submit(c.Context(), input)
		switch {
		case errors.Is(err, ErrValidation):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNoSelection):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(w)
	})

	r.Get("/:id/workouts", func(c *fiber.Ctx) error {
		ctrl, ok := reg.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		return c.JSON(ctrl.Workouts())
	})

	r.Post("/:id/workouts/:workoutID/focus", func(c *fiber.Ctx) error {
		ctrl, ok := reg.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		if err := ctrl.ListItemClicked(c.Params("workoutID")); err != nil {
			if errors.Is(err, workout.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		ctrl, ok := reg.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		if err := ctrl.Reset(c.Context()); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		reg.Drop(c.Params("id"))
		return c.SendStatus(fiber.StatusNoContent)
	})
}
