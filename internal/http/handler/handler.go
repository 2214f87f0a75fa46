// Package handler exposes the admission services over HTTP. Handlers are
// constructed per route so each one can be mounted and tested on its own.
package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"admissions/internal/notify"
)

// Notifier delivers the emails a mutation produced after the response is decided.
type Notifier interface {
	Go(ctx context.Context, msgs []notify.Message)
}

func dispatch(c *fiber.Ctx, n Notifier, msgs []notify.Message) {
	if n == nil || len(msgs) == 0 {
		return
	}
	n.Go(c.UserContext(), msgs)
}

// respond writes v as JSON, or the mapped error.
func respond[T any](c *fiber.Ctx, v T, err error) error {
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(v)
}

func invalidBody(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
}

// pagination reads page and limit. Missing values are zero and defaulted by the services.
func pagination(c *fiber.Ctx) (page, limit int, ok bool) {
	page, ok = queryInt(c, "page")
	if !ok {
		return 0, 0, false
	}
	limit, ok = queryInt(c, "limit")
	return page, limit, ok
}

func queryInt(c *fiber.Ctx, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func invalidQuery(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", "page and limit must be non-negative integers")
}

type messageResponse struct {
	Message string `json:"message"`
}
