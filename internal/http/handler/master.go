package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// listAll serves a master-data list that takes no parameters.
func listAll[T any](fetch func(context.Context) ([]T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := fetch(c.UserContext())
		return respond(c, items, err)
	}
}

// listBy serves a master-data lookup keyed by one query parameter.
func listBy[T any](param string, fetch func(context.Context, string) (T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := fetch(c.UserContext(), c.Query(param))
		return respond(c, v, err)
	}
}

// createWith decodes the body into In and responds 201 with the created record.
func createWith[In, T any](create func(context.Context, In) (T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in In
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		v, err := create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(v)
	}
}

// updateWith replaces the record named by the :id path parameter.
func updateWith[In, T any](update func(context.Context, string, In) (T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in In
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		v, err := update(c.UserContext(), c.Params("id"), in)
		return respond(c, v, err)
	}
}

func deleteWith(del func(context.Context, string) error, done string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := del(c.UserContext(), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(messageResponse{Message: done})
	}
}
