package handler

import (
	"github.com/gofiber/fiber/v2"

	"admissions/internal/http/middleware"
	"admissions/internal/model"
	"admissions/internal/service"
)

type registerResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// Register creates a student account and emails a verification code.
//
// @Summary Register a student
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RegisterInput true "Account"
// @Success 201 {object} registerResponse
// @Failure 400 {object} errorPayload
// @Router /auth/register [post]
func Register(svc service.AccountService, n Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RegisterInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		res, err := svc.Register(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		dispatch(c, n, res.Notifications)
		return c.Status(fiber.StatusCreated).JSON(registerResponse{
			Message: "registration successful, check your email for the verification code",
			User:    res.Value,
		})
	}
}

// VerifyEmail redeems a verification code.
//
// @Summary Verify email
// @Tags auth
// @Accept json
// @Param body body service.VerifyEmailInput true "Code"
// @Success 200 {object} messageResponse
// @Router /auth/verify-email [post]
func VerifyEmail(svc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.VerifyEmailInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		if err := svc.VerifyEmail(c.UserContext(), in); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(messageResponse{Message: "email verified"})
	}
}

// Login exchanges credentials for an access token.
//
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.LoginInput true "Credentials"
// @Success 200 {object} service.Session
// @Failure 401 {object} errorPayload
// @Router /auth/login [post]
func Login(svc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.LoginInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		sess, err := svc.Login(c.UserContext(), in)
		return respond(c, sess, err)
	}
}

// Me returns the authenticated user.
//
// @Summary Current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.User
// @Router /auth/me [get]
func Me(svc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.Me(c.UserContext(), middleware.UserID(c))
		return respond(c, u, err)
	}
}
