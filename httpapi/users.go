package httpapi

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// SignupRequest is the signup payload.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 512)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 512)),
	)
}

// LoginRequest accepts either an email or a username as identifier.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if r.Email == "" && r.Username == "" {
		return validation.Errors{
			"email": fmt.Errorf("either email or username is required"),
		}
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required),
	)
}

// Identifier returns the email when present, the username otherwise.
func (r LoginRequest) Identifier() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// SignupPost handles POST /api/users/
func (s *Server) SignupPost(c *fiber.Ctx) error {
	payload := new(SignupRequest)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "could not parse signup payload")
	}

	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, err.Error())
	}

	if _, err := s.flow.Signup(c.Context(), payload.Username, payload.Email, payload.Password); err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, codeCreated,
		"user created, check your email to confirm the account", nil)
}

// ConfirmGet handles GET /api/users/confirm/:token
func (s *Server) ConfirmGet(c *fiber.Ctx) error {
	user, err := s.flow.Confirm(c.Context(), c.Params("token"))
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, codeSuccess,
		"email verified, you can proceed to login", fiber.Map{
			"email": user.Email,
		})
}

// LoginPost handles POST /api/users/login
func (s *Server) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "could not parse login payload")
	}

	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, err.Error())
	}

	user, pair, err := s.flow.Login(c.Context(), payload.Identifier(), payload.Password)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, codeSuccess,
		fmt.Sprintf("logged in as %s", user.Username), fiber.Map{
			"access_token":  pair.AccessToken,
			"refresh_token": pair.RefreshToken,
		})
}

// RefreshPost handles POST /api/users/refresh. The refresh token rides in
// the Authorization header.
func (s *Server) RefreshPost(c *fiber.Ctx) error {
	raw, err := bearerToken(c)
	if err != nil {
		return err
	}

	access, err := s.flow.RefreshAccessToken(raw)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, codeCreated, "access token refreshed", fiber.Map{
		"access_token": access,
	})
}
