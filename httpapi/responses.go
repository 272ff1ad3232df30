package httpapi

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/yabook/yabook/auth"
)

// Envelope codes. Every response carries {code, message} plus any value
// keys, matching the historic API clients already parse.
const (
	codeSuccess      = "success"
	codeCreated      = "created"
	codeInvalidInput = "invalidInput"
	codeBadRequest   = "badRequest"
	codeUnauthorized = "unauthorized"
	codeNotFound     = "notFound"
	codeServerError  = "serverError"
)

// subStatusTokenExpired marks an expired-but-otherwise-valid token so
// clients can trigger a refresh instead of forcing a new login.
const subStatusTokenExpired = 101

func respond(c *fiber.Ctx, status int, code, message string, value fiber.Map) error {
	payload := fiber.Map{
		"code":    code,
		"message": message,
	}
	for k, v := range value {
		payload[k] = v
	}
	return c.Status(status).JSON(payload)
}

// errorHandler is the single choke point mapping errors to HTTP. Rich error
// categories drive the status, internal detail stays in the logs.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if stderrors.As(err, &fiberErr) {
		return respond(c, fiberErr.Code, codeForStatus(fiberErr.Code), fiberErr.Message, nil)
	}

	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "an unexpected server error occurred")
	}

	s.logger.Error(
		"request failed",
		"error", richErr.Message,
		"category", richErr.Category,
		"text_code", richErr.TextCode,
		"path", c.OriginalURL(),
	)

	status, code := statusForCategory(richErr.Category)

	message := richErr.Message
	if status == fiber.StatusInternalServerError {
		// never leak internals to the client
		message = "an unexpected server error occurred"
	}

	payload := fiber.Map{}
	if auth.IsTokenExpiredError(richErr) {
		payload["sub_status"] = subStatusTokenExpired
		if tokenType, ok := richErr.Metadata["token_type"]; ok {
			payload["token_type"] = tokenType
		}
	}

	return respond(c, status, code, message, payload)
}

func statusForCategory(category errors.Category) (int, string) {
	switch category {
	case errors.CategoryValidation, errors.CategoryConflict:
		// duplicates report as 422, not 409, preserved from the
		// historic API
		return fiber.StatusUnprocessableEntity, codeInvalidInput
	case errors.CategoryBadInput:
		return fiber.StatusBadRequest, codeBadRequest
	case errors.CategoryNotFound:
		return fiber.StatusNotFound, codeNotFound
	case errors.CategoryAuth, errors.CategoryAuthz:
		return fiber.StatusUnauthorized, codeUnauthorized
	default:
		return fiber.StatusInternalServerError, codeServerError
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return codeNotFound
	case fiber.StatusUnauthorized:
		return codeUnauthorized
	case fiber.StatusBadRequest:
		return codeBadRequest
	case fiber.StatusUnprocessableEntity:
		return codeInvalidInput
	default:
		return codeServerError
	}
}
