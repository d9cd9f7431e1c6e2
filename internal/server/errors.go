package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/discochess/enginemetrics"
)

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// fail writes the JSON error body for err. Unclassified errors are reported
// as 500 with what prefixing the error text.
func (s *Server) fail(c *fiber.Ctx, err error, what string) error {
	status, msg := classify(err, what)
	if status >= fiber.StatusInternalServerError {
		s.logger.Error(what, zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(errorBody{Error: msg})
}

func classify(err error, what string) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.Is(err, enginemetrics.ErrNoDocStore):
		return fiber.StatusInternalServerError, "Knowledge base not available"
	case errors.Is(err, enginemetrics.ErrNoBlobStore):
		return fiber.StatusInternalServerError, "Storage not available"
	case errors.Is(err, enginemetrics.ErrUnsupportedType),
		errors.Is(err, enginemetrics.ErrInvalidContent),
		errors.Is(err, enginemetrics.ErrInvalidFileName):
		return fiber.StatusBadRequest, what + ": " + err.Error()
	default:
		return fiber.StatusInternalServerError, what + ": " + err.Error()
	}
}

// handleError is the application error handler. It catches errors no
// handler wrote a response for, including recovered panics.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code != fiber.StatusInternalServerError {
			msg = fe.Message
		}
	}
	if code >= fiber.StatusInternalServerError {
		s.logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(errorBody{Error: msg})
}
