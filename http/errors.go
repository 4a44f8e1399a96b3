// server/http/errors.go
package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ViniZap4/todo-server/domain"
	"github.com/ViniZap4/todo-server/filesystem"
)

// fail maps domain and persistence errors to a status and {"error": msg}.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError

	switch {
	case errors.As(err, &ve):
		return writeError(c, fiber.StatusBadRequest, ve.Message)
	case errors.Is(err, errBadBody):
		return writeError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, filesystem.ErrPersist):
		return writeError(c, fiber.StatusInternalServerError, filesystem.ErrPersist.Error())
	default:
		s.log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		return writeError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

// errorHandler renders framework errors (unknown routes, oversized bodies,
// recovered panics) in the same shape as handler errors.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}

	return writeError(c, code, msg)
}

func writeError(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
