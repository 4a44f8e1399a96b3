// server/http/middleware.go
package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ViniZap4/todo-server/filesystem"
)

const (
	corsMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsHeaders = "Content-Type, Authorization"
)

// corsMiddleware lets requests without an Origin through, allows every origin
// when "*" is configured and otherwise only the listed ones.
func corsMiddleware(origins []string, log zerolog.Logger) fiber.Handler {
	allowAll := false
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin != "" {
			if !allowAll && !allowed[origin] {
				log.Warn().Str("origin", origin).Msg("origin not allowed")
				return writeError(c, fiber.StatusForbidden, "origin not allowed")
			}
			c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
			c.Vary(fiber.HeaderOrigin)
			c.Set(fiber.HeaderAccessControlAllowMethods, corsMethods)
			c.Set(fiber.HeaderAccessControlAllowHeaders, corsHeaders)
		}

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

// requestLogger logs one line per request after the error handler has set
// the final status.
func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()

	if chainErr := c.Next(); chainErr != nil {
		if err := c.App().ErrorHandler(c, chainErr); err != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()
	event := s.log.Info()
	if status >= fiber.StatusInternalServerError {
		event = s.log.Error()
	}

	reqID, _ := c.Locals("requestid").(string)
	event.
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Str("request_id", reqID).
		Msg("request")

	return nil
}

// htmlFallback serves <path>.html for extensionless paths static did not match.
func htmlFallback(root string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Next()
		}
		if file, ok := filesystem.HTMLFallback(root, c.Path()); ok {
			return c.SendFile(file)
		}
		return c.Next()
	}
}
