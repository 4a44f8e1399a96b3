// server/auth/auth.go
package auth

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Middleware guards a route group with a bearer token checked against a
// bcrypt hash. An empty hash disables the check.
func Middleware(hash string) (fiber.Handler, error) {
	if hash == "" {
		return func(c *fiber.Ctx) error { return c.Next() }, nil
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid api token hash: %w", err)
	}

	return func(c *fiber.Ctx) error {
		token, ok := bearer(c.Get(fiber.HeaderAuthorization))
		if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		return c.Next()
	}, nil
}

func bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
