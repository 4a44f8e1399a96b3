// server/http/handlers.go
package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ViniZap4/todo-server/domain"
)

var errBadBody = errors.New("invalid JSON body")

func (s *Server) HandleVersion(version string) fiber.Handler {
	if version == "" {
		version = "0.0.0"
	}
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"version": version})
	}
}

func (s *Server) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok":   true,
		"time": s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

func (s *Server) HandleListTodos(c *fiber.Ctx) error {
	s.mu.RLock()
	todos := s.doc.List()
	s.mu.RUnlock()

	return c.JSON(todos)
}

func (s *Server) HandleGetTodo(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return s.fail(c, err)
	}

	s.mu.RLock()
	todo, err := s.doc.Find(id)
	s.mu.RUnlock()
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(todo)
}

func (s *Server) HandleCreateTodo(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return s.fail(c, err)
	}

	// Non-scalar or null titles are treated as missing.
	title, _ := domain.CoerceString(body["title"])
	done := domain.Truthy(body["done"])

	s.mu.Lock()
	defer s.mu.Unlock()

	todo, err := s.doc.Insert(title, done, s.now())
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.persist(); err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(todo)
}

func (s *Server) HandleUpdateTodo(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return s.fail(c, err)
	}

	body, err := parseBody(c)
	if err != nil {
		return s.fail(c, err)
	}

	var patch domain.Patch
	if v, ok := body["title"]; ok {
		// A null title is present but empty, so it fails as "title empty".
		title, _ := domain.CoerceString(v)
		patch.Title = &title
	}
	if v, ok := body["done"]; ok {
		done := domain.Truthy(v)
		patch.Done = &done
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	todo, err := s.doc.Update(id, patch)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.persist(); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(todo)
}

func (s *Server) HandleDeleteTodo(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return s.fail(c, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.doc.Delete(id); err != nil {
		return s.fail(c, err)
	}
	if err := s.persist(); err != nil {
		return s.fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// persist flushes the document. The in-memory change is kept on failure.
func (s *Server) persist() error {
	start := time.Now()
	if err := s.store.Save(s.doc); err != nil {
		s.log.Error().Err(err).Msg("failed to persist todo database")
		return err
	}
	s.log.Debug().Dur("took", time.Since(start)).Int("todos", len(s.doc.Todos)).Msg("todo database saved")
	return nil
}

func parseID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, &domain.ValidationError{Message: "invalid id"}
	}
	return id, nil
}

// parseBody decodes a JSON object body. An empty body is an empty object.
func parseBody(c *fiber.Ctx) (map[string]any, error) {
	raw := bytes.TrimSpace(c.Body())
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil || body == nil {
		return nil, errBadBody
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errBadBody
	}
	return body, nil
}
