// server/http/server.go
package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ViniZap4/todo-server/auth"
	"github.com/ViniZap4/todo-server/domain"
	"github.com/ViniZap4/todo-server/filesystem"
)

// Persister durably stores the whole document.
type Persister interface {
	Save(doc *domain.Document) error
}

// Server owns the in-memory document. Every mutation holds the write lock
// through persistence, so requests never interleave their changes.
type Server struct {
	mu    sync.RWMutex
	doc   *domain.Document
	store Persister
	log   zerolog.Logger
	now   func() time.Time
}

func NewServer(doc *domain.Document, store Persister, log zerolog.Logger) *Server {
	if doc == nil {
		doc = domain.NewDocument()
	}
	return &Server{doc: doc, store: store, log: log, now: time.Now}
}

type Options struct {
	PublicDir string
	Origins   []string
	BodyLimit int
	TokenHash string
	Version   string
}

// App wires the routes under /api plus static assets into a fiber app.
func (s *Server) App(opts Options) (*fiber.App, error) {
	guard, err := auth.Middleware(opts.TokenHash)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "todo-server",
		BodyLimit:             opts.BodyLimit,
		ErrorHandler:          s.errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(s.requestLogger)
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(corsMiddleware(opts.Origins, s.log))

	api := app.Group("/api")
	api.Get("/version", s.HandleVersion(opts.Version))
	api.Get("/health", s.HandleHealth)
	api.Get("/todos", s.HandleListTodos)
	api.Get("/todos/:id", s.HandleGetTodo)
	api.Post("/todos", guard, s.HandleCreateTodo)
	api.Put("/todos/:id", guard, s.HandleUpdateTodo)
	api.Delete("/todos/:id", guard, s.HandleDeleteTodo)

	if opts.PublicDir != "" && filesystem.DirExists(opts.PublicDir) {
		app.Static("/", opts.PublicDir, fiber.Static{Index: "index.html"})
		app.Get("/*", htmlFallback(opts.PublicDir))
	}

	return app, nil
}
