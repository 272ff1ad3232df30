package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yabook/yabook/auth"
	"github.com/yabook/yabook/store"
)

// Server is the HTTP boundary. Handlers return rich errors and the fiber
// error handler maps them to the response envelope, nothing else writes
// error payloads.
type Server struct {
	app      *fiber.App
	flow     *auth.Flow
	sessions *auth.SessionIssuer
	repos    store.Manager
	perPage  int
	logger   auth.Logger
}

// DefaultItemsPerPage matches the historic API default.
const DefaultItemsPerPage = 3

type ServerOption func(*Server) *Server

func WithLogger(logger auth.Logger) ServerOption {
	return func(s *Server) *Server {
		s.logger = logger
		return s
	}
}

// WithItemsPerPage overrides the page size used by list endpoints.
func WithItemsPerPage(perPage int) ServerOption {
	return func(s *Server) *Server {
		if perPage > 0 {
			s.perPage = perPage
		}
		return s
	}
}

// New wires the REST surface: the signup/confirm/login/refresh flow plus the
// author and book CRUD endpoints.
func New(flow *auth.Flow, sessions *auth.SessionIssuer, repos store.Manager, opts ...ServerOption) *Server {
	s := &Server{
		flow:     flow,
		sessions: sessions,
		repos:    repos,
		perPage:  DefaultItemsPerPage,
		logger:   noopLogger{},
	}

	for _, opt := range opts {
		s = opt(s)
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "yabook",
		ErrorHandler: s.errorHandler,
	})

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	api := s.app.Group("/api")

	users := api.Group("/users")
	users.Post("/", s.SignupPost)
	users.Get("/confirm/:token", s.ConfirmGet)
	users.Post("/login", s.LoginPost)
	users.Post("/refresh", s.RefreshPost)

	protected := s.RequireAccessToken()

	authors := api.Group("/authors")
	authors.Post("/", protected, s.AuthorCreate)
	authors.Get("/", s.AuthorList)
	authors.Get("/:id", s.AuthorDetail)
	authors.Put("/:id", protected, s.AuthorUpdate)
	authors.Patch("/:id", protected, s.AuthorModify)
	authors.Delete("/:id", protected, s.AuthorDelete)

	books := api.Group("/books")
	books.Post("/", protected, s.BookCreate)
	books.Get("/", s.BookList)
	books.Get("/:id", s.BookDetail)
	books.Put("/:id", protected, s.BookUpdate)
	books.Patch("/:id", protected, s.BookModify)
	books.Delete("/:id", protected, s.BookDelete)
}

// App exposes the fiber app, used by tests to drive requests through
// app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
