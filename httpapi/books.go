package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/yabook/yabook/store"
)

// BookPayload covers create (title, year and author required) and modify
// (partial).
type BookPayload struct {
	Title    string `json:"title"`
	Year     int    `json:"year"`
	AuthorID string `json:"author_id"`
}

func (r BookPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 512)),
		validation.Field(&r.Year, validation.Required),
		validation.Field(&r.AuthorID, validation.Required, is.UUID),
	)
}

// BookCreate handles POST /api/books/. The author must exist.
func (s *Server) BookCreate(c *fiber.Ctx) error {
	payload := new(BookPayload)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "could not parse book payload")
	}

	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, err.Error())
	}

	authorID, err := uuid.Parse(payload.AuthorID)
	if err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "author_id is not a valid id")
	}

	if _, err := s.repos.Authors().GetByID(c.Context(), authorID); err != nil {
		return err
	}

	book, err := s.repos.Books().Create(c.Context(), &store.Book{
		Title:    payload.Title,
		Year:     payload.Year,
		AuthorID: authorID,
	})
	if err != nil {
		return err
	}

	s.logger.Info("book created", "id", book.ID, "user", Identity(c))

	return respond(c, fiber.StatusCreated, codeCreated, "book created", fiber.Map{
		"book": book,
	})
}

// BookList handles GET /api/books/ with pagination.
func (s *Server) BookList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	items, count, err := s.repos.Books().List(c.Context(), page, s.perPage)
	if err != nil {
		return err
	}

	prevURL, nextURL := pageLinks("/api/books/", page, s.perPage, count)

	return respond(c, fiber.StatusOK, codeSuccess, "book list", fiber.Map{
		"books":    items,
		"count":    count,
		"prev_url": prevURL,
		"next_url": nextURL,
	})
}

// BookDetail handles GET /api/books/:id
func (s *Server) BookDetail(c *fiber.Ctx) error {
	id, err := parseID(c, "book")
	if err != nil {
		return err
	}

	book, err := s.repos.Books().GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, codeSuccess, "book detail", fiber.Map{
		"book": book,
	})
}

// BookUpdate handles PUT /api/books/:id, a whole-record update.
func (s *Server) BookUpdate(c *fiber.Ctx) error {
	id, err := parseID(c, "book")
	if err != nil {
		return err
	}

	payload := new(BookPayload)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "could not parse book payload")
	}

	if err := validation.ValidateStruct(payload,
		validation.Field(&payload.Title, validation.Required, validation.Length(1, 512)),
		validation.Field(&payload.Year, validation.Required),
	); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, err.Error())
	}

	book, err := s.repos.Books().GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	book.Title = payload.Title
	book.Year = payload.Year

	if book, err = s.repos.Books().Update(c.Context(), book); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, codeSuccess, "book updated", fiber.Map{
		"book": book,
	})
}

// BookModify handles PATCH /api/books/:id, only the provided fields change.
func (s *Server) BookModify(c *fiber.Ctx) error {
	id, err := parseID(c, "book")
	if err != nil {
		return err
	}

	payload := new(BookPayload)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "could not parse book payload")
	}

	book, err := s.repos.Books().GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if payload.Title != "" {
		book.Title = payload.Title
	}
	if payload.Year != 0 {
		book.Year = payload.Year
	}

	if book, err = s.repos.Books().Update(c.Context(), book); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, codeSuccess, "book updated", fiber.Map{
		"book": book,
	})
}

// BookDelete handles DELETE /api/books/:id
func (s *Server) BookDelete(c *fiber.Ctx) error {
	id, err := parseID(c, "book")
	if err != nil {
		return err
	}

	if err := s.repos.Books().Delete(c.Context(), id); err != nil {
		return err
	}

	s.logger.Info("book deleted", "id", id, "user", Identity(c))

	return c.SendStatus(fiber.StatusNoContent)
}
