package httpapi

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/yabook/yabook/store"
)

// AuthorPayload covers create (all fields required) and modify (partial).
type AuthorPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r AuthorPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
	)
}

// AuthorCreate handles POST /api/authors/
func (s *Server) AuthorCreate(c *fiber.Ctx) error {
	payload := new(AuthorPayload)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "could not parse author payload")
	}

	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, err.Error())
	}

	author, err := s.repos.Authors().Create(c.Context(), &store.Author{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	})
	if err != nil {
		return err
	}

	s.logger.Info("author created", "id", author.ID, "user", Identity(c))

	return respond(c, fiber.StatusCreated, codeCreated, "author created", fiber.Map{
		"author": author,
	})
}

// AuthorList handles GET /api/authors/ with pagination.
func (s *Server) AuthorList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	items, count, err := s.repos.Authors().List(c.Context(), page, s.perPage)
	if err != nil {
		return err
	}

	prevURL, nextURL := pageLinks("/api/authors/", page, s.perPage, count)

	return respond(c, fiber.StatusOK, codeSuccess, "author list", fiber.Map{
		"authors":  items,
		"count":    count,
		"prev_url": prevURL,
		"next_url": nextURL,
	})
}

// AuthorDetail handles GET /api/authors/:id, books included.
func (s *Server) AuthorDetail(c *fiber.Ctx) error {
	id, err := parseID(c, "author")
	if err != nil {
		return err
	}

	author, err := s.repos.Authors().GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, codeSuccess, "author detail", fiber.Map{
		"author": author,
	})
}

// AuthorUpdate handles PUT /api/authors/:id, a whole-record update.
func (s *Server) AuthorUpdate(c *fiber.Ctx) error {
	id, err := parseID(c, "author")
	if err != nil {
		return err
	}

	payload := new(AuthorPayload)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "could not parse author payload")
	}

	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, err.Error())
	}

	author, err := s.repos.Authors().GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	author.FirstName = payload.FirstName
	author.LastName = payload.LastName

	if author, err = s.repos.Authors().Update(c.Context(), author); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, codeSuccess, "author updated", fiber.Map{
		"author": author,
	})
}

// AuthorModify handles PATCH /api/authors/:id, only the provided fields
// change.
func (s *Server) AuthorModify(c *fiber.Ctx) error {
	id, err := parseID(c, "author")
	if err != nil {
		return err
	}

	payload := new(AuthorPayload)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "could not parse author payload")
	}

	author, err := s.repos.Authors().GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if payload.FirstName != "" {
		author.FirstName = payload.FirstName
	}
	if payload.LastName != "" {
		author.LastName = payload.LastName
	}

	if author, err = s.repos.Authors().Update(c.Context(), author); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, codeSuccess, "author updated", fiber.Map{
		"author": author,
	})
}

// AuthorDelete handles DELETE /api/authors/:id
func (s *Server) AuthorDelete(c *fiber.Ctx) error {
	id, err := parseID(c, "author")
	if err != nil {
		return err
	}

	if err := s.repos.Authors().Delete(c.Context(), id); err != nil {
		return err
	}

	s.logger.Info("author deleted", "id", id, "user", Identity(c))

	return c.SendStatus(fiber.StatusNoContent)
}

func parseID(c *fiber.Ctx, kind string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.New(kind+" not found", errors.CategoryNotFound).
			WithCode(errors.CodeNotFound).
			WithMetadata(map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

// pageLinks computes prev/next URLs the way the original API did, the prev
// link never points past the actual last page.
func pageLinks(base string, page, perPage, count int) (string, string) {
	if perPage < 1 {
		return "", ""
	}

	maxPages := count / perPage
	if count%perPage != 0 {
		maxPages++
	}

	var prev, next string
	if page > 1 {
		prevPage := page - 1
		if prevPage > maxPages {
			prevPage = maxPages
		}
		if prevPage > 0 {
			prev = fmt.Sprintf("%s?page=%d", base, prevPage)
		}
	}

	if page < maxPages {
		next = fmt.Sprintf("%s?page=%d", base, page+1)
	}

	return prev, next
}
