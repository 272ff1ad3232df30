package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Authors is the author repository. List is paginated, page numbering starts
// at 1 and the total count rides along for prev/next link building.
type Authors interface {
	Create(ctx context.Context, author *Author) (*Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)
	List(ctx context.Context, page, perPage int) ([]*Author, int, error)
	Update(ctx context.Context, author *Author) (*Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type authors struct {
	db *bun.DB
}

var _ Authors = (*authors)(nil)

func NewAuthorsRepository(db *bun.DB) Authors {
	return &authors{db: db}
}

func (a *authors) Create(ctx context.Context, author *Author) (*Author, error) {
	if author.ID == uuid.Nil {
		author.ID = uuid.New()
	}

	if _, err := a.db.NewInsert().Model(author).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create author")
	}

	return author, nil
}

// GetByID loads the author with its books.
func (a *authors) GetByID(ctx context.Context, id uuid.UUID) (*Author, error) {
	author := &Author{}

	err := a.db.NewSelect().
		Model(author).
		Relation("Books").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewRecordNotFound("author", id.String())
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not retrieve author")
	}

	return author, nil
}

func (a *authors) List(ctx context.Context, page, perPage int) ([]*Author, int, error) {
	if page < 1 {
		page = 1
	}

	var items []*Author

	count, err := a.db.NewSelect().
		Model(&items).
		Order("created_at ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		ScanAndCount(ctx)

	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CategoryInternal, "could not list authors")
	}

	return items, count, nil
}

func (a *authors) Update(ctx context.Context, author *Author) (*Author, error) {
	now := time.Now()
	author.UpdatedAt = &now

	res, err := a.db.NewUpdate().
		Model(author).
		Column("first_name", "last_name", "updated_at").
		WherePK().
		Exec(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not update author")
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, NewRecordNotFound("author", author.ID.String())
	}

	return author, nil
}

func (a *authors) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*Author)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "could not delete author")
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return NewRecordNotFound("author", id.String())
	}

	return nil
}
