package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Books is the book repository.
type Books interface {
	Create(ctx context.Context, book *Book) (*Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)
	List(ctx context.Context, page, perPage int) ([]*Book, int, error)
	Update(ctx context.Context, book *Book) (*Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type books struct {
	db *bun.DB
}

var _ Books = (*books)(nil)

func NewBooksRepository(db *bun.DB) Books {
	return &books{db: db}
}

func (b *books) Create(ctx context.Context, book *Book) (*Book, error) {
	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}

	if _, err := b.db.NewInsert().Model(book).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create book")
	}

	return book, nil
}

func (b *books) GetByID(ctx context.Context, id uuid.UUID) (*Book, error) {
	book := &Book{}

	err := b.db.NewSelect().
		Model(book).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewRecordNotFound("book", id.String())
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not retrieve book")
	}

	return book, nil
}

func (b *books) List(ctx context.Context, page, perPage int) ([]*Book, int, error) {
	if page < 1 {
		page = 1
	}

	var items []*Book

	count, err := b.db.NewSelect().
		Model(&items).
		Order("created_at ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		ScanAndCount(ctx)

	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CategoryInternal, "could not list books")
	}

	return items, count, nil
}

func (b *books) Update(ctx context.Context, book *Book) (*Book, error) {
	now := time.Now()
	book.UpdatedAt = &now

	res, err := b.db.NewUpdate().
		Model(book).
		Column("title", "year", "updated_at").
		WherePK().
		Exec(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not update book")
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, NewRecordNotFound("book", book.ID.String())
	}

	return book, nil
}

func (b *books) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := b.db.NewDelete().
		Model((*Book)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "could not delete book")
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return NewRecordNotFound("book", id.String())
	}

	return nil
}
