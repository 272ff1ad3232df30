package store

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"
)

// Manager exposes all repositories
type Manager interface {
	Users() Users
	Authors() Authors
	Books() Books
	Validate() error
	MustValidate()
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
}

type mngr struct {
	db      *bun.DB
	users   Users
	authors Authors
	books   Books
}

func NewManager(db *bun.DB) Manager {
	return &mngr{
		db:      db,
		users:   NewUsersRepository(db),
		authors: NewAuthorsRepository(db),
		books:   NewBooksRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.authors == nil {
		return errors.New("repository authors should be initialized")
	}

	if m.books == nil {
		return errors.New("repository books should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Authors() Authors {
	return m.authors
}

func (m mngr) Books() Books {
	return m.books
}
