package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yabook/yabook/store"
)

func createAuthor(t *testing.T, authors store.Authors, first, last string, offset time.Duration) *store.Author {
	t.Helper()

	author, err := authors.Create(context.Background(), &store.Author{
		FirstName: first,
		LastName:  last,
		CreatedAt: timestamp(offset),
	})
	require.NoError(t, err)
	return author
}

func TestAuthorsCRUD(t *testing.T) {
	repos := setupManager(t)
	authors := repos.Authors()
	ctx := context.Background()

	author := createAuthor(t, authors, "Jean", "de Brunhoff", 0)
	assert.NotEqual(t, uuid.Nil, author.ID)

	loaded, err := authors.GetByID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jean", loaded.FirstName)
	assert.Empty(t, loaded.Books)

	loaded.LastName = "de Brunhoff Sr."
	updated, err := authors.Update(ctx, loaded)
	require.NoError(t, err)
	assert.Equal(t, "de Brunhoff Sr.", updated.LastName)
	assert.NotNil(t, updated.UpdatedAt)

	require.NoError(t, authors.Delete(ctx, author.ID))

	_, err = authors.GetByID(ctx, author.ID)
	assert.True(t, errors.IsNotFound(err))

	err = authors.Delete(ctx, author.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestAuthorsGetByIDUnknown(t *testing.T) {
	authors := setupManager(t).Authors()

	_, err := authors.GetByID(context.Background(), uuid.New())
	assert.True(t, errors.IsNotFound(err))
}

func TestAuthorsListPagination(t *testing.T) {
	authors := setupManager(t).Authors()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		createAuthor(t, authors, fmt.Sprintf("Author%d", i), "Test", time.Duration(i)*time.Minute)
	}

	page1, count, err := authors.List(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	require.Len(t, page1, 3)
	assert.Equal(t, "Author0", page1[0].FirstName)

	page2, count, err := authors.List(ctx, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	require.Len(t, page2, 2)
	assert.Equal(t, "Author3", page2[0].FirstName)

	page3, count, err := authors.List(ctx, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.Empty(t, page3)
}

func TestBooksCRUD(t *testing.T) {
	repos := setupManager(t)
	ctx := context.Background()

	author := createAuthor(t, repos.Authors(), "Jean", "de Brunhoff", 0)

	book, err := repos.Books().Create(ctx, &store.Book{
		Title:     "Histoire de Babar",
		Year:      1931,
		AuthorID:  author.ID,
		CreatedAt: timestamp(0),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, book.ID)

	loaded, err := repos.Books().GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Histoire de Babar", loaded.Title)
	assert.Equal(t, 1931, loaded.Year)

	loaded.Year = 1932
	updated, err := repos.Books().Update(ctx, loaded)
	require.NoError(t, err)
	assert.Equal(t, 1932, updated.Year)

	// the author detail picks the book up through the relation
	withBooks, err := repos.Authors().GetByID(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, withBooks.Books, 1)
	assert.Equal(t, "Histoire de Babar", withBooks.Books[0].Title)

	require.NoError(t, repos.Books().Delete(ctx, book.ID))

	_, err = repos.Books().GetByID(ctx, book.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestBooksListPagination(t *testing.T) {
	repos := setupManager(t)
	ctx := context.Background()

	author := createAuthor(t, repos.Authors(), "Jean", "de Brunhoff", 0)

	for i := 0; i < 4; i++ {
		_, err := repos.Books().Create(ctx, &store.Book{
			Title:     fmt.Sprintf("Book %d", i),
			Year:      1931 + i,
			AuthorID:  author.ID,
			CreatedAt: timestamp(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	page1, count, err := repos.Books().List(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	require.Len(t, page1, 3)
	assert.Equal(t, "Book 0", page1[0].Title)

	page2, count, err := repos.Books().List(ctx, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	require.Len(t, page2, 1)
	assert.Equal(t, "Book 3", page2[0].Title)
}
