package authors

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/saif55582/library/pkg/errcodes"
	"github.com/saif55582/library/pkg/migrations"
	"github.com/saif55582/library/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	models.RegisterModels(db)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func createTestBook(ctx context.Context, t *testing.T, db *bun.DB, authorID, title string) *models.Book {
	t.Helper()

	book := &models.Book{
		ID:        "book-" + title,
		AuthorID:  authorID,
		Title:     title,
		Summary:   "summary",
		ISBN:      "9781473211896",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	_, err := db.NewInsert().Model(book).Exec(ctx)
	require.NoError(t, err)

	return book
}

func TestServiceCreateAuthor_AssignsIdentity(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	author := &models.Author{FirstName: "Patrick", FamilyName: "Rothfuss"}
	err := svc.CreateAuthor(ctx, author)
	require.NoError(t, err)

	assert.NotEmpty(t, author.ID)
	assert.False(t, author.CreatedAt.IsZero())
	assert.Equal(t, author.CreatedAt, author.UpdatedAt)
	assert.Equal(t, "/catalog/author/"+author.ID, author.URL())

	retrieved, err := svc.RetrieveAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Patrick", retrieved.FirstName)
}

func TestServiceRetrieveAuthor_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.RetrieveAuthor(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, errcodes.NotFound("Author"))
}

func TestServiceListAuthors_OrdersByFamilyName(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, svc.CreateAuthor(ctx, &models.Author{FirstName: "Patrick", FamilyName: "Rothfuss"}))
	require.NoError(t, svc.CreateAuthor(ctx, &models.Author{FirstName: "Ben", FamilyName: "Bova"}))

	authors, err := svc.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "Bova", authors[0].FamilyName)
	assert.Equal(t, "Rothfuss", authors[1].FamilyName)

	count, err := svc.CountAuthors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestServiceDeleteAuthor_BlockedByDependentBooks(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	author := &models.Author{FirstName: "Patrick", FamilyName: "Rothfuss"}
	require.NoError(t, svc.CreateAuthor(ctx, author))
	createTestBook(ctx, t, db, author.ID, "The Name of the Wind")

	result, err := svc.DeleteAuthor(ctx, author.ID)
	require.NoError(t, err)

	assert.False(t, result.Deleted)
	require.Len(t, result.DependentBooks, 1)
	assert.Equal(t, "The Name of the Wind", result.DependentBooks[0].Title)

	// The blocked delete must not have removed the author.
	_, err = svc.RetrieveAuthor(ctx, author.ID)
	require.NoError(t, err)
}

func TestServiceDeleteAuthor_DeletesWhenUnreferenced(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	author := &models.Author{FirstName: "Ben", FamilyName: "Bova"}
	require.NoError(t, svc.CreateAuthor(ctx, author))

	result, err := svc.DeleteAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.True(t, result.Deleted)
	assert.Empty(t, result.DependentBooks)

	_, err = svc.RetrieveAuthor(ctx, author.ID)
	assert.ErrorIs(t, err, errcodes.NotFound("Author"))
}

func TestServiceGetBooks_OnlyThisAuthor(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	author := &models.Author{FirstName: "Patrick", FamilyName: "Rothfuss"}
	other := &models.Author{FirstName: "Ben", FamilyName: "Bova"}
	require.NoError(t, svc.CreateAuthor(ctx, author))
	require.NoError(t, svc.CreateAuthor(ctx, other))

	createTestBook(ctx, t, db, author.ID, "The Name of the Wind")
	createTestBook(ctx, t, db, other.ID, "Apes and Angels")

	books, err := svc.GetBooks(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "The Name of the Wind", books[0].Title)
}
