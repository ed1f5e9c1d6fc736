package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/saif55582/library/pkg/errcodes"
	"github.com/saif55582/library/pkg/models"
	"github.com/uptrace/bun"
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateBook inserts the book and its genre references in one transaction.
// genreIDs is the normalized genre set from the form, in submission order.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book, genreIDs []string) error {
	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	if book.ID == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			return errors.WithStack(err)
		}
		book.ID = id.String()
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewInsert().
			Model(book).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return errors.WithStack(insertGenreRefs(ctx, tx, book.ID, genreIDs))
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (svc *Service) RetrieveBook(ctx context.Context, id string) (*models.Book, error) {
	book := &models.Book{}

	err := svc.db.
		NewSelect().
		Model(book).
		Relation("Author").
		Relation("Genres").
		Where("b.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context) ([]*models.Book, error) {
	books := []*models.Book{}

	err := svc.db.
		NewSelect().
		Model(&books).
		Relation("Author").
		Order("b.title ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}

func (svc *Service) CountBooks(ctx context.Context) (int, error) {
	count, err := svc.db.
		NewSelect().
		Model((*models.Book)(nil)).
		Count(ctx)
	return count, errors.WithStack(err)
}

// GetBookInstances returns the copies that reference this book, i.e. the
// dependents that block its deletion.
func (svc *Service) GetBookInstances(ctx context.Context, bookID string) ([]*models.BookInstance, error) {
	instances := []*models.BookInstance{}

	err := svc.db.
		NewSelect().
		Model(&instances).
		Where("bi.book_id = ?", bookID).
		Order("bi.imprint ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return instances, nil
}

// UpdateBook persists the candidate under the existing identifier: every
// field is resubmitted and the genre references are replaced wholesale.
func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, genreIDs []string) error {
	book.UpdatedAt = time.Now()

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.
			NewUpdate().
			Model(book).
			Column("title", "author_id", "summary", "isbn", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		// An UPDATE matching zero rows succeeds with no error; only the
		// affected-row count reveals the missing book. Bail before writing
		// genre references that would orphan.
		affected, err := res.RowsAffected()
		if err != nil {
			return errors.WithStack(err)
		}
		if affected == 0 {
			return errcodes.NotFound("Book")
		}

		_, err = tx.
			NewDelete().
			Model((*models.BookGenre)(nil)).
			Where("book_id = ?", book.ID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return errors.WithStack(insertGenreRefs(ctx, tx, book.ID, genreIDs))
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DeleteResult reports the outcome of a guarded delete.
type DeleteResult struct {
	Deleted            bool
	DependentInstances []*models.BookInstance
}

// DeleteBook deletes the book unless any copy still references it. The
// genre references are removed in the same transaction as the book row.
func (svc *Service) DeleteBook(ctx context.Context, id string) (*DeleteResult, error) {
	result := &DeleteResult{}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		instances := []*models.BookInstance{}
		err := tx.
			NewSelect().
			Model(&instances).
			Where("bi.book_id = ?", id).
			Order("bi.imprint ASC").
			Scan(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		if len(instances) > 0 {
			result.DependentInstances = instances
			return nil
		}

		_, err = tx.
			NewDelete().
			Model((*models.BookGenre)(nil)).
			Where("book_id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.
			NewDelete().
			Model((*models.Book)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		result.Deleted = true
		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return result, nil
}

func insertGenreRefs(ctx context.Context, tx bun.Tx, bookID string, genreIDs []string) error {
	if len(genreIDs) == 0 {
		return nil
	}

	refs := make([]*models.BookGenre, 0, len(genreIDs))
	for i, genreID := range genreIDs {
		refs = append(refs, &models.BookGenre{
			BookID:   bookID,
			GenreID:  genreID,
			Sequence: i + 1,
		})
	}

	_, err := tx.
		NewInsert().
		Model(&refs).
		Exec(ctx)
	return errors.WithStack(err)
}
