package authors

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

func (svc *Service) CreateAuthor(ctx context.Context, author *models.Author) error {
	now := time.Now()
	if author.CreatedAt.IsZero() {
		author.CreatedAt = now
	}
	author.UpdatedAt = author.CreatedAt

	if author.ID == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			return errors.WithStack(err)
		}
		author.ID = id.String()
	}

	_, err := svc.db.
		NewInsert().
		Model(author).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveAuthor(ctx context.Context, id string) (*models.Author, error) {
	author := &models.Author{}

	err := svc.db.
		NewSelect().
		Model(author).
		Where("a.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Author")
		}
		return nil, errors.WithStack(err)
	}

	return author, nil
}

func (svc *Service) ListAuthors(ctx context.Context) ([]*models.Author, error) {
	authors := []*models.Author{}

	err := svc.db.
		NewSelect().
		Model(&authors).
		Order("a.family_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return authors, nil
}

func (svc *Service) CountAuthors(ctx context.Context) (int, error) {
	count, err := svc.db.
		NewSelect().
		Model((*models.Author)(nil)).
		Count(ctx)
	return count, errors.WithStack(err)
}

// GetBooks returns the books that reference this author, i.e. the
// dependents that block its deletion.
func (svc *Service) GetBooks(ctx context.Context, authorID string) ([]*models.Book, error) {
	books := []*models.Book{}

	err := svc.db.
		NewSelect().
		Model(&books).
		Where("b.author_id = ?", authorID).
		Order("b.title ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}

// DeleteResult reports the outcome of a guarded delete. When Deleted is
// false the author still has referencing books and DependentBooks carries
// them for the confirmation screen.
type DeleteResult struct {
	Deleted        bool
	DependentBooks []*models.Book
}

// DeleteAuthor deletes the author unless any book still references it. The
// dependency check and the delete run in one transaction so two concurrent
// deletes can't both pass the check before either delete executes.
func (svc *Service) DeleteAuthor(ctx context.Context, id string) (*DeleteResult, error) {
	result := &DeleteResult{}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		books := []*models.Book{}
		err := tx.
			NewSelect().
			Model(&books).
			Where("b.author_id = ?", id).
			Order("b.title ASC").
			Scan(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		if len(books) > 0 {
			result.DependentBooks = books
			return nil
		}

		_, err = tx.
			NewDelete().
			Model((*models.Author)(nil)).
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
