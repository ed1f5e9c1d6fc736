package genres

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

type RetrieveGenreOptions struct {
	ID   *string
	Name *string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateGenre inserts the genre unless one with the exact same normalized
// name already exists, in which case the existing record is returned and
// nothing is written. Uniqueness is enforced by this lookup, not by a
// store-level constraint.
func (svc *Service) CreateGenre(ctx context.Context, genre *models.Genre) (*models.Genre, error) {
	existing, err := svc.RetrieveGenre(ctx, RetrieveGenreOptions{Name: &genre.Name})
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errcodes.NotFound("Genre")) {
		return nil, err
	}

	now := time.Now()
	if genre.CreatedAt.IsZero() {
		genre.CreatedAt = now
	}
	genre.UpdatedAt = genre.CreatedAt

	if genre.ID == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		genre.ID = id.String()
	}

	_, err = svc.db.
		NewInsert().
		Model(genre).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return genre, nil
}

func (svc *Service) RetrieveGenre(ctx context.Context, opts RetrieveGenreOptions) (*models.Genre, error) {
	genre := &models.Genre{}

	q := svc.db.
		NewSelect().
		Model(genre)

	if opts.ID != nil {
		q = q.Where("g.id = ?", *opts.ID)
	}
	if opts.Name != nil {
		q = q.Where("g.name = ?", *opts.Name)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Genre")
		}
		return nil, errors.WithStack(err)
	}

	return genre, nil
}

func (svc *Service) ListGenres(ctx context.Context) ([]*models.Genre, error) {
	genres := []*models.Genre{}

	err := svc.db.
		NewSelect().
		Model(&genres).
		Order("g.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return genres, nil
}

func (svc *Service) CountGenres(ctx context.Context) (int, error) {
	count, err := svc.db.
		NewSelect().
		Model((*models.Genre)(nil)).
		Count(ctx)
	return count, errors.WithStack(err)
}

// GetBooks returns the books whose genre set contains this genre.
func (svc *Service) GetBooks(ctx context.Context, genreID string) ([]*models.Book, error) {
	books := []*models.Book{}

	err := svc.db.
		NewSelect().
		Model(&books).
		Relation("Author").
		Join("INNER JOIN book_genres bg ON bg.book_id = b.id").
		Where("bg.genre_id = ?", genreID).
		Order("b.title ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}

// DeleteResult reports the outcome of a guarded delete.
type DeleteResult struct {
	Deleted        bool
	DependentBooks []*models.Book
}

// DeleteGenre deletes the genre unless any book's genre set still contains
// it. Check and delete share one transaction.
func (svc *Service) DeleteGenre(ctx context.Context, id string) (*DeleteResult, error) {
	result := &DeleteResult{}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		books := []*models.Book{}
		err := tx.
			NewSelect().
			Model(&books).
			Join("INNER JOIN book_genres bg ON bg.book_id = b.id").
			Where("bg.genre_id = ?", id).
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
			Model((*models.Genre)(nil)).
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
