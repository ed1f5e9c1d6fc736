package bookinstances

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

type CountBookInstancesOptions struct {
	Status *string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateBookInstance(ctx context.Context, instance *models.BookInstance) error {
	now := time.Now()
	if instance.CreatedAt.IsZero() {
		instance.CreatedAt = now
	}
	instance.UpdatedAt = instance.CreatedAt

	// A copy with no due date is due back immediately.
	if instance.DueBack.IsZero() {
		instance.DueBack = now
	}
	if instance.Status == "" {
		instance.Status = models.StatusMaintenance
	}

	if instance.ID == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			return errors.WithStack(err)
		}
		instance.ID = id.String()
	}

	_, err := svc.db.
		NewInsert().
		Model(instance).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveBookInstance(ctx context.Context, id string) (*models.BookInstance, error) {
	instance := &models.BookInstance{}

	err := svc.db.
		NewSelect().
		Model(instance).
		Relation("Book").
		Where("bi.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("BookInstance")
		}
		return nil, errors.WithStack(err)
	}

	return instance, nil
}

func (svc *Service) ListBookInstances(ctx context.Context) ([]*models.BookInstance, error) {
	instances := []*models.BookInstance{}

	err := svc.db.
		NewSelect().
		Model(&instances).
		Relation("Book").
		Order("bi.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return instances, nil
}

func (svc *Service) CountBookInstances(ctx context.Context, opts CountBookInstancesOptions) (int, error) {
	q := svc.db.
		NewSelect().
		Model((*models.BookInstance)(nil))

	if opts.Status != nil {
		q = q.Where("bi.status = ?", *opts.Status)
	}

	count, err := q.Count(ctx)
	return count, errors.WithStack(err)
}

// DeleteBookInstance removes the copy. Nothing references a BookInstance,
// so the delete is never blocked.
func (svc *Service) DeleteBookInstance(ctx context.Context, id string) error {
	_, err := svc.db.
		NewDelete().
		Model((*models.BookInstance)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}
