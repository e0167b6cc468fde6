package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ground-control/internal/control_plane/persistence/internal"
	"ground-control/internal/control_plane/usecases"
	"ground-control/internal/data_plane/dto"
	"ground-control/internal/infra/sql"
)

const _maxPageSize = 500

func NewEventRepository(orm sql.ORM) (*SimpleEventRepository, error) {
	err := orm.AutoMigrate(&internal.Event{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating mission event: %w", err)
	}

	return &SimpleEventRepository{orm: orm}, nil
}

var _ usecases.EventRepository = (*SimpleEventRepository)(nil)

type SimpleEventRepository struct {
	orm sql.ORM
}

func (r *SimpleEventRepository) Append(ctx context.Context, envelope dto.Envelope) error {
	entity := internal.FromEnvelope(envelope)
	err := r.orm.WithContext(ctx).Create(&entity).Error()
	if err != nil {
		return fmt.Errorf("creating mission event: %w", err)
	}
	return nil
}

func (r *SimpleEventRepository) Get(ctx context.Context, id string) (dto.Envelope, error) {
	var entity internal.Event
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", id).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return dto.Envelope{}, usecases.ErrEventNotFound
	}
	if err != nil {
		return dto.Envelope{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

// Find returns matching events newest first together with the total count
// of matches.
func (r *SimpleEventRepository) Find(ctx context.Context, filter usecases.EventFilter, pagination usecases.Pagination) ([]dto.Envelope, int, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error(); err != nil {
		return nil, 0, fmt.Errorf("counting mission events: %w", err)
	}

	limit := pagination.Limit
	if limit <= 0 || limit > _maxPageSize {
		limit = _maxPageSize
	}
	offset := max(pagination.Offset, 0)

	var entities internal.EventSet
	err := r.filtered(ctx, filter).
		Order("seq desc").
		Limit(limit).
		Offset(offset).
		Find(&entities).
		Error()
	if err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	return entities.ToDomain(), int(total), nil
}

func (r *SimpleEventRepository) filtered(ctx context.Context, filter usecases.EventFilter) sql.ORM {
	query := r.orm.WithContext(ctx).Model(&internal.Event{})
	if filter.Kind != "" {
		query = query.Where("kind = ?", string(filter.Kind))
	}
	if !filter.Since.IsZero() {
		query = query.Where("occurred_at >= ?", filter.Since.UTC())
	}
	return query
}

func (r *SimpleEventRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.orm.
		WithContext(ctx).
		Where("occurred_at < ?", cutoff.UTC()).
		Delete(&internal.Event{})
	if err := result.Error(); err != nil {
		return 0, fmt.Errorf("deleting mission events: %w", err)
	}
	return result.RowsAffected(), nil
}
