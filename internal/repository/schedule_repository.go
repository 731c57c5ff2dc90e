package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pharmflow/pharmflow/internal/domain/schedule"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(ctx context.Context, w *schedule.Window) error {
	if err := r.db.WithContext(ctx).Create(w).Error; err != nil {
		return fmt.Errorf("creating schedule window: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*schedule.Window, error) {
	var w schedule.Window
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, schedule.ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching schedule window: %w", err)
	}
	return &w, nil
}

func (r *ScheduleRepository) ListByService(ctx context.Context, serviceID uuid.UUID) ([]*schedule.Window, error) {
	var windows []*schedule.Window
	err := r.db.WithContext(ctx).
		Where("service_id = ? AND deleted_at IS NULL", serviceID).
		Order("created_at ASC").
		Find(&windows).Error
	if err != nil {
		return nil, fmt.Errorf("listing schedule windows: %w", err)
	}
	return windows, nil
}

func (r *ScheduleRepository) Save(ctx context.Context, w *schedule.Window) error {
	if err := r.db.WithContext(ctx).Save(w).Error; err != nil {
		return fmt.Errorf("saving schedule window: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&schedule.Window{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now())
	if res.Error != nil {
		return fmt.Errorf("deleting schedule window: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return schedule.ErrWindowNotFound
	}
	return nil
}
