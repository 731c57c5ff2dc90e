package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	svc "github.com/pharmflow/pharmflow/internal/domain/service"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *svc.Service) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("creating service: %w", err)
	}
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*svc.Service, error) {
	var s svc.Service
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svc.ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching service: %w", err)
	}
	return &s, nil
}

func (r *ServiceRepository) Update(ctx context.Context, id uuid.UUID, cmd *svc.UpdateServiceCommand) (*svc.Service, error) {
	updates := map[string]any{}
	if cmd.Name != nil {
		updates["name"] = *cmd.Name
	}
	if cmd.Description != nil {
		updates["description"] = *cmd.Description
	}
	if cmd.DurationMins != nil {
		updates["duration_mins"] = *cmd.DurationMins
	}
	if cmd.Active != nil {
		updates["active"] = *cmd.Active
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&svc.Service{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("updating service: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, svc.ErrServiceNotFound
		}
	}

	return r.GetByID(ctx, id)
}

func (r *ServiceRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&svc.Service{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now())
	if res.Error != nil {
		return fmt.Errorf("deleting service: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return svc.ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepository) ListByPharmacy(ctx context.Context, pharmacyID uuid.UUID) ([]*svc.Service, error) {
	var services []*svc.Service
	err := r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND deleted_at IS NULL", pharmacyID).
		Order("name ASC").
		Find(&services).Error
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	return services, nil
}
