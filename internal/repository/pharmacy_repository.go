package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pharmflow/pharmflow/internal/domain/pharmacy"
)

type PharmacyRepository struct {
	db *gorm.DB
}

func NewPharmacyRepository(db *gorm.DB) *PharmacyRepository {
	return &PharmacyRepository{db: db}
}

func (r *PharmacyRepository) Create(ctx context.Context, p *pharmacy.Pharmacy) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("creating pharmacy: %w", err)
	}
	return nil
}

func (r *PharmacyRepository) GetByID(ctx context.Context, id uuid.UUID) (*pharmacy.Pharmacy, error) {
	var p pharmacy.Pharmacy
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pharmacy.ErrPharmacyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching pharmacy: %w", err)
	}
	return &p, nil
}

func (r *PharmacyRepository) Update(ctx context.Context, id uuid.UUID, cmd *pharmacy.UpdatePharmacyCommand) (*pharmacy.Pharmacy, error) {
	updates := map[string]any{}
	if cmd.Name != nil {
		updates["name"] = *cmd.Name
	}
	if cmd.Phone != nil {
		updates["phone"] = *cmd.Phone
	}
	if cmd.Email != nil {
		updates["email"] = *cmd.Email
	}
	if cmd.Address != nil {
		updates["address"] = *cmd.Address
	}
	if cmd.City != nil {
		updates["city"] = *cmd.City
	}
	if cmd.ZipCode != nil {
		updates["zip_code"] = *cmd.ZipCode
	}
	if cmd.Active != nil {
		updates["active"] = *cmd.Active
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&pharmacy.Pharmacy{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("updating pharmacy: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, pharmacy.ErrPharmacyNotFound
		}
	}

	return r.GetByID(ctx, id)
}

func (r *PharmacyRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&pharmacy.Pharmacy{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now())
	if res.Error != nil {
		return fmt.Errorf("deleting pharmacy: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return pharmacy.ErrPharmacyNotFound
	}
	return nil
}

func (r *PharmacyRepository) List(ctx context.Context) ([]*pharmacy.Pharmacy, error) {
	var pharmacies []*pharmacy.Pharmacy
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("name ASC").
		Find(&pharmacies).Error
	if err != nil {
		return nil, fmt.Errorf("listing pharmacies: %w", err)
	}
	return pharmacies, nil
}
