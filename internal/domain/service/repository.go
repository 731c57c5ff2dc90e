package service

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, s *Service) error

	// GetByID retrieves a service by primary key. Returns ErrServiceNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)

	// Update applies partial updates to an existing service.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdateServiceCommand) (*Service, error)

	// SoftDelete marks the service as deleted; its windows and bookings remain for history.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// ListByPharmacy returns the services offered by one pharmacy.
	ListByPharmacy(ctx context.Context, pharmacyID uuid.UUID) ([]*Service, error)
}
