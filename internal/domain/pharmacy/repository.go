package pharmacy

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Pharmacy) error

	// GetByID retrieves a pharmacy by primary key. Returns ErrPharmacyNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Pharmacy, error)

	// Update applies partial updates to an existing pharmacy.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdatePharmacyCommand) (*Pharmacy, error)

	// SoftDelete marks the pharmacy as deleted.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// List returns every non-deleted pharmacy, ordered by name.
	List(ctx context.Context) ([]*Pharmacy, error)
}
