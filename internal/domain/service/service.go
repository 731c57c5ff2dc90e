package service

import (
	"hash/fnv"
	"time"

	"github.com/google/uuid"
)

// Service is a bookable pharmacy offering. DurationMins is the slot length
// used when laying out bookable times inside its schedule windows.
type Service struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	PharmacyID uuid.UUID `gorm:"column:pharmacy_id;type:uuid;not null;index"`

	Name         string `gorm:"column:name;type:varchar(200);not null"`
	Description  string `gorm:"column:description;type:text"`
	DurationMins int    `gorm:"column:duration_mins;not null"`

	Active bool `gorm:"column:active;default:true;index"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
}

func (Service) TableName() string {
	return "pharmacy.services"
}

func (s *Service) IsBookable() bool {
	return s.Active && s.DeletedAt == nil && s.DurationMins > 0
}

// calendar display palette, index chosen per service id
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Color returns a stable display color for the service. Derived from the id
// alone, so no process-wide lookup table needs to be kept in sync.
func (s *Service) Color() string {
	h := fnv.New32a()
	h.Write(s.ID[:])
	return palette[h.Sum32()%uint32(len(palette))]
}

func (s *Service) Validate() error {
	if s.Name == "" {
		return ErrMissingName
	}
	if s.DurationMins <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

type CreateServiceCommand struct {
	PharmacyID   uuid.UUID
	Name         string
	Description  string
	DurationMins int
	CreatedBy    uuid.UUID
}

type UpdateServiceCommand struct {
	Name         *string
	Description  *string
	DurationMins *int
	Active       *bool
	UpdatedBy    uuid.UUID
}
