package pharmacy

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ContactInfo struct {
	Phone   string `gorm:"column:phone;type:varchar(20)"`
	Email   string `gorm:"column:email;type:varchar(255)"`
	Address string `gorm:"column:address;type:text"`
	City    string `gorm:"column:city;type:varchar(100)"`
	ZipCode string `gorm:"column:zip_code;type:varchar(20)"`
}

type Pharmacy struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	Name string `gorm:"column:name;type:varchar(200);not null"`

	ContactInfo

	Active bool `gorm:"column:active;default:true;index"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
}

func (Pharmacy) TableName() string {
	return "pharmacy.pharmacies"
}

func (p *Pharmacy) IsActive() bool {
	return p.Active && p.DeletedAt == nil
}

func (p *Pharmacy) DisplayName() string {
	if p.City == "" {
		return p.Name
	}
	return strings.TrimSpace(p.Name + " (" + p.City + ")")
}

type CreatePharmacyCommand struct {
	Name      string
	Phone     string
	Email     string
	Address   string
	City      string
	ZipCode   string
	CreatedBy uuid.UUID
}

type UpdatePharmacyCommand struct {
	Name      *string
	Phone     *string
	Email     *string
	Address   *string
	City      *string
	ZipCode   *string
	Active    *bool
	UpdatedBy uuid.UUID
}
