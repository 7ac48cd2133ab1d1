package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conventional gender codes. Stored as a plain integer; values outside the
// conventional set are accepted.
const (
	GenderMale   = 0
	GenderFemale = 1
	GenderUnisex = 2
)

type Perfume struct {
	ID            uint64          `gorm:"primarykey" json:"id"`
	UserID        uint64          `gorm:"not null;index" json:"user_id"`
	Title         string          `gorm:"type:varchar(255);not null" json:"title"`
	Rating        decimal.Decimal `gorm:"type:decimal(4,2);not null" json:"rating"`
	NumberOfVotes int             `gorm:"not null" json:"number_of_votes"`
	Gender        int             `gorm:"not null" json:"gender"`
	Longevity     decimal.Decimal `gorm:"type:decimal(4,2);not null" json:"longevity"`
	Sillage       decimal.Decimal `gorm:"type:decimal(4,2);not null" json:"sillage"`
	PriceValue    decimal.Decimal `gorm:"type:decimal(4,2);not null" json:"price_value"`
	Description   string          `gorm:"type:text" json:"description"`
	Image         string          `gorm:"type:varchar(512)" json:"image"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relations
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Notes     []Note     `gorm:"many2many:perfume_notes" json:"notes,omitempty"`
	Designers []Designer `gorm:"many2many:perfume_designers" json:"designers,omitempty"`
}
