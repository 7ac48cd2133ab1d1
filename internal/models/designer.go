package models

import "time"

type Designer struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Perfumes []Perfume `gorm:"many2many:perfume_designers" json:"-"`
}

// MatchConditions returns the full field tuple that get-or-create
// reconciliation matches on.
func (d Designer) MatchConditions() map[string]any {
	return map[string]any{"name": d.Name}
}
