package models

import "time"

// Conventional note classification codes. The column accepts any integer so
// catalogs with custom pyramid scales keep working.
const (
	NoteTypeTop   = 0
	NoteTypeHeart = 1
	NoteTypeBase  = 2
)

type Note struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_notes_name_type" json:"name"`
	Type      int       `gorm:"not null;uniqueIndex:idx_notes_name_type" json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Perfumes []Perfume `gorm:"many2many:perfume_notes" json:"-"`
}

// MatchConditions returns the full field tuple that get-or-create
// reconciliation matches on. Map conditions keep zero-valued fields
// (type = 0) in the WHERE clause, unlike struct conditions.
func (n Note) MatchConditions() map[string]any {
	return map[string]any{"name": n.Name, "type": n.Type}
}
