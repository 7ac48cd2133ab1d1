package models

import "time"

// PerfumeNote is the join row linking a perfume to a note. The composite
// primary key keeps relation membership free of duplicate pairs; the
// secondary index serves assigned-only lookups that probe by note id.
type PerfumeNote struct {
	PerfumeID uint64    `gorm:"primarykey" json:"perfume_id"`
	NoteID    uint64    `gorm:"primarykey;index" json:"note_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Perfume Perfume `gorm:"foreignKey:PerfumeID" json:"perfume,omitempty"`
	Note    Note    `gorm:"foreignKey:NoteID" json:"note,omitempty"`
}

// PerfumeDesigner is the join row linking a perfume to a designer.
type PerfumeDesigner struct {
	PerfumeID  uint64    `gorm:"primarykey" json:"perfume_id"`
	DesignerID uint64    `gorm:"primarykey;index" json:"designer_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Perfume  Perfume  `gorm:"foreignKey:PerfumeID" json:"perfume,omitempty"`
	Designer Designer `gorm:"foreignKey:DesignerID" json:"designer,omitempty"`
}
