package dto

import (
	"github.com/scentbase/perfume-catalog-api/internal/constants"
	"github.com/scentbase/perfume-catalog-api/internal/models"
	"github.com/shopspring/decimal"
)

// NoteDTO represents a note in API responses
type NoteDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Type int    `json:"type"`
}

// DesignerDTO represents a designer in API responses
type DesignerDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// PerfumeDTO represents a perfume in list responses
type PerfumeDTO struct {
	ID            uint64          `json:"id"`
	Title         string          `json:"title"`
	Rating        decimal.Decimal `json:"rating"`
	NumberOfVotes int             `json:"number_of_votes"`
	Gender        int             `json:"gender"`
	Longevity     decimal.Decimal `json:"longevity"`
	Sillage       decimal.Decimal `json:"sillage"`
	PriceValue    decimal.Decimal `json:"price_value"`
	Designers     []DesignerDTO   `json:"designers"`
	Notes         []NoteDTO       `json:"notes"`
}

// PerfumeDetailDTO represents a perfume in detail responses
type PerfumeDetailDTO struct {
	ID            uint64          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Rating        decimal.Decimal `json:"rating"`
	NumberOfVotes int             `json:"number_of_votes"`
	Gender        int             `json:"gender"`
	Longevity     decimal.Decimal `json:"longevity"`
	Sillage       decimal.Decimal `json:"sillage"`
	PriceValue    decimal.Decimal `json:"price_value"`
	Image         *string         `json:"image"`
	Designers     []DesignerDTO   `json:"designers"`
	Notes         []NoteDTO       `json:"notes"`
}

// PerfumeImageDTO is the response for an image upload
type PerfumeImageDTO struct {
	ID    uint64  `json:"id"`
	Image *string `json:"image"`
}

// Conversion functions

// ToNoteDTO converts a Note model to NoteDTO
func ToNoteDTO(note models.Note) NoteDTO {
	return NoteDTO{
		ID:   note.ID,
		Name: note.Name,
		Type: note.Type,
	}
}

// ToNoteDTOs converts a slice of Note models, yielding an empty slice
// rather than null for perfumes without notes
func ToNoteDTOs(notes []models.Note) []NoteDTO {
	dtos := make([]NoteDTO, len(notes))
	for i, note := range notes {
		dtos[i] = ToNoteDTO(note)
	}
	return dtos
}

// ToDesignerDTO converts a Designer model to DesignerDTO
func ToDesignerDTO(designer models.Designer) DesignerDTO {
	return DesignerDTO{
		ID:   designer.ID,
		Name: designer.Name,
	}
}

// ToDesignerDTOs converts a slice of Designer models
func ToDesignerDTOs(designers []models.Designer) []DesignerDTO {
	dtos := make([]DesignerDTO, len(designers))
	for i, designer := range designers {
		dtos[i] = ToDesignerDTO(designer)
	}
	return dtos
}

// ToPerfumeDTO converts a Perfume model to PerfumeDTO
func ToPerfumeDTO(perfume models.Perfume) PerfumeDTO {
	return PerfumeDTO{
		ID:            perfume.ID,
		Title:         perfume.Title,
		Rating:        perfume.Rating,
		NumberOfVotes: perfume.NumberOfVotes,
		Gender:        perfume.Gender,
		Longevity:     perfume.Longevity,
		Sillage:       perfume.Sillage,
		PriceValue:    perfume.PriceValue,
		Designers:     ToDesignerDTOs(perfume.Designers),
		Notes:         ToNoteDTOs(perfume.Notes),
	}
}

// ToPerfumeDTOs converts a slice of Perfume models
func ToPerfumeDTOs(perfumes []models.Perfume) []PerfumeDTO {
	dtos := make([]PerfumeDTO, len(perfumes))
	for i, perfume := range perfumes {
		dtos[i] = ToPerfumeDTO(perfume)
	}
	return dtos
}

// ToPerfumeDetailDTO converts a Perfume model to PerfumeDetailDTO
func ToPerfumeDetailDTO(perfume models.Perfume) PerfumeDetailDTO {
	return PerfumeDetailDTO{
		ID:            perfume.ID,
		Title:         perfume.Title,
		Description:   perfume.Description,
		Rating:        perfume.Rating,
		NumberOfVotes: perfume.NumberOfVotes,
		Gender:        perfume.Gender,
		Longevity:     perfume.Longevity,
		Sillage:       perfume.Sillage,
		PriceValue:    perfume.PriceValue,
		Image:         imageURL(perfume.Image),
		Designers:     ToDesignerDTOs(perfume.Designers),
		Notes:         ToNoteDTOs(perfume.Notes),
	}
}

// ToPerfumeImageDTO converts a Perfume model to PerfumeImageDTO
func ToPerfumeImageDTO(perfume models.Perfume) PerfumeImageDTO {
	return PerfumeImageDTO{
		ID:    perfume.ID,
		Image: imageURL(perfume.Image),
	}
}

// imageURL maps a stored reference to its public URL, or nil when the
// perfume has no image
func imageURL(ref string) *string {
	if ref == "" {
		return nil
	}
	url := constants.MediaURLPrefix + "/" + ref
	return &url
}
