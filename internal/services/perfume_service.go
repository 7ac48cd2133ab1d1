package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/scentbase/perfume-catalog-api/internal/constants"
	"github.com/scentbase/perfume-catalog-api/internal/media"
	"github.com/scentbase/perfume-catalog-api/internal/models"
	"github.com/scentbase/perfume-catalog-api/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrPerfumeNotFound   = errors.New("perfume not found")
	ErrTitleRequired     = errors.New("title cannot be empty")
	ErrTagNameRequired   = errors.New("tag name cannot be empty")
	ErrTagNameTooLong    = errors.New("tag name is too long")
	ErrDecimalOutOfRange = errors.New("value must have at most 4 digits with 2 decimal places")
)

// FieldError ties a validation failure to the request field that caused it,
// so handlers can answer with the usual field-to-message map.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// PerfumeService handles perfume business logic
type PerfumeService struct {
	perfumeRepo repository.PerfumeRepository
	storage     *media.Storage
}

// NewPerfumeService creates a new PerfumeService
func NewPerfumeService(perfumeRepo repository.PerfumeRepository, storage *media.Storage) *PerfumeService {
	return &PerfumeService{
		perfumeRepo: perfumeRepo,
		storage:     storage,
	}
}

// NoteInput identifies a note candidate by its full field set.
type NoteInput struct {
	Name string
	Type int
}

// DesignerInput identifies a designer candidate.
type DesignerInput struct {
	Name string
}

// ListPerfumesInput represents filters for listing perfumes
type ListPerfumesInput struct {
	UserID      uint64
	DesignerIDs []uint64
	NoteIDs     []uint64
}

// CreatePerfumeInput represents input for creating a perfume
type CreatePerfumeInput struct {
	UserID        uint64
	Title         string
	Rating        decimal.Decimal
	NumberOfVotes int
	Gender        int
	Longevity     decimal.Decimal
	Sillage       decimal.Decimal
	PriceValue    decimal.Decimal
	Description   string
	Notes         []NoteInput
	Designers     []DesignerInput
}

// UpdatePerfumeInput represents input for updating a perfume. Nil fields
// stay untouched; a non-nil empty tag slice clears that relation.
type UpdatePerfumeInput struct {
	Title         *string
	Rating        *decimal.Decimal
	NumberOfVotes *int
	Gender        *int
	Longevity     *decimal.Decimal
	Sillage       *decimal.Decimal
	PriceValue    *decimal.Decimal
	Description   *string
	Notes         *[]NoteInput
	Designers     *[]DesignerInput
}

// ListPerfumes returns the user's perfumes matching the filters, newest first
func (s *PerfumeService) ListPerfumes(input ListPerfumesInput) ([]models.Perfume, error) {
	filter := repository.PerfumeFilter{
		OwnerID:     input.UserID,
		DesignerIDs: input.DesignerIDs,
		NoteIDs:     input.NoteIDs,
	}

	perfumes, err := s.perfumeRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list perfumes: %w", err)
	}

	return perfumes, nil
}

// GetPerfume retrieves one of the user's perfumes by ID
func (s *PerfumeService) GetPerfume(id, userID uint64) (*models.Perfume, error) {
	perfume, err := s.perfumeRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPerfumeNotFound
		}
		return nil, fmt.Errorf("failed to find perfume: %w", err)
	}

	return perfume, nil
}

// CreatePerfume creates a perfume and reconciles its tag candidates.
// All candidates are validated up front so a malformed one fails the
// request before anything is written.
func (s *PerfumeService) CreatePerfume(input CreatePerfumeInput) (*models.Perfume, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, &FieldError{Field: "title", Err: ErrTitleRequired}
	}
	if err := validateAmount("rating", input.Rating); err != nil {
		return nil, err
	}
	if err := validateAmount("longevity", input.Longevity); err != nil {
		return nil, err
	}
	if err := validateAmount("sillage", input.Sillage); err != nil {
		return nil, err
	}
	if err := validateAmount("price_value", input.PriceValue); err != nil {
		return nil, err
	}

	notes, err := toNoteModels(input.Notes)
	if err != nil {
		return nil, err
	}
	designers, err := toDesignerModels(input.Designers)
	if err != nil {
		return nil, err
	}

	perfume := &models.Perfume{
		UserID:        input.UserID,
		Title:         title,
		Rating:        input.Rating,
		NumberOfVotes: input.NumberOfVotes,
		Gender:        input.Gender,
		Longevity:     input.Longevity,
		Sillage:       input.Sillage,
		PriceValue:    input.PriceValue,
		Description:   input.Description,
	}

	if err := s.perfumeRepo.Create(perfume, notes, designers); err != nil {
		return nil, fmt.Errorf("failed to create perfume: %w", err)
	}

	return s.GetPerfume(perfume.ID, input.UserID)
}

// UpdatePerfume applies a partial update to an already-loaded perfume.
// Tag relations follow the differential sync contract: a nil candidate
// slice means the payload omitted that relation.
func (s *PerfumeService) UpdatePerfume(perfume *models.Perfume, input UpdatePerfumeInput) (*models.Perfume, error) {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, &FieldError{Field: "title", Err: ErrTitleRequired}
		}
		perfume.Title = title
	}
	if input.Rating != nil {
		if err := validateAmount("rating", *input.Rating); err != nil {
			return nil, err
		}
		perfume.Rating = *input.Rating
	}
	if input.NumberOfVotes != nil {
		perfume.NumberOfVotes = *input.NumberOfVotes
	}
	if input.Gender != nil {
		perfume.Gender = *input.Gender
	}
	if input.Longevity != nil {
		if err := validateAmount("longevity", *input.Longevity); err != nil {
			return nil, err
		}
		perfume.Longevity = *input.Longevity
	}
	if input.Sillage != nil {
		if err := validateAmount("sillage", *input.Sillage); err != nil {
			return nil, err
		}
		perfume.Sillage = *input.Sillage
	}
	if input.PriceValue != nil {
		if err := validateAmount("price_value", *input.PriceValue); err != nil {
			return nil, err
		}
		perfume.PriceValue = *input.PriceValue
	}
	if input.Description != nil {
		perfume.Description = *input.Description
	}

	var notes *[]models.Note
	if input.Notes != nil {
		converted, err := toNoteModels(*input.Notes)
		if err != nil {
			return nil, err
		}
		notes = &converted
	}

	var designers *[]models.Designer
	if input.Designers != nil {
		converted, err := toDesignerModels(*input.Designers)
		if err != nil {
			return nil, err
		}
		designers = &converted
	}

	if err := s.perfumeRepo.Update(perfume, notes, designers); err != nil {
		return nil, fmt.Errorf("failed to update perfume: %w", err)
	}

	return s.GetPerfume(perfume.ID, perfume.UserID)
}

// DeletePerfume removes a perfume and its stored image, if any
func (s *PerfumeService) DeletePerfume(perfume *models.Perfume) error {
	if err := s.perfumeRepo.Delete(perfume.ID); err != nil {
		return fmt.Errorf("failed to delete perfume: %w", err)
	}

	if perfume.Image != "" {
		_ = s.storage.Delete(perfume.Image)
	}

	return nil
}

// AttachImage stores uploaded image data and points the perfume at it,
// replacing any previous image file.
func (s *PerfumeService) AttachImage(perfume *models.Perfume, data []byte) (*models.Perfume, error) {
	ref, err := s.storage.SaveImage(data)
	if err != nil {
		if errors.Is(err, media.ErrNotAnImage) {
			return nil, &FieldError{Field: "image", Err: err}
		}
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	previous := perfume.Image
	perfume.Image = ref

	if err := s.perfumeRepo.Save(perfume); err != nil {
		_ = s.storage.Delete(ref)
		return nil, fmt.Errorf("failed to save perfume image: %w", err)
	}

	if previous != "" && previous != ref {
		_ = s.storage.Delete(previous)
	}

	return perfume, nil
}

// validateAmount checks that a decimal fits the 4-digit, 2-decimal-place
// column shape.
func validateAmount(field string, value decimal.Decimal) error {
	if !value.Equal(value.Round(2)) || value.Abs().GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return &FieldError{Field: field, Err: ErrDecimalOutOfRange}
	}
	return nil
}

func toNoteModels(inputs []NoteInput) ([]models.Note, error) {
	notes := make([]models.Note, len(inputs))
	for i, in := range inputs {
		name, err := cleanTagName(in.Name)
		if err != nil {
			return nil, &FieldError{Field: fmt.Sprintf("notes[%d].name", i), Err: err}
		}
		notes[i] = models.Note{Name: name, Type: in.Type}
	}
	return notes, nil
}

func toDesignerModels(inputs []DesignerInput) ([]models.Designer, error) {
	designers := make([]models.Designer, len(inputs))
	for i, in := range inputs {
		name, err := cleanTagName(in.Name)
		if err != nil {
			return nil, &FieldError{Field: fmt.Sprintf("designers[%d].name", i), Err: err}
		}
		designers[i] = models.Designer{Name: name}
	}
	return designers, nil
}

func cleanTagName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrTagNameRequired
	}
	if len(name) > constants.MaxTagNameLength {
		return "", ErrTagNameTooLong
	}
	return name, nil
}
