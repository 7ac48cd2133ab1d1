package repository

import (
	"fmt"

	"github.com/scentbase/perfume-catalog-api/internal/database"
	"github.com/scentbase/perfume-catalog-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPerfumeRepository is a GORM implementation of PerfumeRepository
type GormPerfumeRepository struct {
	db *gorm.DB
}

// NewPerfumeRepository creates a new perfume repository
func NewPerfumeRepository(db *gorm.DB) PerfumeRepository {
	return &GormPerfumeRepository{db: db}
}

// Create persists the perfume, then reconciles both relations. The scalar
// row must exist before any tag is attached, and a failed candidate rolls
// back the whole write including the perfume itself.
func (r *GormPerfumeRepository) Create(perfume *models.Perfume, notes []models.Note, designers []models.Designer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(perfume).Error; err != nil {
			return fmt.Errorf("failed to create perfume: %w", err)
		}

		if err := appendTags(tx, perfume, "Notes", notes); err != nil {
			return err
		}
		if err := appendTags(tx, perfume, "Designers", designers); err != nil {
			return err
		}

		return nil
	})
}

// FindByID finds a perfume owned by ownerID, with tags preloaded.
// A row owned by someone else comes back as gorm.ErrRecordNotFound.
func (r *GormPerfumeRepository) FindByID(id, ownerID uint64) (*models.Perfume, error) {
	var perfume models.Perfume
	err := r.db.Scopes(database.OwnedBy(ownerID)).
		Preload("Notes").
		Preload("Designers").
		First(&perfume, id).Error
	if err != nil {
		return nil, err
	}
	return &perfume, nil
}

// List retrieves the owner's perfumes, newest first. Each tag filter
// dimension becomes an EXISTS probe, so dimensions intersect and a perfume
// matching several requested ids still appears once.
func (r *GormPerfumeRepository) List(filter PerfumeFilter) ([]models.Perfume, error) {
	query := r.db.Model(&models.Perfume{}).Scopes(database.OwnedBy(filter.OwnerID))

	if len(filter.DesignerIDs) > 0 {
		sub := r.db.Model(&models.PerfumeDesigner{}).
			Select("1").
			Where("perfume_designers.perfume_id = perfumes.id").
			Where("perfume_designers.designer_id IN ?", filter.DesignerIDs)
		query = query.Where("EXISTS (?)", sub)
	}

	if len(filter.NoteIDs) > 0 {
		sub := r.db.Model(&models.PerfumeNote{}).
			Select("1").
			Where("perfume_notes.perfume_id = perfumes.id").
			Where("perfume_notes.note_id IN ?", filter.NoteIDs)
		query = query.Where("EXISTS (?)", sub)
	}

	var perfumes []models.Perfume
	err := query.Scopes(database.NewestFirst).
		Preload("Notes").
		Preload("Designers").
		Find(&perfumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list perfumes: %w", err)
	}

	return perfumes, nil
}

// Update saves the perfume's scalar fields, then synchronizes each relation
// whose candidate slice is non-nil. A nil slice leaves that relation
// untouched; an empty non-nil slice clears it.
func (r *GormPerfumeRepository) Update(perfume *models.Perfume, notes *[]models.Note, designers *[]models.Designer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(perfume).Error; err != nil {
			return fmt.Errorf("failed to update perfume: %w", err)
		}

		if notes != nil {
			if err := replaceTags(tx, perfume, "Notes", *notes); err != nil {
				return err
			}
		}
		if designers != nil {
			if err := replaceTags(tx, perfume, "Designers", *designers); err != nil {
				return err
			}
		}

		return nil
	})
}

// Save persists scalar fields only, leaving both relations as they are
func (r *GormPerfumeRepository) Save(perfume *models.Perfume) error {
	return r.db.Omit(clause.Associations).Save(perfume).Error
}

// Delete removes a perfume and its join rows. Tags themselves survive.
func (r *GormPerfumeRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("perfume_id = ?", id).Delete(&models.PerfumeNote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("perfume_id = ?", id).Delete(&models.PerfumeDesigner{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Perfume{}, id).Error
	})
}
