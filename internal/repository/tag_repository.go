package repository

import (
	"errors"
	"fmt"

	"github.com/scentbase/perfume-catalog-api/internal/database"
	"github.com/scentbase/perfume-catalog-api/internal/models"
	"gorm.io/gorm"
)

// GormTagRepository is a GORM implementation of TagRepository, shared by
// both tag kinds and parameterized with the table names the assigned-only
// predicate needs.
type GormTagRepository[T TagModel] struct {
	db        *gorm.DB
	table     string
	joinTable string
	joinKey   string
}

// NewNoteRepository creates the note-backed TagRepository
func NewNoteRepository(db *gorm.DB) TagRepository[models.Note] {
	return &GormTagRepository[models.Note]{
		db:        db,
		table:     "notes",
		joinTable: "perfume_notes",
		joinKey:   "note_id",
	}
}

// NewDesignerRepository creates the designer-backed TagRepository
func NewDesignerRepository(db *gorm.DB) TagRepository[models.Designer] {
	return &GormTagRepository[models.Designer]{
		db:        db,
		table:     "designers",
		joinTable: "perfume_designers",
		joinKey:   "designer_id",
	}
}

// Create persists a new tag
func (r *GormTagRepository[T]) Create(tag *T) error {
	return r.db.Create(tag).Error
}

// FindByID finds a tag by ID
func (r *GormTagRepository[T]) FindByID(id uint64) (*T, error) {
	var tag T
	if err := r.db.First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// List retrieves tags ordered by descending name. With AssignedOnly set it
// keeps only tags referenced by at least one perfume; the EXISTS probe
// cannot multiply rows, so the result needs no extra deduplication.
func (r *GormTagRepository[T]) List(filter TagFilter) ([]T, error) {
	var tags []T

	query := r.db.Model(new(T))
	if filter.AssignedOnly {
		query = query.Where(fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s WHERE %s.%s = %s.id)",
			r.joinTable, r.joinTable, r.joinKey, r.table,
		))
	}

	if err := query.Scopes(database.ByNameDesc).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return tags, nil
}

// Update updates a tag
func (r *GormTagRepository[T]) Update(tag *T) error {
	return r.db.Save(tag).Error
}

// Delete removes a tag and its join rows in a transaction
func (r *GormTagRepository[T]) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		sql := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", r.joinTable, r.joinKey)
		if err := tx.Exec(sql, id).Error; err != nil {
			return err
		}

		var tag T
		return tx.Delete(&tag, id).Error
	})
}

// getOrCreate resolves a candidate to an existing row matching its full
// field tuple, creating one when absent. This is an idempotent upsert keyed
// on full-field equality, not a partial match. A duplicate-key failure on
// the insert means a concurrent writer won the race; the winning row is
// fetched and reused.
func getOrCreate[T TagModel](tx *gorm.DB, tag *T) error {
	err := tx.Where((*tag).MatchConditions()).First(tag).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up tag: %w", err)
	}

	if err := tx.Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return tx.Where((*tag).MatchConditions()).First(tag).Error
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

// appendTags reconciles candidates into a perfume relation in sequence
// order. Addition only: existing members are never removed here. A
// candidate repeating an earlier one resolves to the same row and the join
// table's composite key absorbs the duplicate pair.
func appendTags[T TagModel](tx *gorm.DB, perfume *models.Perfume, relation string, candidates []T) error {
	for i := range candidates {
		if err := getOrCreate(tx, &candidates[i]); err != nil {
			return err
		}
		if err := tx.Model(perfume).Association(relation).Append(&candidates[i]); err != nil {
			return fmt.Errorf("failed to attach tag: %w", err)
		}
	}
	return nil
}

// replaceTags clears the relation, then reconciles the candidates. Callers
// apply it only when the relation key was present in the payload, which
// gives "explicit empty list" its clear-all meaning.
func replaceTags[T TagModel](tx *gorm.DB, perfume *models.Perfume, relation string, candidates []T) error {
	if err := tx.Model(perfume).Association(relation).Clear(); err != nil {
		return fmt.Errorf("failed to clear relation: %w", err)
	}
	return appendTags(tx, perfume, relation, candidates)
}
