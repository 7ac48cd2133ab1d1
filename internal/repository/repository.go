package repository

import (
	"github.com/scentbase/perfume-catalog-api/internal/models"
)

// PerfumeRepository defines the interface for perfume data access
type PerfumeRepository interface {
	// Create persists a new perfume and reconciles both tag relations
	// within one transaction.
	Create(perfume *models.Perfume, notes []models.Note, designers []models.Designer) error

	// FindByID finds a perfume owned by ownerID, relations preloaded.
	// A foreign row is indistinguishable from a missing one.
	FindByID(id, ownerID uint64) (*models.Perfume, error)

	// List retrieves the owner's perfumes matching the filter, newest first.
	List(filter PerfumeFilter) ([]models.Perfume, error)

	// Update saves scalar changes and applies the differential tag sync:
	// a nil slice pointer leaves that relation untouched, a non-nil pointer
	// (even to an empty slice) replaces the membership.
	Update(perfume *models.Perfume, notes *[]models.Note, designers *[]models.Designer) error

	// Save persists scalar fields only.
	Save(perfume *models.Perfume) error

	// Delete removes a perfume and its join rows; tag rows stay.
	Delete(id uint64) error
}

// PerfumeFilter holds filtering options for listing perfumes.
// Each present id list independently restricts the result; dimensions are
// intersected.
type PerfumeFilter struct {
	OwnerID     uint64
	DesignerIDs []uint64
	NoteIDs     []uint64
}

// TagFilter holds filtering options for tag listings
type TagFilter struct {
	// AssignedOnly restricts the listing to tags referenced by at least one
	// perfume, regardless of that perfume's owner.
	AssignedOnly bool
}

// TagModel is satisfied by the tag kinds sharing the listing and
// reconciliation logic.
type TagModel interface {
	models.Note | models.Designer

	// MatchConditions returns the full field tuple get-or-create matches on.
	MatchConditions() map[string]any
}

// TagRepository defines data access shared by both tag kinds
type TagRepository[T TagModel] interface {
	// Create persists a new tag; a duplicate full field tuple surfaces as
	// gorm.ErrDuplicatedKey.
	Create(tag *T) error

	// FindByID finds a tag by ID
	FindByID(id uint64) (*T, error)

	// List retrieves tags, descending name order
	List(filter TagFilter) ([]T, error)

	// Update updates a tag
	Update(tag *T) error

	// Delete removes a tag and its join rows; the perfumes referencing it
	// are untouched.
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error
}
