package database

import "gorm.io/gorm"

// OwnedBy scopes a perfume query to rows owned by the given user.
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("perfumes.user_id = ?", userID)
	}
}

// NewestFirst orders perfumes by insertion recency, ties broken by
// descending id.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("perfumes.created_at DESC, perfumes.id DESC")
}

// ByNameDesc orders a tag listing by descending name.
func ByNameDesc(db *gorm.DB) *gorm.DB {
	return db.Order("name DESC")
}
