package services

import (
	"errors"
	"fmt"

	"github.com/scentbase/perfume-catalog-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTagNotFound = errors.New("tag not found")
	ErrTagExists   = errors.New("tag already exists")
)

// TagService provides the shared operations for one tag kind. Notes and
// designers each get their own instantiation over the same behavior.
type TagService[T repository.TagModel] struct {
	tagRepo repository.TagRepository[T]
}

// NewTagService creates a new TagService
func NewTagService[T repository.TagModel](tagRepo repository.TagRepository[T]) *TagService[T] {
	return &TagService[T]{tagRepo: tagRepo}
}

// ListTagsInput represents filters for listing tags
type ListTagsInput struct {
	AssignedOnly bool
}

// ListTags returns tags ordered by descending name
func (s *TagService[T]) ListTags(input ListTagsInput) ([]T, error) {
	tags, err := s.tagRepo.List(repository.TagFilter{AssignedOnly: input.AssignedOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// GetTag retrieves a tag by ID
func (s *TagService[T]) GetTag(id uint64) (*T, error) {
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return tag, nil
}

// CreateTag persists a new tag. A tag whose full field set matches an
// existing row is rejected.
func (s *TagService[T]) CreateTag(tag *T) error {
	if err := s.tagRepo.Create(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrTagExists
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// UpdateTag saves field changes to an existing tag
func (s *TagService[T]) UpdateTag(tag *T) error {
	if err := s.tagRepo.Update(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrTagExists
		}
		return fmt.Errorf("failed to update tag: %w", err)
	}
	return nil
}

// DeleteTag removes a tag, detaching it from all perfumes first
func (s *TagService[T]) DeleteTag(id uint64) error {
	if _, err := s.GetTag(id); err != nil {
		return err
	}
	if err := s.tagRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}
