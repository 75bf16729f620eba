package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

type CategoryService struct {
	store store.CategoryStore
	clock core.Clock
}

func NewCategoryService(s store.CategoryStore, clock core.Clock) *CategoryService {
	return &CategoryService{store: s, clock: clock}
}

// ListCategories returns the user's categories, seeding the defaults the
// first time a user without any asks.
func (s *CategoryService) ListCategories(ctx context.Context, userID string) ([]core.Category, error) {
	cats, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(cats) > 0 {
		return cats, nil
	}

	now := s.clock.Now()
	for _, c := range core.DefaultCategories() {
		c.UserID = userID
		c.CreatedAt = now
		if _, err := s.store.CreateCategory(ctx, c); err != nil && !errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("seed category %q: %w", c.Name, err)
		}
	}
	slog.InfoContext(ctx, "Seeded default categories", "user_id", userID)

	return s.store.ListCategories(ctx, userID)
}

func (s *CategoryService) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	c.ID = ""
	c.IsDefault = false
	c.CreatedAt = s.clock.Now()

	saved, err := s.store.CreateCategory(ctx, c)
	if errors.Is(err, store.ErrDuplicate) {
		return core.Category{}, ErrDuplicateCategory
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("save category: %w", err)
	}
	return saved, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	existing, err := s.store.GetCategory(ctx, c.UserID, c.ID)
	if err != nil {
		return core.Category{}, err
	}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	c.IsDefault = existing.IsDefault
	c.CreatedAt = existing.CreatedAt

	saved, err := s.store.UpdateCategory(ctx, c)
	if errors.Is(err, store.ErrDuplicate) {
		return core.Category{}, ErrDuplicateCategory
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("update category: %w", err)
	}
	return saved, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, userID, id string) (core.Category, error) {
	return s.store.GetCategory(ctx, userID, id)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, userID, id string) error {
	return s.store.DeleteCategory(ctx, userID, id)
}
