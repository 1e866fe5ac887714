package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/rewearth/rewearth/rewearth/database/models"
)

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id int64) (*models.Item, error)
	GetByOwner(ctx context.Context, ownerEmail string) ([]*models.Item, error)
	// GetFeed returns every item not owned by the given user. Unavailable
	// items are deliberately included; the feed shows the whole catalog.
	GetFeed(ctx context.Context, excludeEmail string) ([]*models.Item, error)
	SetAvailability(ctx context.Context, id int64, available bool) error
}

type itemRepository struct {
	db *bun.DB
}

func NewItemRepository(db *bun.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	item.OwnerEmail = NormalizeEmail(item.OwnerEmail)
	item.AvailableForSwap = true
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().Model(item).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	item := new(models.Item)
	err := r.db.NewSelect().
		Model(item).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (r *itemRepository) GetByOwner(ctx context.Context, ownerEmail string) ([]*models.Item, error) {
	var items []*models.Item
	err := r.db.NewSelect().
		Model(&items).
		Where("owner_email = ?", NormalizeEmail(ownerEmail)).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (r *itemRepository) GetFeed(ctx context.Context, excludeEmail string) ([]*models.Item, error) {
	var items []*models.Item
	err := r.db.NewSelect().
		Model(&items).
		Where("owner_email != ?", NormalizeEmail(excludeEmail)).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build swap feed: %w", err)
	}
	return items, nil
}

func (r *itemRepository) SetAvailability(ctx context.Context, id int64, available bool) error {
	_, err := r.db.NewUpdate().
		Model((*models.Item)(nil)).
		Set("available_for_swap = ?", available).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update item availability: %w", err)
	}
	return nil
}
