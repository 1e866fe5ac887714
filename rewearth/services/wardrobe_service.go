package services

import (
	"context"
	"log/slog"

	"github.com/rewearth/rewearth/rewearth/database/models"
	"github.com/rewearth/rewearth/rewearth/database/repositories"
	"github.com/rewearth/rewearth/rewearth/ecodata"
)

// WardrobeService covers item upload and the two listing views.
type WardrobeService struct {
	users repositories.UserRepository
	items repositories.ItemRepository
	eco   *ecodata.Service
}

func NewWardrobeService(users repositories.UserRepository, items repositories.ItemRepository, eco *ecodata.Service) *WardrobeService {
	return &WardrobeService{
		users: users,
		items: items,
		eco:   eco,
	}
}

type UploadItemInput struct {
	UserEmail  string
	Name       string
	Condition  string
	ImageURL   string
	ItemType   string
	CreditCost int64
}

// UploadItem creates a wardrobe item for an existing user. The item type
// must match a reference record exactly (anchored, case-insensitive);
// the matched record is copied onto the item as a permanent snapshot.
func (s *WardrobeService) UploadItem(ctx context.Context, in UploadItemInput) (*models.Item, error) {
	if s.eco == nil {
		return nil, models.ErrStorageUnavailable
	}

	owner, err := s.users.GetByEmail(ctx, in.UserEmail)
	if err != nil {
		return nil, err
	}

	record, err := s.eco.Lookup(ctx, in.ItemType, ecodata.MatchExact)
	if err != nil {
		return nil, err
	}

	item := &models.Item{
		OwnerID:        owner.ID,
		OwnerEmail:     owner.Email,
		Name:           in.Name,
		Condition:      in.Condition,
		ImageURL:       in.ImageURL,
		ItemType:       in.ItemType,
		CreditCost:     in.CreditCost,
		Sustainability: *record,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	slog.Info("Item uploaded",
		slog.String("owner", owner.Email),
		slog.Int64("item_id", item.ID),
		slog.String("item_type", in.ItemType))
	return item, nil
}

func (s *WardrobeService) MyItems(ctx context.Context, email string) ([]*models.Item, error) {
	return s.items.GetByOwner(ctx, email)
}

// SwapFeed lists every other user's items, including ones already
// swapped away. Filtering unavailable items out is a product decision
// that has not been taken.
func (s *WardrobeService) SwapFeed(ctx context.Context, email string) ([]*models.Item, error) {
	return s.items.GetFeed(ctx, email)
}
