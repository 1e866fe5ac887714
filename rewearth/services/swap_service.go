package services

import (
	"context"
	"log/slog"

	"github.com/rewearth/rewearth/rewearth/database/models"
	"github.com/rewearth/rewearth/rewearth/database/repositories"
)

// SwapService runs the swap lifecycle: request, inbox, respond. Creation
// validates the full precondition chain up front so a request the
// counterparty could never accept is not persisted at all; settlement is
// delegated to the store's transactional path.
type SwapService struct {
	users       repositories.UserRepository
	items       repositories.ItemRepository
	swaps       repositories.SwapRepository
	platformFee int64
}

func NewSwapService(
	users repositories.UserRepository,
	items repositories.ItemRepository,
	swaps repositories.SwapRepository,
	platformFee int64,
) *SwapService {
	return &SwapService{
		users:       users,
		items:       items,
		swaps:       swaps,
		platformFee: platformFee,
	}
}

// CreateRequest proposes trading offeredItemID for wantedItemID. Checks
// run in a fixed order and fail on the first violation:
// items exist, users exist, requester can afford the fee, receiver can
// afford the fee, ownership lines up, both items are available.
func (s *SwapService) CreateRequest(ctx context.Context, requesterEmail string, wantedItemID, offeredItemID int64) (*models.SwapRequest, error) {
	wanted, err := s.items.GetByID(ctx, wantedItemID)
	if err != nil {
		return nil, err
	}
	offered, err := s.items.GetByID(ctx, offeredItemID)
	if err != nil {
		return nil, err
	}

	requester, err := s.users.GetByEmail(ctx, requesterEmail)
	if err != nil {
		return nil, err
	}
	// The receiver is whoever owns the wanted item.
	receiver, err := s.users.GetByEmail(ctx, wanted.OwnerEmail)
	if err != nil {
		return nil, err
	}

	if requester.Credits < s.platformFee {
		return nil, models.ErrRequesterCantAfford
	}
	if receiver.Credits < s.platformFee {
		return nil, models.ErrReceiverCantAfford
	}

	if wanted.OwnerEmail != receiver.Email || offered.OwnerEmail != requester.Email {
		return nil, models.ErrOwnershipMismatch
	}

	if !wanted.AvailableForSwap || !offered.AvailableForSwap {
		return nil, models.ErrItemUnavailable
	}

	swap := &models.SwapRequest{
		RequesterID:       requester.ID,
		RequesterEmail:    requester.Email,
		RequesterItemID:   offered.ID,
		RequesterItemName: offered.Name,
		ReceiverID:        receiver.ID,
		ReceiverEmail:     receiver.Email,
		ReceiverItemID:    wanted.ID,
		ReceiverItemName:  wanted.Name,
		PlatformFee:       s.platformFee,
	}
	if err := s.swaps.Create(ctx, swap); err != nil {
		return nil, err
	}

	slog.Info("Swap requested",
		slog.Int64("swap_id", swap.ID),
		slog.String("requester", requester.Email),
		slog.String("receiver", receiver.Email),
		slog.Int64("fee", swap.PlatformFee))
	return swap, nil
}

// Inbox lists pending requests awaiting the given user's response.
func (s *SwapService) Inbox(ctx context.Context, email string) ([]*models.SwapRequest, error) {
	return s.swaps.GetPendingByReceiver(ctx, email)
}

// Respond resolves a pending swap. Accepting settles atomically; a swap
// already responded to fails, including idempotent retries.
func (s *SwapService) Respond(ctx context.Context, swapID int64, accept bool) (*models.SwapRequest, error) {
	if !accept {
		return s.swaps.Reject(ctx, swapID)
	}
	return s.swaps.Settle(ctx, swapID)
}
