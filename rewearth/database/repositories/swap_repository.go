package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/rewearth/rewearth/rewearth/database/models"
)

type SwapRepository interface {
	Create(ctx context.Context, swap *models.SwapRequest) error
	GetByID(ctx context.Context, id int64) (*models.SwapRequest, error)
	GetPendingByReceiver(ctx context.Context, receiverEmail string) ([]*models.SwapRequest, error)
	// Reject moves a pending swap to rejected. No other state is touched.
	Reject(ctx context.Context, id int64) (*models.SwapRequest, error)
	// Settle completes a pending swap as one transaction: both parties
	// are debited the snapshotted fee, both items become unavailable and
	// the swap turns completed. A conflict or crash leaves the swap
	// fully pending; partial settlement is impossible.
	Settle(ctx context.Context, id int64) (*models.SwapRequest, error)
}

type swapRepository struct {
	db *bun.DB
}

func NewSwapRepository(db *bun.DB) SwapRepository {
	return &swapRepository{db: db}
}

func (r *swapRepository) Create(ctx context.Context, swap *models.SwapRequest) error {
	swap.Status = models.SwapPending
	swap.CreatedAt = time.Now()
	swap.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().Model(swap).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create swap request: %w", err)
	}
	return nil
}

func (r *swapRepository) GetByID(ctx context.Context, id int64) (*models.SwapRequest, error) {
	swap := new(models.SwapRequest)
	err := r.db.NewSelect().
		Model(swap).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrSwapNotFound
		}
		return nil, fmt.Errorf("failed to get swap request: %w", err)
	}
	return swap, nil
}

func (r *swapRepository) GetPendingByReceiver(ctx context.Context, receiverEmail string) ([]*models.SwapRequest, error) {
	var swaps []*models.SwapRequest
	err := r.db.NewSelect().
		Model(&swaps).
		Where("receiver_email = ? AND status = ?", NormalizeEmail(receiverEmail), models.SwapPending).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending swaps: %w", err)
	}
	return swaps, nil
}

func (r *swapRepository) Reject(ctx context.Context, id int64) (*models.SwapRequest, error) {
	swap := new(models.SwapRequest)
	res, err := r.db.NewUpdate().
		Model(swap).
		Set("status = ?", models.SwapRejected).
		Set("updated_at = ?", time.Now()).
		Where("id = ? AND status = ?", id, models.SwapPending).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reject swap: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to reject swap: %w", err)
	}
	if affected == 0 {
		// Either the swap never existed or it is no longer pending.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, models.ErrAlreadyResolved
	}
	return swap, nil
}

func (r *swapRepository) Settle(ctx context.Context, id int64) (*models.SwapRequest, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the swap row for the duration of the settlement.
	swap := new(models.SwapRequest)
	err = tx.NewSelect().
		Model(swap).
		Where("s.id = ?", id).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrSwapNotFound
		}
		return nil, fmt.Errorf("failed to get swap request: %w", err)
	}
	if swap.Status != models.SwapPending {
		return nil, models.ErrAlreadyResolved
	}

	// Re-verify affordability under lock. The request-time check may be
	// stale by the time the receiver responds.
	for _, party := range []struct {
		email string
		fail  error
	}{
		{swap.RequesterEmail, models.ErrRequesterCantAfford},
		{swap.ReceiverEmail, models.ErrReceiverCantAfford},
	} {
		user := new(models.User)
		err = tx.NewSelect().
			Model(user).
			Where("u.email = ?", party.email).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, models.ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to lock user row: %w", err)
		}
		if user.Credits < swap.PlatformFee {
			return nil, party.fail
		}
	}

	// Re-verify both items are still available under lock.
	var items []*models.Item
	err = tx.NewSelect().
		Model(&items).
		Where("i.id IN (?)", bun.In([]int64{swap.RequesterItemID, swap.ReceiverItemID})).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to lock item rows: %w", err)
	}
	if len(items) != 2 {
		return nil, models.ErrItemNotFound
	}
	for _, item := range items {
		if !item.AvailableForSwap {
			return nil, models.ErrItemUnavailable
		}
	}

	// Debit the fee from both parties.
	for _, email := range []string{swap.RequesterEmail, swap.ReceiverEmail} {
		_, err = tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("credits = credits - ?", swap.PlatformFee).
			Set("updated_at = ?", time.Now()).
			Where("email = ?", email).
			Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to debit swap fee: %w", err)
		}
	}

	// Mark both items unavailable.
	_, err = tx.NewUpdate().
		Model((*models.Item)(nil)).
		Set("available_for_swap = ?", false).
		Set("updated_at = ?", time.Now()).
		Where("id IN (?)", bun.In([]int64{swap.RequesterItemID, swap.ReceiverItemID})).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to flag items: %w", err)
	}

	// Mark the swap completed.
	_, err = tx.NewUpdate().
		Model(swap).
		Set("status = ?", models.SwapCompleted).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update swap status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit swap settlement: %w", err)
	}

	swap.Status = models.SwapCompleted
	slog.Info("Swap settled",
		slog.String("type", "db"),
		slog.Int64("swap_id", id),
		slog.String("requester", swap.RequesterEmail),
		slog.String("receiver", swap.ReceiverEmail),
		slog.Int64("fee", swap.PlatformFee))
	return swap, nil
}
