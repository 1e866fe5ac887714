package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/rewearth/rewearth/rewearth/database/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// AdjustCredits applies delta to the balance as a single atomic
	// increment at the storage layer and returns the updated record.
	// It does not enforce a floor; that is the caller's decision.
	AdjustCredits(ctx context.Context, email string, delta int64) (*models.User, error)
}

type userRepository struct {
	db *bun.DB
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{db: db}
}

// NormalizeEmail folds an address to the canonical stored form. Lookups
// and writes both go through this, so email matching is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = NormalizeEmail(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return models.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("email = ?", NormalizeEmail(email)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *userRepository) AdjustCredits(ctx context.Context, email string, delta int64) (*models.User, error) {
	user := new(models.User)
	res, err := r.db.NewUpdate().
		Model(user).
		Set("credits = credits + ?", delta).
		Set("updated_at = ?", time.Now()).
		Where("email = ?", NormalizeEmail(email)).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust credits: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to adjust credits: %w", err)
	}
	if affected == 0 {
		return nil, models.ErrUserNotFound
	}

	slog.Debug("Credits adjusted",
		slog.String("type", "db"),
		slog.String("email", NormalizeEmail(email)),
		slog.Int64("delta", delta),
		slog.Int64("balance", user.Credits))
	return user, nil
}
