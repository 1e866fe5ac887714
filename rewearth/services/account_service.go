package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/rewearth/rewearth/rewearth/database/models"
	"github.com/rewearth/rewearth/rewearth/database/repositories"
)

// AccountService handles registration, credential checks and the credit
// ledger. Passwords only ever exist in memory as bcrypt hashes past this
// boundary.
type AccountService struct {
	users           repositories.UserRepository
	startingCredits int64
}

func NewAccountService(users repositories.UserRepository, startingCredits int64) *AccountService {
	return &AccountService{
		users:           users,
		startingCredits: startingCredits,
	}
}

func (s *AccountService) Register(ctx context.Context, email, password, collegeID string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		CollegeID:    collegeID,
		Credits:      s.startingCredits,
		Verified:     false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("User registered",
		slog.String("email", user.Email),
		slog.Int64("starting_credits", user.Credits))
	return user, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// An unknown address and a wrong password answer identically.
		return nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}

// BuyCredits increments the balance by amount and returns the new total.
// This is a bare ledger increment; payment collection happens outside
// the platform.
func (s *AccountService) BuyCredits(ctx context.Context, email string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, models.ErrInvalidAmount
	}

	user, err := s.users.AdjustCredits(ctx, email, amount)
	if err != nil {
		return 0, err
	}

	slog.Info("Credits purchased",
		slog.String("email", user.Email),
		slog.Int64("amount", amount),
		slog.Int64("balance", user.Credits))
	return user.Credits, nil
}
