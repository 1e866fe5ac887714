package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rewearth/rewearth/rewearth/database/models"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds starting credits and hashes password", func(t *testing.T) {
		users := newMemUserRepo()
		svc := NewAccountService(users, 100)

		user, err := svc.Register(ctx, "Alice@Uni.edu", "hunter2", "C-1")
		require.NoError(t, err)

		assert.Equal(t, "alice@uni.edu", user.Email)
		assert.Equal(t, int64(100), user.Credits)
		assert.False(t, user.Verified)
		assert.NotEqual(t, "hunter2", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := newMemUserRepo()
		svc := NewAccountService(users, 100)

		_, err := svc.Register(ctx, "alice@uni.edu", "hunter2", "C-1")
		require.NoError(t, err)

		// Same address in a different case is still the same account.
		_, err = svc.Register(ctx, "ALICE@uni.edu", "other", "C-2")
		assert.ErrorIs(t, err, models.ErrDuplicateEmail)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	svc := NewAccountService(users, 100)

	_, err := svc.Register(ctx, "alice@uni.edu", "hunter2", "C-1")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, "alice@uni.edu", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "alice@uni.edu", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@uni.edu", "letmein")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("unknown email answers identically", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@uni.edu", "hunter2")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})
}

func TestBuyCredits(t *testing.T) {
	ctx := context.Background()

	newSvc := func(t *testing.T) (*AccountService, *memUserRepo) {
		t.Helper()
		users := newMemUserRepo()
		svc := NewAccountService(users, 100)
		_, err := svc.Register(ctx, "alice@uni.edu", "hunter2", "C-1")
		require.NoError(t, err)
		return svc, users
	}

	t.Run("adds to the balance", func(t *testing.T) {
		svc, _ := newSvc(t)

		balance, err := svc.BuyCredits(ctx, "alice@uni.edu", 50)
		require.NoError(t, err)
		assert.Equal(t, int64(150), balance)

		balance, err = svc.BuyCredits(ctx, "alice@uni.edu", 1)
		require.NoError(t, err)
		assert.Equal(t, int64(151), balance)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc, users := newSvc(t)

		for _, amount := range []int64{0, -1, -100} {
			_, err := svc.BuyCredits(ctx, "alice@uni.edu", amount)
			assert.ErrorIs(t, err, models.ErrInvalidAmount)
		}

		user, err := users.GetByEmail(ctx, "alice@uni.edu")
		require.NoError(t, err)
		assert.Equal(t, int64(100), user.Credits)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := newSvc(t)

		_, err := svc.BuyCredits(ctx, "nobody@uni.edu", 10)
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})
}
