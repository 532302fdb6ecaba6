package auth_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"welile-backend/internal/config"
	"welile-backend/internal/domain"
	"welile-backend/internal/mocks"
	"welile-backend/internal/service/auth"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: 15 * time.Minute,
	}
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &domain.User{
		ID:           uuid.New(),
		Email:        "agent@welile.ug",
		PasswordHash: string(hash),
		FullName:     "John Okello",
		Role:         string(domain.RoleAgent),
		IsActive:     true,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, testConfig())

		user := activeUser(t, "correct-horse")
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		got, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "correct-horse"})

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		require.NotNil(t, tokens)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.Equal(t, int64((15 * time.Minute).Seconds()), tokens.ExpiresIn)
	})

	t.Run("Wrong password", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, testConfig())

		user := activeUser(t, "correct-horse")
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "wrong"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, testConfig())

		userRepo.On("GetByEmail", ctx, "nobody@welile.ug").Return(nil, sql.ErrNoRows).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "nobody@welile.ug", Password: "x"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Inactive user", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, testConfig())

		user := activeUser(t, "correct-horse")
		user.IsActive = false
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "correct-horse"})

		assert.ErrorIs(t, err, auth.ErrUserInactive)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Round trip", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, testConfig())

		user := activeUser(t, "pw")
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "pw"})
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, string(domain.RoleAgent), claims.Role)
	})

	t.Run("Garbage token", func(t *testing.T) {
		svc := auth.NewService(new(mocks.UserRepository), testConfig())

		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Token signed with a different secret", func(t *testing.T) {
		otherCfg := testConfig()
		otherCfg.JWTSecret = "other-secret"

		userRepo := new(mocks.UserRepository)
		user := activeUser(t, "pw")
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		other := auth.NewService(userRepo, otherCfg)
		_, tokens, err := other.Login(ctx, domain.LoginInput{Email: user.Email, Password: "pw"})
		require.NoError(t, err)

		svc := auth.NewService(new(mocks.UserRepository), testConfig())
		_, err = svc.ValidateAccessToken(tokens.AccessToken)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
