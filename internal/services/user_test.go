package service_test

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	apperrors "github.com/uandc/arena-market/internal/errors"
	"github.com/uandc/arena-market/internal/models"
	service "github.com/uandc/arena-market/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupUserServiceTest() (*mockUserRepo, *mockRateLimitRepo, *service.UserService) {
	userRepo := new(mockUserRepo)
	rateLimitRepo := new(mockRateLimitRepo)

	return userRepo, rateLimitRepo, service.NewUserService(userRepo, rateLimitRepo, []byte("test-secret"))
}

func TestUserServiceRegister(t *testing.T) {
	t.Run("Success - Assigns Buyer Role", func(t *testing.T) {
		// Arrange
		userRepo, _, svc := setupUserServiceTest()

		userRepo.On("GetUserByEmail", mock.Anything, "ada@example.com").Return(nil, sql.ErrNoRows).Once()
		userRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil).Once()
		userRepo.On("AssignRole", mock.Anything, mock.AnythingOfType("uuid.UUID"), models.RoleBuyer).Return(nil).Once()

		// Act
		user, err := svc.Register(t.Context(), &models.RegisterRequest{
			Email:    "ada@example.com",
			Password: "correct-horse",
			FullName: "Ada Obi",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.RoleBuyer, user.Role)
		assert.NotEqual(t, "correct-horse", user.Password, "password must be stored hashed")
		userRepo.AssertExpectations(t)
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		// Arrange
		userRepo, _, svc := setupUserServiceTest()

		userRepo.On("GetUserByEmail", mock.Anything, "ada@example.com").
			Return(&models.User{ID: uuid.New(), Email: "ada@example.com"}, nil).Once()

		// Act
		_, err := svc.Register(t.Context(), &models.RegisterRequest{
			Email:    "ada@example.com",
			Password: "correct-horse",
			FullName: "Ada Obi",
		})

		// Assert
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeDuplicateEntry, appErr.Code)
		userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}

func TestUserServiceLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)

	storedUser := &models.User{
		ID:       uuid.New(),
		Email:    "ada@example.com",
		Password: string(hash),
		Role:     models.RoleBuyer,
	}

	t.Run("Success - Returns Token", func(t *testing.T) {
		// Arrange
		userRepo, rateLimitRepo, svc := setupUserServiceTest()

		rateLimitRepo.On("CheckLoginRateLimit", mock.Anything, "ada@example.com").Return(true, 4, 0, nil).Once()
		userRepo.On("GetUserByEmail", mock.Anything, "ada@example.com").Return(storedUser, nil).Once()

		// Act
		result, err := svc.Login(t.Context(), &models.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})

		// Assert
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.NotEmpty(t, result.Token)
		assert.Positive(t, result.ExpiresIn)
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {
		// Arrange
		userRepo, rateLimitRepo, svc := setupUserServiceTest()

		rateLimitRepo.On("CheckLoginRateLimit", mock.Anything, "ada@example.com").Return(true, 3, 0, nil).Once()
		userRepo.On("GetUserByEmail", mock.Anything, "ada@example.com").Return(storedUser, nil).Once()

		// Act
		result, err := svc.Login(t.Context(), &models.LoginRequest{Email: "ada@example.com", Password: "wrong"})

		// Assert
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Empty(t, result.Token)
		assert.Equal(t, 3, result.RemainingTries)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		userRepo, rateLimitRepo, svc := setupUserServiceTest()

		rateLimitRepo.On("CheckLoginRateLimit", mock.Anything, "ada@example.com").Return(false, 0, 600, nil).Once()

		// Act
		result, err := svc.Login(t.Context(), &models.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})

		// Assert
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, 600, result.RetryAfter)
		userRepo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})
}
