package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/auth"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAuthService(repo *MockRepository) (AuthService, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret-0123456789", time.Hour)
	return NewAuthService(repo, tokens, discardLogger(), validator.New()), tokens
}

func TestRegisterCreatesUserAndIssuesToken(t *testing.T) {
	repo := NewMockRepository()
	svc, tokens := newTestAuthService(repo)
	ctx := context.Background()

	repo.users.On("ExistsByUsernameOrEmail", ctx, (*gorm.DB)(nil), "alice", "alice@example.com").Return(false, nil)
	repo.users.On("Create", ctx, (*gorm.DB)(nil), mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(2).(*models.User)
			user.ID = 7
		}).
		Return(nil)

	resp, err := svc.Register(ctx, &RegisterRequest{Username: " alice ", Email: "alice@example.com", Password: "pw123456"})
	require.NoError(t, err)

	assert.Equal(t, uint(7), resp.User.ID)
	assert.Equal(t, "alice", resp.User.Username)

	userID, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)

	created := repo.users.Calls[1].Arguments.Get(2).(*models.User)
	assert.NotEqual(t, "pw123456", created.Password)
	assert.True(t, auth.CheckPassword(created.Password, "pw123456"))
	repo.AssertExpectations(t)
}

func TestRegisterDuplicateDoesNotCreate(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newTestAuthService(repo)
	ctx := context.Background()

	repo.users.On("ExistsByUsernameOrEmail", ctx, (*gorm.DB)(nil), "alice", "new@example.com").Return(true, nil)

	_, err := svc.Register(ctx, &RegisterRequest{Username: "alice", Email: "new@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.True(t, IsConflict(err))
	repo.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterDuplicateKeyRaceMapsToConflict(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newTestAuthService(repo)
	ctx := context.Background()

	repo.users.On("ExistsByUsernameOrEmail", ctx, (*gorm.DB)(nil), "bob", "bob@example.com").Return(false, nil)
	repo.users.On("Create", ctx, (*gorm.DB)(nil), mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := svc.Register(ctx, &RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterMissingFields(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), &RegisterRequest{Username: "alice"})
	require.Error(t, err)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "All fields are required", inputErr.Message)
	assert.Contains(t, fieldNames(inputErr.Fields), "email")
	assert.Contains(t, fieldNames(inputErr.Fields), "password")
	assert.True(t, IsValidation(err))
}

func TestRegisterOverlongPasswordNamesField(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: strings.Repeat("p", 80),
	})

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "password must be at most 72", inputErr.Message)
	repo.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	repo := NewMockRepository()
	svc, _ := newTestAuthService(repo)
	ctx := context.Background()

	hash, err := auth.HashPassword("correct")
	require.NoError(t, err)
	user := &models.User{ID: 3, Username: "carol", Email: "carol@example.com", Password: hash}

	repo.users.On("GetByUsername", ctx, (*gorm.DB)(nil), "carol").Return(user, nil)
	repo.users.On("GetByUsername", ctx, (*gorm.DB)(nil), "nobody").Return(nil, gorm.ErrRecordNotFound)

	resp, err := svc.Login(ctx, &LoginRequest{Username: "carol", Password: "correct"})
	require.NoError(t, err)
	assert.Equal(t, uint(3), resp.User.ID)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(ctx, &LoginRequest{Username: "carol", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginRequest{Username: "nobody", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginRequest{Username: "carol"})
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "Username and password are required", inputErr.Message)
}

func TestAuthenticate(t *testing.T) {
	repo := NewMockRepository()
	svc, tokens := newTestAuthService(repo)
	ctx := context.Background()

	user := &models.User{ID: 5, Username: "dave"}
	repo.users.On("GetByID", ctx, (*gorm.DB)(nil), uint(5)).Return(user, nil)
	repo.users.On("GetByID", ctx, (*gorm.DB)(nil), uint(6)).Return(nil, gorm.ErrRecordNotFound)

	token, err := tokens.Issue(5)
	require.NoError(t, err)
	got, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "dave", got.Username)

	_, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.True(t, IsUnauthorized(err))

	orphan, err := tokens.Issue(6)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, orphan)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
