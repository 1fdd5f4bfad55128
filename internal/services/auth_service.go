package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/auth"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
)

const (
	msgRegisterFieldsRequired = "All fields are required"
	msgLoginFieldsRequired    = "Username and password are required"
)

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenManager
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, tokens *auth.TokenManager, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		logger:    NewServiceLogger(logger, "auth"),
		validator: validator,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (resp *AuthResponse, err error) {
	op := s.logger.WithOperation(ctx, "auth.register", 0)
	var userID uint
	defer func() { op.LogResult(userID, "user", err) }()

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if verr := s.validator.Validate(req); verr != nil {
		return nil, NewInputError(inputMessage(verr, msgRegisterFieldsRequired), verr)
	}

	exists, err := s.repo.User().ExistsByUsernameOrEmail(ctx, nil, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
	}
	if err = s.repo.User().Create(ctx, nil, user); err != nil {
		// lost a race with a concurrent registration
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	userID = user.ID

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (resp *AuthResponse, err error) {
	op := s.logger.WithOperation(ctx, "auth.login", 0)
	var userID uint
	defer func() { op.LogResult(userID, "user", err) }()

	if verr := s.validator.Validate(req); verr != nil {
		return nil, NewInputError(inputMessage(verr, msgLoginFieldsRequired), verr)
	}

	user, err := s.repo.User().GetByUsername(ctx, nil, req.Username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}
	userID = user.ID

	return s.issue(user)
}

// Authenticate resolves a bearer token to a live user. Every failure is ErrInvalidToken.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %d: %v", ErrInvalidToken, userID, err)
	}
	return user, nil
}

func (s *authService) issue(user *models.User) (*AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user.Public()}, nil
}
