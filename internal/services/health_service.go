package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/repositories"
)

const healthCheckTimeout = 2 * time.Second

var ErrDatabaseUnavailable = errors.New("database unavailable")

type healthService struct {
	repo repositories.Repository
}

func NewHealthService(repo repositories.Repository) HealthService {
	return &healthService{repo: repo}
}

// Check pings the store with a short deadline.
func (s *healthService) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := s.repo.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseUnavailable, err)
	}
	return nil
}
