package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/auth"
	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
)

// ServiceManager wires every service over one repository and its collaborators
type ServiceManager struct {
	Auth   AuthService
	Quiz   QuizService
	Result ResultService
	Export ExportService
	Health HealthService
}

type Dependencies struct {
	Repo      repositories.Repository
	Cache     cache.CacheService
	CacheTTL  time.Duration
	Publisher events.EventPublisher
	Tokens    *auth.TokenManager
	Validator *validator.Validator
	Logger    *slog.Logger
}

func NewServiceManager(deps Dependencies) *ServiceManager {
	if deps.Cache == nil {
		deps.Cache = cache.NewNoopCache()
	}
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}

	results := NewResultService(deps.Repo, deps.Publisher, deps.Logger, deps.Validator)

	return &ServiceManager{
		Auth:   NewAuthService(deps.Repo, deps.Tokens, deps.Logger, deps.Validator),
		Quiz:   NewQuizService(deps.Repo, deps.Cache, deps.CacheTTL, deps.Publisher, deps.Logger, deps.Validator),
		Result: results,
		Export: NewExportService(results, deps.Logger),
		Health: NewHealthService(deps.Repo),
	}
}
