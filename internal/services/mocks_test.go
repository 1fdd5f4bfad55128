package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockRepository is a mock implementation of repositories.Repository
type MockRepository struct {
	mock.Mock
	users     *MockUserRepository
	quizzes   *MockQuizRepository
	questions *MockQuestionRepository
	results   *MockResultRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		users:     new(MockUserRepository),
		quizzes:   new(MockQuizRepository),
		questions: new(MockQuestionRepository),
		results:   new(MockResultRepository),
	}
}

func (m *MockRepository) User() repositories.UserRepository         { return m.users }
func (m *MockRepository) Quiz() repositories.QuizRepository         { return m.quizzes }
func (m *MockRepository) Question() repositories.QuestionRepository { return m.questions }
func (m *MockRepository) Result() repositories.ResultRepository     { return m.results }

// Transaction runs fn with a nil tx, the same as the non-transactional path
func (m *MockRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (m *MockRepository) Ping(ctx context.Context) error {
	return nil
}

func (m *MockRepository) AssertExpectations(t mock.TestingT) {
	m.users.AssertExpectations(t)
	m.quizzes.AssertExpectations(t)
	m.questions.AssertExpectations(t)
	m.results.AssertExpectations(t)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	args := m.Called(ctx, tx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.User, error) {
	args := m.Called(ctx, tx, username)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, tx *gorm.DB, username, email string) (bool, error) {
	args := m.Called(ctx, tx, username, email)
	return args.Bool(0), args.Error(1)
}

// MockQuizRepository is a mock implementation of QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error {
	args := m.Called(ctx, tx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error) {
	args := m.Called(ctx, tx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Quiz), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuizRepository) GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error) {
	args := m.Called(ctx, tx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Quiz), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuizRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockQuizRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.QuizFilters) ([]*repositories.QuizSummary, error) {
	args := m.Called(ctx, tx, filters)
	return args.Get(0).([]*repositories.QuizSummary), args.Error(1)
}

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) CreateBatch(ctx context.Context, tx *gorm.DB, questions []*models.Question) error {
	args := m.Called(ctx, tx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByQuiz(ctx context.Context, tx *gorm.DB, quizID uint) ([]*models.Question, error) {
	args := m.Called(ctx, tx, quizID)
	return args.Get(0).([]*models.Question), args.Error(1)
}

// MockResultRepository is a mock implementation of ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) Create(ctx context.Context, tx *gorm.DB, result *models.Result) error {
	args := m.Called(ctx, tx, result)
	return args.Error(0)
}

func (m *MockResultRepository) ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*repositories.ResultSummary, error) {
	args := m.Called(ctx, tx, userID)
	return args.Get(0).([]*repositories.ResultSummary), args.Error(1)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	return nil
}

// MockCacheService is a mock implementation of cache.CacheService
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func intPtr(v int) *int {
	return &v
}

func fieldNames(errs ValidationErrors) []string {
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}
