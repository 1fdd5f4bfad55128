package repositories

import (
	"context"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"gorm.io/gorm"
)

// QuizRepository interface for quiz-specific operations
type QuizRepository interface {
	Create(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error)
	GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error) // creator + questions by id
	Delete(ctx context.Context, tx *gorm.DB, id uint) error                             // hard delete, cascades

	List(ctx context.Context, tx *gorm.DB, filters QuizFilters) ([]*QuizSummary, error)
}

// QuestionRepository interface for question operations
type QuestionRepository interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, questions []*models.Question) error
	GetByQuiz(ctx context.Context, tx *gorm.DB, quizID uint) ([]*models.Question, error)
}
