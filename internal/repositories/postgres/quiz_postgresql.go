package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type QuizPostgreSQL struct {
	db *gorm.DB
}

func NewQuizPostgreSQL(db *gorm.DB) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db}
}

func (q *QuizPostgreSQL) Create(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error {
	// Questions are written separately through QuestionRepository.CreateBatch
	if err := getDB(q.db, tx).WithContext(ctx).Omit("Questions", "Creator").Create(quiz).Error; err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

func (q *QuizPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := getDB(q.db, tx).WithContext(ctx).First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (q *QuizPostgreSQL) GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := getDB(q.db, tx).WithContext(ctx).
		Preload("Creator").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id ASC")
		}).
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// Delete removes the quiz with its results and questions in one transaction,
// so the cascade holds even where the FK constraint was created without it.
func (q *QuizPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return getDB(q.db, tx).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&models.Result{}).Error; err != nil {
			return fmt.Errorf("failed to delete quiz results: %w", err)
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete quiz questions: %w", err)
		}

		res := tx.Delete(&models.Quiz{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete quiz: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (q *QuizPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.QuizFilters) ([]*repositories.QuizSummary, error) {
	var summaries []*repositories.QuizSummary

	query := getDB(q.db, tx).WithContext(ctx).
		Table("quizzes").
		Select(`quizzes.id, quizzes.title, quizzes.description, quizzes.time_limit, quizzes.created_at,
			users.username AS creator, COUNT(questions.id) AS question_count`).
		Joins("LEFT JOIN users ON users.id = quizzes.creator_id").
		Joins("LEFT JOIN questions ON questions.quiz_id = quizzes.id").
		Group("quizzes.id, quizzes.title, quizzes.description, quizzes.time_limit, quizzes.created_at, users.username")

	if filters.CreatorID != nil {
		query = query.Where("quizzes.creator_id = ?", *filters.CreatorID)
	}

	query = query.Order("quizzes.id ASC")

	if err := query.Scan(&summaries).Error; err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return summaries, nil
}

type QuestionPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: db}
}

func (q *QuestionPostgreSQL) CreateBatch(ctx context.Context, tx *gorm.DB, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	if err := getDB(q.db, tx).WithContext(ctx).Create(&questions).Error; err != nil {
		return fmt.Errorf("failed to create questions: %w", err)
	}
	return nil
}

func (q *QuestionPostgreSQL) GetByQuiz(ctx context.Context, tx *gorm.DB, quizID uint) ([]*models.Question, error) {
	var questions []*models.Question
	err := getDB(q.db, tx).WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("id ASC").
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	return questions, nil
}
