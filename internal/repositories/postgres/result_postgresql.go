package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type ResultPostgreSQL struct {
	db *gorm.DB
}

func NewResultPostgreSQL(db *gorm.DB) repositories.ResultRepository {
	return &ResultPostgreSQL{db: db}
}

func (r *ResultPostgreSQL) Create(ctx context.Context, tx *gorm.DB, result *models.Result) error {
	if err := getDB(r.db, tx).WithContext(ctx).Omit("User", "Quiz").Create(result).Error; err != nil {
		return fmt.Errorf("failed to create result: %w", err)
	}
	return nil
}

func (r *ResultPostgreSQL) ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*repositories.ResultSummary, error) {
	var rows []*repositories.ResultSummary
	err := getDB(r.db, tx).WithContext(ctx).
		Table("results").
		Select(`results.id, results.quiz_id, quizzes.title AS quiz_title, results.score,
			results.total_questions, results.time_taken, results.created_at`).
		Joins("JOIN quizzes ON quizzes.id = results.quiz_id").
		Where("results.user_id = ?", userID).
		Order("results.created_at DESC, results.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return rows, nil
}
