package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"gorm.io/gorm"
)

// ResultRepository interface for scored attempts
type ResultRepository interface {
	Create(ctx context.Context, tx *gorm.DB, result *models.Result) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*ResultSummary, error) // newest first
}

// IsNotFoundError reports whether err is a missing-row error from the store
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKeyError reports a unique constraint violation (requires TranslateError)
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
