package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type QuizFilters struct {
	CreatorID *uint `json:"creator_id"`
}

// ===== READ MODELS =====

// QuizSummary is one row of a quiz listing, with the question count aggregated in SQL.
type QuizSummary struct {
	ID            uint      `json:"id" gorm:"column:id"`
	Title         string    `json:"title" gorm:"column:title"`
	Description   *string   `json:"description" gorm:"column:description"`
	TimeLimit     int       `json:"timeLimit" gorm:"column:time_limit"`
	CreatedAt     time.Time `json:"createdAt" gorm:"column:created_at"`
	Creator       string    `json:"creator,omitempty" gorm:"column:creator"`
	QuestionCount int64     `json:"questionCount" gorm:"column:question_count"`
}

// ResultSummary is one row of a user's result history joined with the quiz title.
type ResultSummary struct {
	ID             uint      `gorm:"column:id"`
	QuizID         uint      `gorm:"column:quiz_id"`
	QuizTitle      string    `gorm:"column:quiz_title"`
	Score          int       `gorm:"column:score"`
	TotalQuestions int       `gorm:"column:total_questions"`
	TimeTaken      int       `gorm:"column:time_taken"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

// Repository groups the per-entity repositories and owns transactions.
// Repository methods take an optional tx; nil runs against the root connection.
type Repository interface {
	User() UserRepository
	Quiz() QuizRepository
	Question() QuestionRepository
	Result() ResultRepository

	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	Ping(ctx context.Context) error
}
