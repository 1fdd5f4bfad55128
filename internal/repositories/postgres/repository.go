package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

// Repository is the gorm-backed repositories.Repository. The same code serves
// postgres and mysql; the dialect is chosen when the connection is opened.
type Repository struct {
	db       *gorm.DB
	user     repositories.UserRepository
	quiz     repositories.QuizRepository
	question repositories.QuestionRepository
	result   repositories.ResultRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:       db,
		user:     NewUserPostgreSQL(db),
		quiz:     NewQuizPostgreSQL(db),
		question: NewQuestionPostgreSQL(db),
		result:   NewResultPostgreSQL(db),
	}
}

func (r *Repository) User() repositories.UserRepository         { return r.user }
func (r *Repository) Quiz() repositories.QuizRepository         { return r.quiz }
func (r *Repository) Question() repositories.QuestionRepository { return r.question }
func (r *Repository) Result() repositories.ResultRepository     { return r.result }

func (r *Repository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// AutoMigrate creates or updates the schema for every model
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.Result{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func getDB(root, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return root
}
