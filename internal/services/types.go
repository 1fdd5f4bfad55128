package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
)

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type QuizService interface {
	Create(ctx context.Context, req *CreateQuizRequest, creatorID uint) (*models.Quiz, error)
	Get(ctx context.Context, id uint) (*QuizDetail, error)
	List(ctx context.Context) ([]*repositories.QuizSummary, error)
	ListByCreator(ctx context.Context, creatorID uint) ([]*repositories.QuizSummary, error)
	Delete(ctx context.Context, id, userID uint) error
}

type ResultService interface {
	Submit(ctx context.Context, quizID, userID uint, req *SubmitQuizRequest) (*SubmissionResult, error)
	ListByUser(ctx context.Context, userID uint) ([]*ResultSummary, error)
}

type ExportService interface {
	ExportUserResults(ctx context.Context, userID uint) ([]byte, error)
}

type HealthService interface {
	Check(ctx context.Context) error
}

// ===== AUTH DTOs =====

type RegisterRequest struct {
	Username string `json:"username" validate:"required,not_blank,max=100"`
	Email    string `json:"email" validate:"required,not_blank,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// ===== QUIZ DTOs =====

type CreateQuizRequest struct {
	Title       string                  `json:"title" validate:"required,not_blank,max=255"`
	Description *string                 `json:"description"`
	TimeLimit   int                     `json:"timeLimit" validate:"required,gt=0"` // minutes
	Questions   []CreateQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

// CreateQuestionRequest does not cross-check CorrectAnswer against len(Options).
type CreateQuestionRequest struct {
	Question      string   `json:"question" validate:"required,not_blank"`
	Options       []string `json:"options" validate:"required"`
	CorrectAnswer *int     `json:"correctAnswer" validate:"required,option_index"`
}

type CreatorInfo struct {
	Username string `json:"username"`
}

// QuestionView is a question as shown to a quiz taker; the correct answer is withheld.
type QuestionView struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type QuizDetail struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	TimeLimit   int            `json:"timeLimit"`
	CreatorID   uint           `json:"creatorId"`
	CreatedAt   time.Time      `json:"createdAt"`
	Creator     CreatorInfo    `json:"creator"`
	Questions   []QuestionView `json:"questions"`
}

// ===== RESULT DTOs =====

type SubmitQuizRequest struct {
	Answers   models.AnswerSheet `json:"answers" validate:"required"`
	TimeTaken int                `json:"timeTaken" validate:"gte=0"` // seconds
}

type QuestionResult struct {
	ID             uint     `json:"id"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectAnswer  int      `json:"correctAnswer"`
	SelectedAnswer *int     `json:"selectedAnswer"`
	IsCorrect      bool     `json:"isCorrect"`
}

type SubmissionResult struct {
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	Percentage     int              `json:"percentage"`
	TimeTaken      int              `json:"timeTaken"`
	ResultID       uint             `json:"resultId"`
	Details        []QuestionResult `json:"details"`
}

type ResultSummary struct {
	ID             uint      `json:"id"`
	QuizID         uint      `json:"quizId"`
	QuizTitle      string    `json:"quizTitle"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     int       `json:"percentage"`
	TimeTaken      int       `json:"timeTaken"`
	CreatedAt      time.Time `json:"createdAt"`
}
