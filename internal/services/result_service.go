package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"gorm.io/datatypes"
)

const msgAnswersRequired = "Answers are required"

type resultService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *ServiceLogger
	base      *slog.Logger
	validator *validator.Validator
}

func NewResultService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) ResultService {
	return &resultService{
		repo:      repo,
		publisher: publisher,
		logger:    NewServiceLogger(logger, "result"),
		base:      logger,
		validator: validator,
	}
}

// Submit scores the answer sheet against the quiz's questions and stores one
// immutable result row holding the raw sheet. Retakes are unlimited.
func (s *resultService) Submit(ctx context.Context, quizID, userID uint, req *SubmitQuizRequest) (res *SubmissionResult, err error) {
	op := s.logger.WithOperation(ctx, "quiz.submit", userID)
	defer func() {
		var id uint
		if res != nil {
			id = res.ResultID
		}
		op.LogResult(id, "result", err)
	}()

	if verr := s.validator.Validate(req); verr != nil {
		return nil, NewInputError(inputMessage(verr, msgAnswersRequired), verr)
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, nil, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz %d: %w", quizID, err)
	}

	questions, err := s.repo.Question().GetByQuiz(ctx, nil, quizID)
	if err != nil {
		return nil, err
	}

	score, details := ScoreAnswers(questions, req.Answers)
	total := len(questions)
	percentage := Percentage(score, total)

	// timeTaken is client-reported and accepted as-is
	overTime := req.TimeTaken > quiz.TimeLimitSeconds()
	if overTime {
		s.base.Warn("Submission exceeds quiz time limit",
			"quiz_id", quizID,
			"user_id", userID,
			"time_taken", req.TimeTaken,
			"time_limit_seconds", quiz.TimeLimitSeconds())
	}

	result := &models.Result{
		UserID:         userID,
		QuizID:         quizID,
		Score:          score,
		TotalQuestions: total,
		TimeTaken:      req.TimeTaken,
		Answers:        datatypes.NewJSONType(req.Answers),
	}
	if err = s.repo.Result().Create(ctx, nil, result); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.publisher, s.base, events.NewResultSubmittedEvent(events.ResultSubmittedEvent{
		ResultID:       result.ID,
		QuizID:         quizID,
		UserID:         userID,
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		TimeTaken:      req.TimeTaken,
		OverTime:       overTime,
	}))

	return &SubmissionResult{
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		TimeTaken:      req.TimeTaken,
		ResultID:       result.ID,
		Details:        details,
	}, nil
}

// ListByUser returns the user's results, newest first, with percentages recomputed.
func (s *resultService) ListByUser(ctx context.Context, userID uint) ([]*ResultSummary, error) {
	rows, err := s.repo.Result().ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*ResultSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, &ResultSummary{
			ID:             row.ID,
			QuizID:         row.QuizID,
			QuizTitle:      row.QuizTitle,
			Score:          row.Score,
			TotalQuestions: row.TotalQuestions,
			Percentage:     Percentage(row.Score, row.TotalQuestions),
			TimeTaken:      row.TimeTaken,
			CreatedAt:      row.CreatedAt,
		})
	}
	return summaries, nil
}
