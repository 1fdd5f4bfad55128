package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"gorm.io/gorm"
)

const (
	msgQuizFieldsRequired = "Title, timeLimit, and questions are required"

	// maxListCacheTTL bounds how long a list read that raced a create can stay stale.
	maxListCacheTTL = 30 * time.Second
)

type quizService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	cacheTTL  time.Duration
	publisher events.EventPublisher
	logger    *ServiceLogger
	base      *slog.Logger
	validator *validator.Validator
}

func NewQuizService(repo repositories.Repository, cacheService cache.CacheService, cacheTTL time.Duration, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) QuizService {
	return &quizService{
		repo:      repo,
		cache:     cacheService,
		cacheTTL:  cacheTTL,
		publisher: publisher,
		logger:    NewServiceLogger(logger, "quiz"),
		base:      logger,
		validator: validator,
	}
}

// ===== CORE CRUD OPERATIONS =====

// Create writes the quiz and all of its questions in one transaction.
func (s *quizService) Create(ctx context.Context, req *CreateQuizRequest, creatorID uint) (quiz *models.Quiz, err error) {
	op := s.logger.WithOperation(ctx, "quiz.create", creatorID)
	defer func() {
		var id uint
		if quiz != nil {
			id = quiz.ID
		}
		op.LogResult(id, "quiz", err)
	}()

	req.Title = strings.TrimSpace(req.Title)
	if verr := s.validator.Validate(req); verr != nil {
		return nil, NewInputError(inputMessage(verr, msgQuizFieldsRequired), verr)
	}

	quiz = &models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		TimeLimit:   req.TimeLimit,
		CreatorID:   creatorID,
	}

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Quiz().Create(ctx, tx, quiz); err != nil {
			return err
		}

		questions := make([]*models.Question, 0, len(req.Questions))
		for _, q := range req.Questions {
			questions = append(questions, &models.Question{
				QuizID:        quiz.ID,
				Question:      q.Question,
				Options:       q.Options,
				CorrectAnswer: *q.CorrectAnswer,
			})
		}
		return s.repo.Question().CreateBatch(ctx, tx, questions)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.invalidateList(ctx)
	s.publish(ctx, events.NewQuizCreatedEvent(events.QuizCreatedEvent{
		QuizID:        quiz.ID,
		Title:         quiz.Title,
		CreatorID:     creatorID,
		QuestionCount: len(req.Questions),
		TimeLimit:     quiz.TimeLimit,
	}))

	return quiz, nil
}

// Get returns the quiz for taking; correct answers are not included.
func (s *quizService) Get(ctx context.Context, id uint) (*QuizDetail, error) {
	var detail QuizDetail
	if err := s.cache.Get(ctx, cache.QuizDetailKey(id), &detail); err == nil {
		return &detail, nil
	}

	quiz, err := s.repo.Quiz().GetByIDWithDetails(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz %d: %w", id, err)
	}

	result := toQuizDetail(quiz)
	s.storeCache(ctx, cache.QuizDetailKey(id), result, s.cacheTTL)
	return result, nil
}

func (s *quizService) List(ctx context.Context) ([]*repositories.QuizSummary, error) {
	var summaries []*repositories.QuizSummary
	if err := s.cache.Get(ctx, cache.QuizListKey(), &summaries); err == nil {
		return summaries, nil
	}

	summaries, err := s.repo.Quiz().List(ctx, nil, repositories.QuizFilters{})
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []*repositories.QuizSummary{}
	}

	s.storeCache(ctx, cache.QuizListKey(), summaries, min(s.cacheTTL, maxListCacheTTL))
	return summaries, nil
}

// ListByCreator is the creator's own listing; the creator name is left empty.
func (s *quizService) ListByCreator(ctx context.Context, creatorID uint) ([]*repositories.QuizSummary, error) {
	summaries, err := s.repo.Quiz().List(ctx, nil, repositories.QuizFilters{CreatorID: &creatorID})
	if err != nil {
		return nil, err
	}

	for _, summary := range summaries {
		summary.Creator = ""
	}
	if summaries == nil {
		summaries = []*repositories.QuizSummary{}
	}
	return summaries, nil
}

// Delete hard-deletes a quiz with its questions and results. Only the creator may delete.
func (s *quizService) Delete(ctx context.Context, id, userID uint) (err error) {
	op := s.logger.WithOperation(ctx, "quiz.delete", userID)
	defer func() { op.LogResult(id, "quiz", err) }()

	quiz, err := s.repo.Quiz().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("failed to load quiz %d: %w", id, err)
	}

	if quiz.CreatorID != userID {
		return NewPermissionError(userID, id, "quiz", "delete", "only the creator can delete a quiz")
	}

	if err = s.repo.Quiz().Delete(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuizNotFound
		}
		return err
	}

	s.invalidateList(ctx)
	if cerr := s.cache.Delete(ctx, cache.QuizDetailKey(id)); cerr != nil {
		s.base.Warn("Failed to invalidate quiz cache", "quiz_id", id, "error", cerr)
	}
	s.publish(ctx, events.NewQuizDeletedEvent(id, userID))
	return nil
}

// ===== HELPERS =====

func toQuizDetail(quiz *models.Quiz) *QuizDetail {
	detail := &QuizDetail{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		TimeLimit:   quiz.TimeLimit,
		CreatorID:   quiz.CreatorID,
		CreatedAt:   quiz.CreatedAt,
		Questions:   make([]QuestionView, 0, len(quiz.Questions)),
	}
	if quiz.Creator != nil {
		detail.Creator = CreatorInfo{Username: quiz.Creator.Username}
	}
	for _, q := range quiz.Questions {
		detail.Questions = append(detail.Questions, QuestionView{
			ID:       q.ID,
			Question: q.Question,
			Options:  q.Options,
		})
	}
	return detail
}

func (s *quizService) storeCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		s.base.Warn("Failed to populate cache", "key", key, "error", err)
	}
}

func (s *quizService) invalidateList(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.QuizListKey()); err != nil {
		s.base.Warn("Failed to invalidate quiz list cache", "error", err)
	}
}

func (s *quizService) publish(ctx context.Context, event *events.Event) {
	publishEvent(ctx, s.publisher, s.base, event)
}

// publishEvent is best-effort: the write it describes has already committed.
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, event *events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("Failed to publish event", "event_type", event.Type, "event_id", event.ID, "error", err)
	}
}
