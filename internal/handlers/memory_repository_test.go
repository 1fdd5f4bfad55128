package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

// memoryRepository is an in-process repositories.Repository for HTTP tests.
type memoryRepository struct {
	mu        sync.Mutex
	seq       uint
	users     map[uint]*models.User
	quizzes   map[uint]*models.Quiz
	questions map[uint]*models.Question
	results   map[uint]*models.Result
	pingErr   error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		users:     map[uint]*models.User{},
		quizzes:   map[uint]*models.Quiz{},
		questions: map[uint]*models.Question{},
		results:   map[uint]*models.Result{},
	}
}

func (m *memoryRepository) nextID() uint {
	m.seq++
	return m.seq
}

func (m *memoryRepository) User() repositories.UserRepository         { return memoryUsers{m} }
func (m *memoryRepository) Quiz() repositories.QuizRepository         { return memoryQuizzes{m} }
func (m *memoryRepository) Question() repositories.QuestionRepository { return memoryQuestions{m} }
func (m *memoryRepository) Result() repositories.ResultRepository     { return memoryResults{m} }

func (m *memoryRepository) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (m *memoryRepository) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pingErr
}

type memoryUsers struct{ m *memoryRepository }

func (r memoryUsers) Create(_ context.Context, _ *gorm.DB, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.m.nextID()
	user.CreatedAt = time.Now()
	stored := *user
	r.m.users[user.ID] = &stored
	return nil
}

func (r memoryUsers) GetByID(_ context.Context, _ *gorm.DB, id uint) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if u, ok := r.m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memoryUsers) GetByUsername(_ context.Context, _ *gorm.DB, username string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memoryUsers) ExistsByUsernameOrEmail(_ context.Context, _ *gorm.DB, username, email string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memoryQuizzes struct{ m *memoryRepository }

func (r memoryQuizzes) Create(_ context.Context, _ *gorm.DB, quiz *models.Quiz) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	quiz.ID = r.m.nextID()
	quiz.CreatedAt = time.Now()
	stored := *quiz
	r.m.quizzes[quiz.ID] = &stored
	return nil
}

func (r memoryQuizzes) GetByID(_ context.Context, _ *gorm.DB, id uint) (*models.Quiz, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if q, ok := r.m.quizzes[id]; ok {
		copied := *q
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memoryQuizzes) GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error) {
	quiz, err := r.GetByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if creator, err := (memoryUsers{r.m}).GetByID(ctx, tx, quiz.CreatorID); err == nil {
		quiz.Creator = creator
	}
	questions, _ := (memoryQuestions{r.m}).GetByQuiz(ctx, tx, id)
	for _, q := range questions {
		quiz.Questions = append(quiz.Questions, *q)
	}
	return quiz, nil
}

func (r memoryQuizzes) Delete(_ context.Context, _ *gorm.DB, id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.quizzes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.quizzes, id)
	for qid, q := range r.m.questions {
		if q.QuizID == id {
			delete(r.m.questions, qid)
		}
	}
	for rid, res := range r.m.results {
		if res.QuizID == id {
			delete(r.m.results, rid)
		}
	}
	return nil
}

func (r memoryQuizzes) List(_ context.Context, _ *gorm.DB, filters repositories.QuizFilters) ([]*repositories.QuizSummary, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*repositories.QuizSummary
	for _, q := range r.m.quizzes {
		if filters.CreatorID != nil && q.CreatorID != *filters.CreatorID {
			continue
		}
		summary := &repositories.QuizSummary{
			ID:          q.ID,
			Title:       q.Title,
			Description: q.Description,
			TimeLimit:   q.TimeLimit,
			CreatedAt:   q.CreatedAt,
		}
		if u, ok := r.m.users[q.CreatorID]; ok {
			summary.Creator = u.Username
		}
		for _, question := range r.m.questions {
			if question.QuizID == q.ID {
				summary.QuestionCount++
			}
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memoryQuestions struct{ m *memoryRepository }

func (r memoryQuestions) CreateBatch(_ context.Context, _ *gorm.DB, questions []*models.Question) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, q := range questions {
		q.ID = r.m.nextID()
		stored := *q
		r.m.questions[q.ID] = &stored
	}
	return nil
}

func (r memoryQuestions) GetByQuiz(_ context.Context, _ *gorm.DB, quizID uint) ([]*models.Question, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Question
	for _, q := range r.m.questions {
		if q.QuizID == quizID {
			copied := *q
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memoryResults struct{ m *memoryRepository }

func (r memoryResults) Create(_ context.Context, _ *gorm.DB, result *models.Result) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	result.ID = r.m.nextID()
	result.CreatedAt = time.Now()
	stored := *result
	r.m.results[result.ID] = &stored
	return nil
}

func (r memoryResults) ListByUser(_ context.Context, _ *gorm.DB, userID uint) ([]*repositories.ResultSummary, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*repositories.ResultSummary
	for _, res := range r.m.results {
		if res.UserID != userID {
			continue
		}
		summary := &repositories.ResultSummary{
			ID:             res.ID,
			QuizID:         res.QuizID,
			Score:          res.Score,
			TotalQuestions: res.TotalQuestions,
			TimeTaken:      res.TimeTaken,
			CreatedAt:      res.CreatedAt,
		}
		if q, ok := r.m.quizzes[res.QuizID]; ok {
			summary.QuizTitle = q.Title
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memoryRepository) userCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func (m *memoryRepository) hasQuiz(id uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.quizzes[id]
	return ok
}
