package client

import "time"

type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// QuizSummary is a row of the public or personal quiz listing.
type QuizSummary struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	TimeLimit     int       `json:"timeLimit"`
	CreatedAt     time.Time `json:"createdAt"`
	Creator       string    `json:"creator,omitempty"`
	QuestionCount int       `json:"questionCount"`
}

type Question struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type Quiz struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	TimeLimit   int       `json:"timeLimit"`
	CreatorID   uint      `json:"creatorId"`
	CreatedAt   time.Time `json:"createdAt"`
	Creator     struct {
		Username string `json:"username"`
	} `json:"creator"`
	Questions []Question `json:"questions"`
}

// NewQuestion is a question as authored in a quiz definition file.
type NewQuestion struct {
	Question      string   `json:"question" yaml:"question"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer int      `json:"correctAnswer" yaml:"correctAnswer"`
}

// NewQuiz is the body of a create-quiz request.
type NewQuiz struct {
	Title       string        `json:"title" yaml:"title"`
	Description *string       `json:"description,omitempty" yaml:"description,omitempty"`
	TimeLimit   int           `json:"timeLimit" yaml:"timeLimit"`
	Questions   []NewQuestion `json:"questions" yaml:"questions"`
}

type CreatedQuiz struct {
	Quiz struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	} `json:"quiz"`
	Message string `json:"message"`
}

// Answers maps question ids to the selected option index.
type Answers map[uint]int

type Submission struct {
	Answers   Answers `json:"answers"`
	TimeTaken int     `json:"timeTaken"`
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

type Result struct {
	ID             uint      `json:"id"`
	QuizID         uint      `json:"quizId"`
	QuizTitle      string    `json:"quizTitle"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     int       `json:"percentage"`
	TimeTaken      int       `json:"timeTaken"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
