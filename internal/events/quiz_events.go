package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of domain events
type EventType string

const (
	EventQuizCreated     EventType = "quiz.created"
	EventQuizDeleted     EventType = "quiz.deleted"
	EventResultSubmitted EventType = "result.submitted"
)

const (
	eventSource  = "quiz-service"
	eventVersion = "1.0"
)

// Event is the envelope for every published domain event
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Data      interface{} `json:"data"`
}

// Event payloads

type QuizCreatedEvent struct {
	QuizID        uint   `json:"quiz_id"`
	Title         string `json:"title"`
	CreatorID     uint   `json:"creator_id"`
	QuestionCount int    `json:"question_count"`
	TimeLimit     int    `json:"time_limit"` // minutes
}

type QuizDeletedEvent struct {
	QuizID    uint `json:"quiz_id"`
	DeletedBy uint `json:"deleted_by"`
}

type ResultSubmittedEvent struct {
	ResultID       uint `json:"result_id"`
	QuizID         uint `json:"quiz_id"`
	UserID         uint `json:"user_id"`
	Score          int  `json:"score"`
	TotalQuestions int  `json:"total_questions"`
	Percentage     int  `json:"percentage"`
	TimeTaken      int  `json:"time_taken"` // seconds
	OverTime       bool `json:"over_time"`
}

// Event factory functions

func NewQuizCreatedEvent(payload QuizCreatedEvent) *Event {
	return newEvent(EventQuizCreated, payload)
}

func NewQuizDeletedEvent(quizID, deletedBy uint) *Event {
	return newEvent(EventQuizDeleted, QuizDeletedEvent{QuizID: quizID, DeletedBy: deletedBy})
}

func NewResultSubmittedEvent(payload ResultSubmittedEvent) *Event {
	return newEvent(EventResultSubmitted, payload)
}

func newEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}
