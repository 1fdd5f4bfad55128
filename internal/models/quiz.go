package models

import (
	"time"

	"gorm.io/datatypes"
)

type Quiz struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:255"`
	Description *string `json:"description" gorm:"type:text"`
	TimeLimit   int     `json:"timeLimit" gorm:"not null"` // minutes
	CreatorID   uint    `json:"creatorId" gorm:"not null;index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Creator   *User      `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
	Results   []Result   `json:"-" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// TimeLimitSeconds is the countdown budget for one attempt.
func (q *Quiz) TimeLimitSeconds() int {
	return q.TimeLimit * 60
}

type Question struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	QuizID        uint                        `json:"quizId" gorm:"not null;index"`
	Question      string                      `json:"question" gorm:"type:text;not null"`
	Options       datatypes.JSONSlice[string] `json:"options" gorm:"not null"`
	CorrectAnswer int                         `json:"correctAnswer" gorm:"not null"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Question) TableName() string {
	return "questions"
}
