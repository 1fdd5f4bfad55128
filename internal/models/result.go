package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnswerSheet maps a question id to the selected option index. A nil entry
// means the question was left unanswered.
type AnswerSheet map[uint]*int

// Result is one scored attempt. Rows are append-only.
type Result struct {
	ID             uint                            `json:"id" gorm:"primaryKey"`
	UserID         uint                            `json:"userId" gorm:"not null;index"`
	QuizID         uint                            `json:"quizId" gorm:"not null;index"`
	Score          int                             `json:"score" gorm:"not null"`
	TotalQuestions int                             `json:"totalQuestions" gorm:"not null"`
	TimeTaken      int                             `json:"timeTaken" gorm:"not null"` // seconds
	Answers        datatypes.JSONType[AnswerSheet] `json:"answers" gorm:"not null"`
	CreatedAt      time.Time                       `json:"createdAt"`
	UpdatedAt      time.Time                       `json:"updatedAt"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID"`
	Quiz *Quiz `json:"-" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

func (Result) TableName() string {
	return "results"
}
