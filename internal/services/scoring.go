package services

import (
	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// ScoreAnswers grades each question in order. A question counts as correct only
// when the sheet holds a non-nil index equal to its correct answer.
func ScoreAnswers(questions []*models.Question, answers models.AnswerSheet) (int, []QuestionResult) {
	score := 0
	details := make([]QuestionResult, 0, len(questions))

	for _, q := range questions {
		selected := answers[q.ID]
		isCorrect := selected != nil && *selected == q.CorrectAnswer
		if isCorrect {
			score++
		}

		details = append(details, QuestionResult{
			ID:             q.ID,
			Question:       q.Question,
			Options:        q.Options,
			CorrectAnswer:  q.CorrectAnswer,
			SelectedAnswer: selected,
			IsCorrect:      isCorrect,
		})
	}

	return score, details
}

// Percentage is score/total*100 rounded half up, in integer arithmetic.
// A zero total yields 0.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (score*200 + total) / (2 * total)
}
