package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SAP-F-2025/quiz-service/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuiz() *client.Quiz {
	return &client.Quiz{
		ID:        4,
		Title:     "Basics",
		TimeLimit: 1,
		Questions: []client.Question{
			{ID: 10, Question: "2+2?", Options: []string{"3", "4"}},
			{ID: 11, Question: "Sky?", Options: []string{"blue", "green"}},
			{ID: 12, Question: "Grass?", Options: []string{"blue", "green"}},
		},
	}
}

func TestCollectAnswersFromInput(t *testing.T) {
	var out bytes.Buffer
	lines := readLines(strings.NewReader("2\n9\nx\n1\n\n"))

	answers, timedOut := collectAnswers(sampleQuiz(), lines, make(chan struct{}), &out)

	assert.False(t, timedOut)
	assert.Equal(t, client.Answers{10: 1, 11: 0}, answers)
	assert.Contains(t, out.String(), "Pick a number between 1 and 2.")
}

func TestCollectAnswersSubmitEarly(t *testing.T) {
	lines := readLines(strings.NewReader("1\nsubmit\n2\n"))
	answers, timedOut := collectAnswers(sampleQuiz(), lines, make(chan struct{}), &bytes.Buffer{})

	assert.False(t, timedOut)
	assert.Equal(t, client.Answers{10: 0}, answers)
}

func TestCollectAnswersStopsOnExpiry(t *testing.T) {
	lines := make(chan string)
	expired := make(chan struct{})

	done := make(chan struct{})
	var answers client.Answers
	var timedOut bool
	go func() {
		answers, timedOut = collectAnswers(sampleQuiz(), lines, expired, &bytes.Buffer{})
		close(done)
	}()

	lines <- "2"
	close(expired)
	<-done

	assert.True(t, timedOut)
	assert.Equal(t, client.Answers{10: 1}, answers)
}

func TestParseQuizDefinitions(t *testing.T) {
	yamlDoc := `
title: Colours
timeLimit: 2
questions:
  - question: Sky?
    options: [blue, green]
    correctAnswer: 0
`
	quiz, err := parseQuiz([]byte(yamlDoc), ".yaml")
	require.NoError(t, err)
	assert.Equal(t, "Colours", quiz.Title)
	assert.Equal(t, 2, quiz.TimeLimit)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, []string{"blue", "green"}, quiz.Questions[0].Options)

	quiz, err = parseQuiz([]byte(`{"title":"Maths","timeLimit":5,"questions":[{"question":"2+2?","options":["3","4"],"correctAnswer":1}]}`), ".json")
	require.NoError(t, err)
	assert.Equal(t, 1, quiz.Questions[0].CorrectAnswer)

	_, err = parseQuiz([]byte(`{"title":"Empty","timeLimit":5,"questions":[]}`), ".json")
	assert.Error(t, err)
}

func TestRunListAndResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/quiz", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]client.QuizSummary{{ID: 1, Title: "Basics", TimeLimit: 5, Creator: "alice", QuestionCount: 2}})
	})
	mux.HandleFunc("GET /api/quiz/my-results", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid token"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	sessionPath := filepath.Join(t.TempDir(), "session.json")
	var out bytes.Buffer

	err := run(context.Background(), []string{"-api", server.URL + "/api", "-session", sessionPath, "list"}, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Basics")
	assert.Contains(t, out.String(), "alice")

	err = run(context.Background(), []string{"-api", server.URL + "/api", "-session", sessionPath, "results"}, strings.NewReader(""), &out)
	assert.ErrorIs(t, err, client.ErrNotSignedIn)

	err = run(context.Background(), []string{"-api", server.URL + "/api", "-session", sessionPath, "bogus"}, strings.NewReader(""), &out)
	assert.Error(t, err)
}
