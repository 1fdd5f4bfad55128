package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s, err := LoadSession(path)
	require.NoError(t, err)
	assert.False(t, s.Authenticated())

	require.NoError(t, s.Set("tok", &User{ID: 3, Username: "alice"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, "tok", loaded.Token)
	assert.Equal(t, "alice", loaded.User.Username)

	require.NoError(t, loaded.Clear())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, loaded.Clear())
}

func TestLoginStoresSessionAndSendsToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])
		_ = json.NewEncoder(w).Encode(AuthResponse{Token: "tok-1", User: User{ID: 1, Username: "alice"}})
	})
	mux.HandleFunc("GET /api/quiz/my-results", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":9,"quizTitle":"Basics","score":1,"totalQuestions":2,"percentage":50,"timeTaken":30,"createdAt":"2025-01-02T03:04:05Z"}]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	session, err := LoadSession(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	c := New(server.URL+"/api/", session)

	_, err = c.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.True(t, session.Authenticated())

	results, err := c.MyResults(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 50, results[0].Percentage)
	assert.Equal(t, "Basics", results[0].QuizTitle)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid token"}`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "session.json")
	session, err := LoadSession(path)
	require.NoError(t, err)
	require.NoError(t, session.Set("expired", &User{ID: 1}))

	c := New(server.URL+"/api", session)
	_, err = c.MyQuizzes(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid token", apiErr.Message)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, session.Authenticated())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAuthenticatedCallWithoutSession(t *testing.T) {
	c := New("http://127.0.0.1:1/api", nil)
	_, err := c.GetQuiz(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestSubmitAndErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/quiz/4/submit", func(w http.ResponseWriter, r *http.Request) {
		var sub struct {
			Answers   map[string]int `json:"answers"`
			TimeTaken int            `json:"timeTaken"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sub))
		assert.Equal(t, map[string]int{"10": 1}, sub.Answers)
		assert.Equal(t, 12, sub.TimeTaken)
		_, _ = w.Write([]byte(`{"score":1,"totalQuestions":1,"percentage":100,"timeTaken":12,"resultId":7,"details":[{"id":10,"question":"q","options":["a","b"],"correctAnswer":1,"selectedAnswer":1,"isCorrect":true}]}`))
	})
	mux.HandleFunc("DELETE /api/quiz/4", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	session := NewMemorySession()
	require.NoError(t, session.Set("tok", nil))
	c := New(server.URL+"/api", session)

	res, err := c.SubmitQuiz(context.Background(), 4, Submission{Answers: Answers{10: 1}, TimeTaken: 12})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Percentage)
	require.Len(t, res.Details, 1)
	assert.Equal(t, 1, *res.Details[0].SelectedAnswer)

	_, err = c.DeleteQuiz(context.Background(), 4)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "Unauthorized", apiErr.Message)
	assert.True(t, session.Authenticated())
}
