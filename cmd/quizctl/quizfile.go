package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/client"
	"gopkg.in/yaml.v3"
)

// readQuizFile loads a quiz definition. Files ending in .yaml or .yml are YAML,
// everything else is JSON.
func readQuizFile(path string) (*client.NewQuiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz file: %w", err)
	}
	return parseQuiz(data, filepath.Ext(path))
}

func parseQuiz(data []byte, ext string) (*client.NewQuiz, error) {
	var quiz client.NewQuiz
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &quiz); err != nil {
			return nil, fmt.Errorf("invalid YAML quiz definition: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &quiz); err != nil {
			return nil, fmt.Errorf("invalid JSON quiz definition: %w", err)
		}
	}

	if strings.TrimSpace(quiz.Title) == "" || quiz.TimeLimit <= 0 || len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("quiz definition needs a title, a positive timeLimit and at least one question")
	}
	return &quiz, nil
}
