package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/client"
	"github.com/SAP-F-2025/quiz-service/internal/countdown"
)

func (a *app) take(ctx context.Context, args []string) error {
	id, err := quizIDArg(args)
	if err != nil {
		return err
	}
	quiz, err := a.client.GetQuiz(ctx, id)
	if err != nil {
		return err
	}

	out := &syncWriter{w: a.out}
	fmt.Fprintf(out, "%s: %d questions, %s on the clock.\n", quiz.Title, len(quiz.Questions), formatClock(quiz.TimeLimit*60))
	fmt.Fprintln(out, "Type an option number and press Enter. Empty line skips, \"submit\" finishes early.")

	expired := make(chan struct{})
	timer := countdown.New(quiz.TimeLimit,
		countdown.OnTick(func(remaining int) {
			if remaining%60 == 0 || remaining == 30 || remaining == 10 {
				fmt.Fprintf(out, "[%s left]\n", formatClock(remaining))
			}
		}),
		countdown.OnExpire(func() { close(expired) }),
	)

	timerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	if err := timer.Start(timerCtx); err != nil {
		return err
	}

	answers, timedOut := collectAnswers(quiz, readLines(a.in), expired, out)
	timer.Stop()
	if timedOut {
		fmt.Fprintln(out, "Time's up! Submitting your answers.")
	}

	result, err := a.client.SubmitQuiz(ctx, quiz.ID, client.Submission{
		Answers:   answers,
		TimeTaken: int(time.Since(start).Seconds()),
	})
	if err != nil {
		return err
	}

	printSubmission(out, result)
	return nil
}

// collectAnswers walks the questions in order and records one answer per
// question until the input ends, the user submits or the clock expires.
func collectAnswers(quiz *client.Quiz, lines <-chan string, expired <-chan struct{}, out io.Writer) (client.Answers, bool) {
	answers := client.Answers{}

	for i, q := range quiz.Questions {
		fmt.Fprintf(out, "\n%d/%d. %s\n", i+1, len(quiz.Questions), q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(out, "   %d) %s\n", j+1, opt)
		}

	prompt:
		for {
			fmt.Fprint(out, "> ")
			select {
			case <-expired:
				return answers, true
			case line, ok := <-lines:
				if !ok {
					return answers, false
				}
				line = strings.TrimSpace(line)
				switch {
				case line == "":
					break prompt
				case strings.EqualFold(line, "submit"):
					return answers, false
				}
				choice, err := strconv.Atoi(line)
				if err != nil || choice < 1 || choice > len(q.Options) {
					fmt.Fprintf(out, "Pick a number between 1 and %d.\n", len(q.Options))
					continue
				}
				answers[q.ID] = choice - 1
				break prompt
			}
		}
	}
	return answers, false
}

// readLines feeds stdin lines to a channel so the answer loop can select on the timer.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

func printSubmission(out io.Writer, result *client.SubmissionResult) {
	fmt.Fprintf(out, "\nScore: %d/%d (%d%%) in %s\n",
		result.Score, result.TotalQuestions, result.Percentage, formatDuration(result.TimeTaken))

	for i, d := range result.Details {
		mark := "✗"
		if d.IsCorrect {
			mark = "✓"
		}
		selected := "no answer"
		if d.SelectedAnswer != nil && *d.SelectedAnswer >= 0 && *d.SelectedAnswer < len(d.Options) {
			selected = d.Options[*d.SelectedAnswer]
		}
		correct := ""
		if d.CorrectAnswer >= 0 && d.CorrectAnswer < len(d.Options) {
			correct = d.Options[d.CorrectAnswer]
		}
		fmt.Fprintf(out, "%s %d. %s\n   your answer: %s\n", mark, i+1, d.Question, selected)
		if !d.IsCorrect {
			fmt.Fprintf(out, "   correct answer: %s\n", correct)
		}
	}
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
