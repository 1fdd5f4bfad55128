package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/client"
	"github.com/SAP-F-2025/quiz-service/internal/countdown"
)

var errUsage = errors.New("wrong number of arguments")

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("register <username> <email> <password>: %w", errUsage)
	}
	resp, err := a.client.Register(ctx, args[0], args[1], args[2])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered and signed in as %s\n", resp.User.Username)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("login <username> <password>: %w", errUsage)
	}
	resp, err := a.client.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", resp.User.Username)
	return nil
}

func (a *app) logout() error {
	if err := a.client.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *app) list(ctx context.Context) error {
	quizzes, err := a.client.ListQuizzes(ctx)
	if err != nil {
		return err
	}
	a.printQuizzes(quizzes, true)
	return nil
}

func (a *app) mine(ctx context.Context) error {
	quizzes, err := a.client.MyQuizzes(ctx)
	if err != nil {
		return err
	}
	a.printQuizzes(quizzes, false)
	return nil
}

func (a *app) printQuizzes(quizzes []client.QuizSummary, withCreator bool) {
	if len(quizzes) == 0 {
		fmt.Fprintln(a.out, "No quizzes yet")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	if withCreator {
		fmt.Fprintln(w, "ID\tTITLE\tQUESTIONS\tTIME\tCREATOR")
	} else {
		fmt.Fprintln(w, "ID\tTITLE\tQUESTIONS\tTIME\tCREATED")
	}
	for _, q := range quizzes {
		last := q.Creator
		if !withCreator {
			last = q.CreatedAt.Local().Format(time.DateOnly)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d min\t%s\n", q.ID, q.Title, q.QuestionCount, q.TimeLimit, last)
	}
	_ = w.Flush()
}

func (a *app) show(ctx context.Context, args []string) error {
	id, err := quizIDArg(args)
	if err != nil {
		return err
	}
	quiz, err := a.client.GetQuiz(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (by %s, %d min)\n", quiz.Title, quiz.Creator.Username, quiz.TimeLimit)
	if quiz.Description != nil && *quiz.Description != "" {
		fmt.Fprintln(a.out, *quiz.Description)
	}
	for i, q := range quiz.Questions {
		fmt.Fprintf(a.out, "\n%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(a.out, "   %d) %s\n", j+1, opt)
		}
	}
	return nil
}

func (a *app) create(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("create <file.json|yaml>: %w", errUsage)
	}
	quiz, err := readQuizFile(args[0])
	if err != nil {
		return err
	}
	created, err := a.client.CreateQuiz(ctx, quiz)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (id %d)\n", created.Message, created.Quiz.ID)
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	id, err := quizIDArg(args)
	if err != nil {
		return err
	}
	msg, err := a.client.DeleteQuiz(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *app) results(ctx context.Context) error {
	results, err := a.client.MyResults(ctx)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(a.out, "No results yet")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUIZ\tSCORE\tPERCENT\tTIME\tDATE")
	var totalScore, totalQuestions, totalTime int
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d/%d\t%d%%\t%s\t%s\n", r.QuizTitle, r.Score, r.TotalQuestions, r.Percentage,
			formatDuration(r.TimeTaken), r.CreatedAt.Local().Format(time.DateTime))
		totalScore += r.Score
		totalQuestions += r.TotalQuestions
		totalTime += r.TimeTaken
	}
	_ = w.Flush()

	fmt.Fprintf(a.out, "\n%d attempts, %d/%d correct overall, %s total\n",
		len(results), totalScore, totalQuestions, formatDuration(totalTime))
	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	path := "quiz-results.xlsx"
	if len(args) > 0 {
		path = args[0]
	}
	data, err := a.client.ExportResults(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(a.out, "Saved %s\n", path)
	return nil
}

func (a *app) health(ctx context.Context) error {
	h, err := a.client.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: %s\n", h.Status, h.Message)
	return nil
}

func quizIDArg(args []string) (uint, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected a quiz id: %w", errUsage)
	}
	id, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid quiz id %q", args[0])
	}
	return uint(id), nil
}

func formatDuration(seconds int) string {
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

func formatClock(seconds int) string {
	return countdown.Format(seconds)
}
