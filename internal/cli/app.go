// Package cli is the terminal presentation layer: a menu-driven flow over
// the quiz repository and session machine covering listing, authoring,
// taking quizzes, and results history.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"quizdesk/internal/quiz"
)

const maxAttempts = 3

var (
	correctColor = color.New(color.FgGreen)
	wrongColor   = color.New(color.FgRed)
	noticeColor  = color.New(color.FgYellow)
)

type App struct {
	store quiz.QuizStore
	in    *bufio.Reader
	out   io.Writer
}

func Run(ctx context.Context, store quiz.QuizStore, in io.Reader, out io.Writer) error {
	app := &App{
		store: store,
		in:    bufio.NewReader(in),
		out:   out,
	}
	return app.mainMenu(ctx)
}

func (a *App) mainMenu(ctx context.Context) error {
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "1. List quizzes")
		fmt.Fprintln(a.out, "2. Take a quiz")
		fmt.Fprintln(a.out, "3. Create a quiz")
		fmt.Fprintln(a.out, "4. Edit a quiz")
		fmt.Fprintln(a.out, "5. Delete a quiz")
		fmt.Fprintln(a.out, "6. Results history")
		fmt.Fprintln(a.out, "q. Quit")
		fmt.Fprint(a.out, "> ")

		choice, err := a.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch choice {
		case "1":
			err = a.listQuizzes(ctx)
		case "2":
			err = a.takeQuiz(ctx)
		case "3":
			err = a.createQuiz(ctx)
		case "4":
			err = a.editQuiz(ctx)
		case "5":
			err = a.deleteQuiz(ctx)
		case "6":
			err = a.resultsHistory(ctx)
		case "q", "Q":
			return nil
		default:
			noticeColor.Fprintln(a.out, "Unknown choice.")
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			// Storage problems are shown, the menu stays up.
			wrongColor.Fprintf(a.out, "Error: %v\n", err)
		}
	}
}

func (a *App) listQuizzes(ctx context.Context) error {
	quizzes, err := a.store.ListQuizzes(ctx)
	if err != nil {
		return err
	}

	if len(quizzes) == 0 {
		fmt.Fprintln(a.out, "No quizzes yet.")
		return nil
	}
	for _, item := range quizzes {
		fmt.Fprintf(a.out, "%d. %s\n", item.ID, item.Title)
	}
	return nil
}

func (a *App) takeQuiz(ctx context.Context) error {
	quizID, ok, err := a.promptQuizID(ctx)
	if err != nil || !ok {
		return err
	}

	session, err := quiz.StartSession(ctx, a.store, quizID)
	if err != nil {
		return err
	}
	if session.State() == quiz.StateEmpty {
		noticeColor.Fprintln(a.out, "This quiz has no questions.")
		return nil
	}

	for session.State() == quiz.StatePresenting {
		question, index, err := session.Current()
		if err != nil {
			return err
		}
		a.printQuestion(index+1, question)

		chosenIndex, ok, err := a.readOption()
		if err != nil {
			return err
		}

		answer := ""
		if ok {
			answer = question.Options[chosenIndex]
		} else {
			noticeColor.Fprintln(a.out, "No valid answer, counting as unanswered.")
		}

		summary, err := session.Submit(ctx, answer)
		if err != nil && !errors.Is(err, quiz.ErrResultNotSaved) {
			return err
		}
		if summary != nil {
			if errors.Is(err, quiz.ErrResultNotSaved) {
				noticeColor.Fprintln(a.out, "Could not save this result; the score below was not recorded.")
			}
			a.printSummary(summary)
		}
	}
	return nil
}

func (a *App) printQuestion(number int, question quiz.Question) {
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Q%d: %s\n\n", number, question.Text)
	for idx, option := range question.Options {
		fmt.Fprintf(a.out, "%d. %s\n", idx+1, option)
	}
	fmt.Fprintln(a.out)
}

func (a *App) printSummary(summary *quiz.Summary) {
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Score: %d/%d\n", summary.Score, summary.TotalQuestions)
	fmt.Fprintf(a.out, "Time taken: %ds\n", summary.TimeTaken)
	if summary.Passed {
		correctColor.Fprintln(a.out, "Congratulations! You passed!")
	} else {
		wrongColor.Fprintln(a.out, "You failed. Try again!")
	}
}

func (a *App) createQuiz(ctx context.Context) error {
	fmt.Fprint(a.out, "Quiz title: ")
	title, err := a.readLine()
	if err != nil {
		return err
	}

	questions, err := a.readQuestions()
	if err != nil {
		return err
	}

	quizID, err := a.store.CreateQuiz(ctx, title, questions)
	if err != nil {
		return err
	}
	correctColor.Fprintf(a.out, "Quiz saved with id %d.\n", quizID)
	return nil
}

func (a *App) editQuiz(ctx context.Context) error {
	quizID, ok, err := a.promptQuizID(ctx)
	if err != nil || !ok {
		return err
	}

	current, err := a.store.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "New title (was %q): ", current.Title)
	title, err := a.readLine()
	if err != nil {
		return err
	}
	if title == "" {
		title = current.Title
	}

	fmt.Fprintln(a.out, "Enter the replacement questions; the old set is discarded.")
	questions, err := a.readQuestions()
	if err != nil {
		return err
	}

	if err := a.store.UpdateQuiz(ctx, quizID, title, questions); err != nil {
		return err
	}
	correctColor.Fprintln(a.out, "Quiz updated.")
	return nil
}

func (a *App) deleteQuiz(ctx context.Context) error {
	quizID, ok, err := a.promptQuizID(ctx)
	if err != nil || !ok {
		return err
	}

	fmt.Fprint(a.out, "Delete this quiz and its questions? (y/N) ")
	confirm, err := a.readLine()
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "y") {
		fmt.Fprintln(a.out, "Not deleted.")
		return nil
	}

	if err := a.store.DeleteQuiz(ctx, quizID); err != nil {
		return err
	}
	correctColor.Fprintln(a.out, "Quiz deleted.")
	return nil
}

func (a *App) resultsHistory(ctx context.Context) error {
	results, err := a.store.ListResults(ctx)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(a.out, "No results yet.")
		return nil
	}

	// Most recent attempt first.
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	for _, item := range results {
		fmt.Fprintf(
			a.out,
			"%s  quiz %d  score %d  %ds\n",
			item.CreatedAt.Format("2006-01-02 15:04"),
			item.QuizID,
			item.Score,
			item.TimeTaken,
		)
	}
	return nil
}

// readQuestions collects questions until an empty question line. Four
// options and the correct answer per question; validation happens at the
// repository boundary.
func (a *App) readQuestions() ([]quiz.Question, error) {
	questions := make([]quiz.Question, 0)

	for {
		fmt.Fprintf(a.out, "Question %d (empty line to finish): ", len(questions)+1)
		text, err := a.readLine()
		if err != nil {
			return nil, err
		}
		if text == "" {
			return questions, nil
		}

		var options [quiz.OptionCount]string
		for idx := range options {
			fmt.Fprintf(a.out, "Option %d: ", idx+1)
			options[idx], err = a.readLine()
			if err != nil {
				return nil, err
			}
		}

		fmt.Fprint(a.out, "Correct answer: ")
		correct, err := a.readLine()
		if err != nil {
			return nil, err
		}

		questions = append(questions, quiz.NewQuestion(text, correct, options))
	}
}

func (a *App) promptQuizID(ctx context.Context) (int64, bool, error) {
	if err := a.listQuizzes(ctx); err != nil {
		return 0, false, err
	}

	fmt.Fprint(a.out, "Quiz id: ")
	line, err := a.readLine()
	if err != nil {
		return 0, false, err
	}

	quizID, parseErr := strconv.ParseInt(line, 10, 64)
	if parseErr != nil || quizID <= 0 {
		noticeColor.Fprintln(a.out, "Not a quiz id.")
		return 0, false, nil
	}
	return quizID, true, nil
}

// readOption reads a 1-based option number, retrying a few times before
// giving up on the question.
func (a *App) readOption() (int, bool, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		fmt.Fprint(a.out, "Answer (1-4): ")
		line, err := a.readLine()
		if err != nil {
			return 0, false, err
		}

		chosen, parseErr := strconv.Atoi(line)
		if parseErr == nil && chosen >= 1 && chosen <= quiz.OptionCount {
			return chosen - 1, true, nil
		}

		if attempt < maxAttempts {
			fmt.Fprintf(a.out, "Invalid input. Please enter a number 1-%d.\n", quiz.OptionCount)
		}
	}
	return 0, false, nil
}

func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
