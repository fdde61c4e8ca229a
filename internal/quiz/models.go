// Package quiz holds the domain model: quizzes and their questions, recorded
// results, the repository that persists them, and the session state machine
// that drives a single attempt.
package quiz

import (
	"fmt"
	"strings"
	"time"
)

// OptionCount is the fixed number of choices per question, mirroring the
// four option columns of the questions table.
const OptionCount = 4

type Quiz struct {
	ID    int64
	Title string
}

type Question struct {
	ID            int64
	QuizID        int64
	Text          string
	CorrectAnswer string
	Options       [OptionCount]string
}

// Result is an immutable record of one completed attempt. A Result may
// outlive its quiz; deleting a quiz leaves its history untouched.
type Result struct {
	ID        int64
	QuizID    int64
	Score     int
	TimeTaken int // whole seconds
	CreatedAt time.Time
}

// NewQuestion builds an unsaved question. The id fields are assigned by the
// store on insert.
func NewQuestion(text, correctAnswer string, options [OptionCount]string) Question {
	return Question{
		Text:          text,
		CorrectAnswer: correctAnswer,
		Options:       options,
	}
}

func validateQuizInput(title string, questions []Question) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if len(questions) == 0 {
		return &ValidationError{Field: "questions", Reason: "need at least one question"}
	}

	for idx, question := range questions {
		if err := validateQuestion(idx, question); err != nil {
			return err
		}
	}
	return nil
}

func validateQuestion(idx int, question Question) error {
	if question.Text == "" {
		return &ValidationError{
			Field:  fmt.Sprintf("questions[%d].question", idx),
			Reason: "must not be empty",
		}
	}

	matched := false
	for optIdx, option := range question.Options {
		if option == "" {
			return &ValidationError{
				Field:  fmt.Sprintf("questions[%d].option%d", idx, optIdx+1),
				Reason: "must not be empty",
			}
		}
		if option == question.CorrectAnswer {
			matched = true
		}
	}

	if question.CorrectAnswer == "" {
		return &ValidationError{
			Field:  fmt.Sprintf("questions[%d].correct_answer", idx),
			Reason: "must not be empty",
		}
	}
	if !matched {
		return &ValidationError{
			Field:  fmt.Sprintf("questions[%d].correct_answer", idx),
			Reason: "must match one of the four options",
		}
	}
	return nil
}
