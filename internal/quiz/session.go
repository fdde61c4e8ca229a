package quiz

import (
	"context"
	"fmt"
	"math"
	"time"
)

// SessionState is the phase a quiz attempt is in.
type SessionState int

const (
	// StateEmpty is the terminal state for a quiz with no questions.
	// Reachable when every question of a quiz was removed after creation.
	StateEmpty SessionState = iota
	// StatePresenting means one question is on screen awaiting an answer.
	StatePresenting
	// StateFinished means all questions were answered and the attempt is
	// scored.
	StateFinished
)

func (s SessionState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePresenting:
		return "presenting"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// SessionStore is the slice of the repository a running session needs.
type SessionStore interface {
	GetQuestions(ctx context.Context, quizID int64) ([]Question, error)
	RecordResult(ctx context.Context, quizID int64, score, timeTaken int) (int64, error)
}

// passRatio is the share of correct answers needed for a passing verdict,
// rounded up to a whole question count.
const passRatio = 0.6

// Summary is what a finished attempt hands to the results screen.
type Summary struct {
	Score          int
	TotalQuestions int
	TimeTaken      int // whole seconds
	Passed         bool
}

// Session walks one attempt through a quiz's questions in order. The flow is
// forward-only: answers are appended one per question and never revised.
type Session struct {
	store     SessionStore
	quizID    int64
	questions []Question
	answers   []string
	index     int
	state     SessionState
	startedAt time.Time
	now       func() time.Time
}

// StartSession loads the quiz's ordered questions and begins presenting the
// first one. A quiz with zero questions yields a session already in the
// empty terminal state.
func StartSession(ctx context.Context, store SessionStore, quizID int64) (*Session, error) {
	questions, err := store.GetQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}

	session := &Session{
		store:     store,
		quizID:    quizID,
		questions: questions,
		answers:   make([]string, 0, len(questions)),
		now:       time.Now,
	}
	session.startedAt = session.now()

	if len(questions) == 0 {
		session.state = StateEmpty
	} else {
		session.state = StatePresenting
	}
	return session, nil
}

func (s *Session) State() SessionState {
	return s.state
}

func (s *Session) QuizID() int64 {
	return s.quizID
}

func (s *Session) TotalQuestions() int {
	return len(s.questions)
}

// Current returns the question being presented and its zero-based index.
func (s *Session) Current() (Question, int, error) {
	if s.state != StatePresenting {
		return Question{}, 0, fmt.Errorf("%w: no question in state %s", ErrInvalidState, s.state)
	}
	return s.questions[s.index], s.index, nil
}

// Submit records the answer for the current question and advances. On the
// last question it scores the attempt, persists the result, and returns the
// summary; before that it returns (nil, nil).
//
// The result write is best-effort: if it fails, the summary is still
// returned alongside an error wrapping ErrResultNotSaved so the caller can
// show the score and report the failure.
func (s *Session) Submit(ctx context.Context, answer string) (*Summary, error) {
	if s.state != StatePresenting {
		return nil, fmt.Errorf("%w: cannot submit in state %s", ErrInvalidState, s.state)
	}

	s.answers = append(s.answers, answer)
	if s.index < len(s.questions)-1 {
		s.index++
		return nil, nil
	}

	s.state = StateFinished
	summary := s.score()

	if _, err := s.store.RecordResult(ctx, s.quizID, summary.Score, summary.TimeTaken); err != nil {
		return summary, fmt.Errorf("%w: %v", ErrResultNotSaved, err)
	}
	return summary, nil
}

func (s *Session) score() *Summary {
	correct := 0
	for idx, answer := range s.answers {
		// Exact, case-sensitive comparison with no trimming.
		if answer == s.questions[idx].CorrectAnswer {
			correct++
		}
	}

	elapsed := int(s.now().Sub(s.startedAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}

	total := len(s.questions)
	return &Summary{
		Score:          correct,
		TotalQuestions: total,
		TimeTaken:      elapsed,
		Passed:         correct >= passThreshold(total),
	}
}

func passThreshold(totalQuestions int) int {
	return int(math.Ceil(float64(totalQuestions) * passRatio))
}
