package httpapi

import (
	"log/slog"

	"quizdesk/internal/quiz"
)

// API is a thin JSON surface over the quiz repository and session machine,
// for presentation collaborators that prefer a local service to the
// terminal app.
type API struct {
	store quiz.QuizStore
	log   *slog.Logger
}

func NewAPI(store quiz.QuizStore, log *slog.Logger) *API {
	if log == nil {
		log = slog.Default()
	}
	return &API{
		store: store,
		log:   log,
	}
}
