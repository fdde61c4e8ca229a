package httpapi

import (
	"log/slog"
	"net/http"

	"quizdesk/internal/quiz"
)

func NewRouter(store quiz.QuizStore, log *slog.Logger) http.Handler {
	api := NewAPI(store, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/quizzes", api.HandleQuizzes)
	mux.HandleFunc("/quizzes/{quiz_id}", api.HandleQuizByID)
	mux.HandleFunc("/quizzes/{quiz_id}/attempts", api.HandleAttempts)
	mux.HandleFunc("/results", api.HandleResults)

	return mux
}
