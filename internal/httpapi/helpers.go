package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"quizdesk/internal/quiz"
)

func (a *API) writeStoreError(w http.ResponseWriter, err error) {
	var verr *quiz.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error()})
	case errors.Is(err, quiz.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "quiz not found"})
	case errors.Is(err, quiz.ErrInvalidState):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		a.log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

func parseQuizID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("quiz_id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("quiz_id must be a positive integer")
	}
	return id, nil
}

func toQuestions(payloads []questionPayload) ([]quiz.Question, error) {
	questions := make([]quiz.Question, 0, len(payloads))
	for idx, payload := range payloads {
		if len(payload.Options) != quiz.OptionCount {
			return nil, &quiz.ValidationError{
				Field:  "questions[" + strconv.Itoa(idx) + "].options",
				Reason: "must have exactly " + strconv.Itoa(quiz.OptionCount) + " options",
			}
		}

		var options [quiz.OptionCount]string
		copy(options[:], payload.Options)
		questions = append(questions, quiz.NewQuestion(payload.Question, payload.CorrectAnswer, options))
	}
	return questions, nil
}

func toQuestionPayloads(questions []quiz.Question) []questionPayload {
	payloads := make([]questionPayload, 0, len(questions))
	for _, question := range questions {
		payloads = append(payloads, questionPayload{
			ID:            question.ID,
			Question:      question.Text,
			CorrectAnswer: question.CorrectAnswer,
			Options:       question.Options[:],
		})
	}
	return payloads
}

func writeMethodNotAllowed(w http.ResponseWriter, allowedMethods string) {
	w.Header().Set("Allow", allowedMethods)
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
