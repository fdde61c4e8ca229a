package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"quizdesk/internal/quiz"
)

func (a *API) HandleQuizzes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.handleListQuizzes(w, r)
	case http.MethodPost:
		a.handleCreateQuiz(w, r)
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

func (a *API) handleListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := a.store.ListQuizzes(r.Context())
	if err != nil {
		a.writeStoreError(w, err)
		return
	}

	response := quizListResponse{
		Quizzes: make([]quizItemResponse, 0, len(quizzes)),
	}
	for _, item := range quizzes {
		response.Quizzes = append(response.Quizzes, quizItemResponse{
			QuizID: item.ID,
			Title:  item.Title,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

func (a *API) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var request saveQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	questions, err := toQuestions(request.Questions)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}

	quizID, err := a.store.CreateQuiz(r.Context(), request.Title, questions)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}

	a.log.Info("quiz created", "quiz_id", quizID, "questions", len(questions))
	writeJSON(w, http.StatusCreated, createQuizResponse{QuizID: quizID})
}

func (a *API) HandleQuizByID(w http.ResponseWriter, r *http.Request) {
	quizID, err := parseQuizID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.handleGetQuiz(w, r, quizID)
	case http.MethodPut:
		a.handleUpdateQuiz(w, r, quizID)
	case http.MethodDelete:
		a.handleDeleteQuiz(w, r, quizID)
	default:
		writeMethodNotAllowed(w, "GET, PUT, DELETE")
	}
}

func (a *API) handleGetQuiz(w http.ResponseWriter, r *http.Request, quizID int64) {
	item, err := a.store.GetQuiz(r.Context(), quizID)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}

	questions, err := a.store.GetQuestions(r.Context(), quizID)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quizDetailResponse{
		QuizID:    item.ID,
		Title:     item.Title,
		Questions: toQuestionPayloads(questions),
	})
}

func (a *API) handleUpdateQuiz(w http.ResponseWriter, r *http.Request, quizID int64) {
	defer r.Body.Close()

	var request saveQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	questions, err := toQuestions(request.Questions)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}

	if err := a.store.UpdateQuiz(r.Context(), quizID, request.Title, questions); err != nil {
		a.writeStoreError(w, err)
		return
	}

	a.log.Info("quiz updated", "quiz_id", quizID, "questions", len(questions))
	writeJSON(w, http.StatusOK, createQuizResponse{QuizID: quizID})
}

func (a *API) handleDeleteQuiz(w http.ResponseWriter, r *http.Request, quizID int64) {
	if err := a.store.DeleteQuiz(r.Context(), quizID); err != nil {
		a.writeStoreError(w, err)
		return
	}

	a.log.Info("quiz deleted", "quiz_id", quizID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleAttempts drives a full quiz session over a submitted answer list:
// one answer per question, in presentation order.
func (a *API) HandleAttempts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	quizID, err := parseQuizID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	defer r.Body.Close()

	var request attemptRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	// Distinguish "no such quiz" from "quiz with no questions".
	if _, err := a.store.GetQuiz(r.Context(), quizID); err != nil {
		a.writeStoreError(w, err)
		return
	}

	session, err := quiz.StartSession(r.Context(), a.store, quizID)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}

	if session.State() == quiz.StateEmpty {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "quiz has no questions"})
		return
	}
	if len(request.Answers) != session.TotalQuestions() {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "answers must contain one entry per question",
		})
		return
	}

	var summary *quiz.Summary
	for _, answer := range request.Answers {
		summary, err = session.Submit(r.Context(), answer)
		if err != nil {
			break
		}
	}

	resultSaved := true
	if err != nil {
		if !errors.Is(err, quiz.ErrResultNotSaved) {
			a.writeStoreError(w, err)
			return
		}
		// Weak guarantee by design: the score still reaches the caller
		// when the result row could not be written.
		resultSaved = false
		a.log.Warn("result not persisted", "quiz_id", quizID, "error", err)
	}

	writeJSON(w, http.StatusOK, attemptResponse{
		Score:          summary.Score,
		TotalQuestions: summary.TotalQuestions,
		TimeTaken:      summary.TimeTaken,
		Passed:         summary.Passed,
		ResultSaved:    resultSaved,
	})
}

func (a *API) HandleResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	results, err := a.store.ListResults(r.Context())
	if err != nil {
		a.writeStoreError(w, err)
		return
	}

	// Storage order is unspecified; recency first is what the history
	// view wants.
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	response := resultsResponse{
		Results: make([]resultResponse, 0, len(results)),
	}
	for _, item := range results {
		response.Results = append(response.Results, resultResponse{
			ResultID:  item.ID,
			QuizID:    item.QuizID,
			Score:     item.Score,
			TimeTaken: item.TimeTaken,
			CreatedAt: item.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, response)
}
