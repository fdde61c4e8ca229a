package httpapi

import "time"

type questionPayload struct {
	ID            int64    `json:"id,omitempty"`
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options"`
}

type saveQuizRequest struct {
	Title     string            `json:"title"`
	Questions []questionPayload `json:"questions"`
}

type quizItemResponse struct {
	QuizID int64  `json:"quiz_id"`
	Title  string `json:"title"`
}

type quizListResponse struct {
	Quizzes []quizItemResponse `json:"quizzes"`
}

type quizDetailResponse struct {
	QuizID    int64             `json:"quiz_id"`
	Title     string            `json:"title"`
	Questions []questionPayload `json:"questions"`
}

type createQuizResponse struct {
	QuizID int64 `json:"quiz_id"`
}

type attemptRequest struct {
	Answers []string `json:"answers"`
}

type attemptResponse struct {
	Score          int  `json:"score"`
	TotalQuestions int  `json:"total_questions"`
	TimeTaken      int  `json:"time_taken"`
	Passed         bool `json:"passed"`
	ResultSaved    bool `json:"result_saved"`
}

type resultResponse struct {
	ResultID  int64     `json:"result_id"`
	QuizID    int64     `json:"quiz_id"`
	Score     int       `json:"score"`
	TimeTaken int       `json:"time_taken"`
	CreatedAt time.Time `json:"created_at"`
}

type resultsResponse struct {
	Results []resultResponse `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}
