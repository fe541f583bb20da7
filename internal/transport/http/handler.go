package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"quiz-practice-service/internal/app"
	"quiz-practice-service/internal/domain"
	"quiz-practice-service/internal/pool"
)

// Handler exposes the quiz use cases as a JSON API. Sessions travel in the
// request/response bodies: the server keeps no authoritative session state.
type Handler struct {
	service *app.QuizService
	files   pool.FileSource
}

func NewHandler(service *app.QuizService, files pool.FileSource) *Handler {
	return &Handler{service: service, files: files}
}

// Router wires the REST routes plus the websocket endpoint.
func (h *Handler) Router(ws *WSHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/api/files", h.listFiles)
	r.Route("/api/quiz", func(r chi.Router) {
		r.Post("/new", h.newQuiz)
		r.Post("/answer", h.recordAnswers)
		r.Post("/check", h.checkAnswer)
		r.Post("/result", h.result)
	})
	if ws != nil {
		r.Get("/ws", ws.ServeWS)
	}
	return r
}

// questionView is the answer-free projection handed to clients: no answer
// index may leak at creation time.
type questionView struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
}

func projectQuestions(questions []domain.ShuffledQuestion) []questionView {
	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, questionView{ID: q.ID, Question: q.Prompt, Choices: q.Choices})
	}
	return views
}

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	names, err := h.files.ListFiles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": names})
}

type newQuizRequest struct {
	Files          []string `json:"files"`
	Count          *int     `json:"count"`
	ShuffleChoices *bool    `json:"shuffleChoices"`
}

func (h *Handler) newQuiz(w http.ResponseWriter, r *http.Request) {
	var req newQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	count := 0
	if req.Count != nil {
		if *req.Count < 1 {
			writeBadRequest(w, "count must be a positive integer")
			return
		}
		count = *req.Count
	}
	shuffleChoices := true
	if req.ShuffleChoices != nil {
		shuffleChoices = *req.ShuffleChoices
	}

	created, err := h.service.CreateQuiz(r.Context(), app.CreateParams{
		Files:          req.Files,
		Count:          count,
		ShuffleChoices: shuffleChoices,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sessionData": created.Session,
		"questions":   projectQuestions(created.Session.Questions),
		"total":       len(created.Session.Questions),
		"fileErrors":  created.FileErrors,
	})
}

type answerRequest struct {
	SessionData *domain.Session `json:"sessionData"`
	Answers     json.RawMessage `json:"answers"`
}

func (h *Handler) recordAnswers(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.SessionData == nil {
		writeBadRequest(w, "missing sessionData")
		return
	}

	answers, ok := decodeAnswers(req.Answers)
	if !ok {
		writeBadRequest(w, "answers must be an answer object or a list of them")
		return
	}

	if err := h.service.RecordAnswers(req.SessionData, answers); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"submittedCount": len(answers),
		"sessionData":    req.SessionData,
	})
}

// decodeAnswers accepts a single answer object or a batch.
func decodeAnswers(raw json.RawMessage) ([]domain.AnswerSubmission, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var batch []domain.AnswerSubmission
	if err := json.Unmarshal(raw, &batch); err == nil {
		return batch, true
	}
	var single domain.AnswerSubmission
	if err := json.Unmarshal(raw, &single); err == nil {
		return []domain.AnswerSubmission{single}, true
	}
	return nil, false
}

type checkRequest struct {
	SessionData   *domain.Session `json:"sessionData"`
	QuestionID    int             `json:"questionId"`
	SelectedIndex int             `json:"selectedIndex"`
}

func (h *Handler) checkAnswer(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.SessionData == nil {
		writeBadRequest(w, "missing sessionData")
		return
	}

	outcome, err := h.service.CheckAnswer(req.SessionData, req.QuestionID, req.SelectedIndex)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

type resultRequest struct {
	SessionData *domain.Session `json:"sessionData"`
}

func (h *Handler) result(w http.ResponseWriter, r *http.Request) {
	var req resultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.SessionData == nil {
		writeBadRequest(w, "missing sessionData")
		return
	}

	result, err := h.service.Result(req.SessionData)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sessionId":      req.SessionData.SessionID,
		"score":          result.Score,
		"correctCount":   result.CorrectCount,
		"totalQuestions": result.TotalQuestions,
		"submitted":      req.SessionData.Submitted,
		"submittedAt":    req.SessionData.SubmittedAt,
		"results":        result.Results,
		"sessionData":    req.SessionData,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"error": message, "code": "bad_request"})
}

// writeError maps sentinel errors to stable codes so clients can decide
// whether to retry, restart the session, or show a specific message.
func writeError(w http.ResponseWriter, err error) {
	code, status := "internal", http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrEmptyPool):
		code, status = "empty_pool", http.StatusNotFound
	case errors.Is(err, domain.ErrSessionExpired):
		code, status = "session_expired", http.StatusGone
	case errors.Is(err, domain.ErrSessionInvalid):
		code, status = "session_invalid", http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionSubmitted):
		code, status = "session_submitted", http.StatusConflict
	case errors.Is(err, domain.ErrQuestionNotInSession):
		code, status = "question_not_in_session", http.StatusBadRequest
	case errors.Is(err, domain.ErrAnswerOutOfRange):
		code, status = "answer_out_of_range", http.StatusBadRequest
	}
	writeJSON(w, status, map[string]any{"error": err.Error(), "code": code})
}
