package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"quiz-practice-service/internal/app"
	"quiz-practice-service/internal/domain"
)

// WSHandler runs one quiz attempt over a websocket: the session lives for
// the duration of the connection, answers get immediate practice-mode
// feedback, and "finish" submits and returns the scored result.
type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type wsAnswerPayload struct {
	QuestionID    int `json:"questionId"`
	SelectedIndex int `json:"selectedIndex"`
}

type wsAnswerResult struct {
	QuestionID   int    `json:"questionId"`
	Correct      bool   `json:"correct"`
	CorrectIndex int    `json:"correctIndex"`
	Explanation  string `json:"explanation"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request, creates a session from the query parameters,
// and serves the attempt until the client disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	filesParam := r.URL.Query().Get("files")
	if filesParam == "" {
		http.Error(w, "missing files parameter", http.StatusBadRequest)
		return
	}
	var files []string
	for _, f := range strings.Split(filesParam, ",") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}

	count := 0
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "count must be a positive integer", http.StatusBadRequest)
			return
		}
		count = n
	}
	shuffleChoices := r.URL.Query().Get("shuffleChoices") != "false"

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	created, err := h.service.CreateQuiz(r.Context(), app.CreateParams{
		Files:          files,
		Count:          count,
		ShuffleChoices: shuffleChoices,
	})
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	sess := created.Session

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "quiz", Payload: map[string]any{
		"sessionId": sess.SessionID,
		"questions": projectQuestions(sess.Questions),
		"total":     len(sess.Questions),
	}}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload wsAnswerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			if err := h.service.RecordAnswers(sess, []domain.AnswerSubmission{{
				QuestionID:    payload.QuestionID,
				SelectedIndex: payload.SelectedIndex,
			}}); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			outcome, err := h.service.CheckAnswer(sess, payload.QuestionID, payload.SelectedIndex)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "answerResult", Payload: wsAnswerResult{
				QuestionID:   payload.QuestionID,
				Correct:      outcome.Correct,
				CorrectIndex: outcome.CorrectIndex,
				Explanation:  outcome.Explanation,
			}}
		case "finish":
			result, err := h.service.Result(sess)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "result", Payload: result}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(send)
	<-writerDone
}
