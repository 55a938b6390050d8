package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"ecodesafios-backend/internal/app"
	"ecodesafios-backend/internal/domain"
	"ecodesafios-backend/internal/session"
)

// WSHandler drives an interactive quiz session over a websocket: the server
// holds the state machine, the client sends navigation and answer events.
type WSHandler struct {
	quizzes  *app.QuizService
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(quizzes *app.QuizService, log *zap.Logger) *WSHandler {
	return &WSHandler{
		quizzes: quizzes,
		log:     log,
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

type selectPayload struct {
	Index  int `json:"index"`
	Option int `json:"option"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// questionView is the per-question snapshot pushed after every transition.
type questionView struct {
	QuizID   int      `json:"quizId"`
	Title    string   `json:"title"`
	Index    int      `json:"index"`
	Total    int      `json:"total"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Selected int      `json:"selected"`
	Answered int      `json:"answered"`
	State    string   `json:"state"`
}

// ServeWS runs one quiz session per connection. The session state machine
// enforces the transition rules; this handler only translates messages.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	quiz, err := h.quizzes.RandomQuiz(r.Context())
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	sess, err := session.New(quiz)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	grade := func(ctx context.Context, sub domain.QuizSubmission) (domain.QuizResult, error) {
		return h.quizzes.Submit(ctx, userID, sub)
	}

	h.sendQuestion(conn, sess)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid select payload")
				continue
			}
			if err := sess.SelectAnswer(payload.Index, payload.Option); err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			h.sendQuestion(conn, sess)
		case "advance":
			if err := sess.Advance(); err != nil && !errors.Is(err, session.ErrAtLastQuestion) {
				h.sendError(conn, err.Error())
				continue
			}
			h.sendQuestion(conn, sess)
		case "retreat":
			if err := sess.Retreat(); err != nil && !errors.Is(err, session.ErrAtFirstQuestion) {
				h.sendError(conn, err.Error())
				continue
			}
			h.sendQuestion(conn, sess)
		case "submit":
			result, err := sess.Submit(r.Context(), grade)
			if err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			_ = conn.WriteJSON(outboundMessage[domain.QuizResult]{Type: "result", Payload: result})
		case "reset":
			fresh, err := h.quizzes.RandomQuiz(r.Context())
			if err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			if err := sess.Reset(fresh); err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			h.sendQuestion(conn, sess)
		default:
			h.sendError(conn, "unsupported message type")
		}
	}
}

func (h *WSHandler) sendQuestion(conn *websocket.Conn, sess *session.Session) {
	index, question := sess.Current()
	quiz := sess.Quiz()
	view := questionView{
		QuizID:   quiz.ID,
		Title:    quiz.Title,
		Index:    index,
		Total:    len(quiz.Questions),
		Question: question.Question,
		Options:  question.Options,
		Selected: sess.Answer(index),
		Answered: sess.AnsweredCount(),
		State:    sess.State().String(),
	}
	if err := conn.WriteJSON(outboundMessage[questionView]{Type: "question", Payload: view}); err != nil {
		h.log.Warn("ws write failed", zap.Error(err))
	}
}

func (h *WSHandler) sendError(conn *websocket.Conn, message string) {
	_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: message}})
}
