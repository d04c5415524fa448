package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"python-quiz/internal/app"
	"python-quiz/internal/loop"
)

// WSHandler serves the quiz to a single remote renderer at a time. Each
// connection gets its own event loop and controller.
type WSHandler struct {
	quizzes  app.QuizRepository
	quizID   string
	seconds  int
	clock    clockwork.Clock
	upgrader websocket.Upgrader
	active   atomic.Bool
}

func NewWSHandler(quizzes app.QuizRepository, quizID string, secondsPerQuestion int, clock clockwork.Clock) *WSHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &WSHandler{
		quizzes: quizzes,
		quizID:  quizID,
		seconds: secondsPerQuestion,
		clock:   clock,
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

type startPayload struct {
	Name string `json:"name"`
}

type answerPayload struct {
	Choice string `json:"choice"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

var errUnsupported = errors.New("unsupported message type")

// ServeWS upgrades HTTP requests to websockets and wires them into the controller.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	if !h.active.CompareAndSwap(false, true) {
		http.Error(w, "a quiz is already in progress", http.StatusConflict)
		return
	}
	defer h.active.Store(false)

	quiz, err := app.LoadQuiz(r.Context(), h.quizzes, h.quizID)
	if err != nil {
		log.Error().Err(err).Str("quiz_id", h.quizID).Msg("cannot serve quiz")
		http.Error(w, "quiz unavailable", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ev := loop.New(h.clock)
	ctrl := app.NewController(quiz, ev, h.seconds)

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})
	loopDone := make(chan struct{})

	push := func(msg outboundMessage[any]) {
		select {
		case send <- msg:
			return
		case <-writerDone:
			return
		default:
		}
		// views are full snapshots, so a stale one can be dropped
		select {
		case <-send:
		default:
		}
		select {
		case send <- msg:
		case <-writerDone:
		}
	}

	ctrl.OnRender(func(v app.View) {
		push(outboundMessage[any]{Type: "view", Payload: v})
	})
	ctrl.OnExit(ev.Stop)

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Warn().Err(err).Msg("ws write error")
				return
			}
		}
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
	}()

	go func() {
		defer close(loopDone)
		_ = ev.Run(ctx)
	}()

	// unblock the reader once the controller exits
	go func() {
		select {
		case <-ev.Done():
			_ = conn.SetReadDeadline(time.Now())
		case <-ctx.Done():
		}
	}()

	ev.Post(ctrl.Show)
	log.Info().Str("remote", r.RemoteAddr).Str("quiz_id", quiz.ID).Msg("ws client connected")

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		action, err := decodeAction(inbound)
		if err != nil {
			push(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
			continue
		}
		if !ev.Post(func() {
			if err := action(ctrl); err != nil {
				push(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
			}
		}) {
			break
		}
		if inbound.Type == "exit" {
			break
		}
	}

	ev.Stop()
	<-loopDone
	// the loop has stopped, so the controller is no longer shared
	ctrl.Exit()
	close(send)
	<-writerDone
	log.Info().Str("remote", r.RemoteAddr).Msg("ws client disconnected")
}

func decodeAction(in inboundMessage) (func(*app.Controller) error, error) {
	switch in.Type {
	case "start":
		var payload startPayload
		if err := json.Unmarshal(in.Payload, &payload); err != nil {
			return nil, errors.New("invalid start payload")
		}
		return func(c *app.Controller) error { return c.StartQuiz(payload.Name) }, nil
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(in.Payload, &payload); err != nil {
			return nil, errors.New("invalid answer payload")
		}
		return func(c *app.Controller) error { return c.SubmitAnswer(payload.Choice) }, nil
	case "restart":
		return func(c *app.Controller) error { return c.Restart() }, nil
	case "exit":
		return func(c *app.Controller) error {
			c.Exit()
			return nil
		}, nil
	}
	return nil, errUnsupported
}
