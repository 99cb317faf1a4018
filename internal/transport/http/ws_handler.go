package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"skill-evolve-service/internal/app"
	"skill-evolve-service/internal/domain"
)

type WSHandler struct {
	service  *app.GameService
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		service: service,
		logger:  logger,
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

// answerPayload carries either a single option label or the full set for multi-answer questions.
type answerPayload struct {
	QuestionID string   `json:"questionId"`
	Answer     string   `json:"answer"`
	Answers    []string `json:"answers"`
}

func (p answerPayload) submitted() []string {
	if len(p.Answers) > 0 {
		return p.Answers
	}
	if p.Answer == "" {
		return nil
	}
	return []string{p.Answer}
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type radarPayload struct {
	Radar []int `json:"radar"`
}

type collectionPayload struct {
	Items []domain.CollectionItem `json:"items"`
}

// ServeWS upgrades HTTP requests to websockets and drives one game session per connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := app.StartRequest{
		PlayerID:   q.Get("playerId"),
		PlayerName: q.Get("name"),
		Character:  q.Get("character"),
		BankID:     q.Get("bankId"),
		Stage:      q.Get("stage"),
	}
	if req.BankID == "" || req.Stage == "" {
		http.Error(w, "missing bankId or stage", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := context.WithoutCancel(r.Context())
	started, err := h.service.StartSession(ctx, req)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	playerID, sessionID := started.PlayerID, started.SessionID
	defer h.saveOnDisconnect(ctx, playerID, sessionID)

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debug("ws write error", zap.String("player", playerID), zap.Error(err))
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "started", Payload: started}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		msg, err := h.dispatch(ctx, playerID, sessionID, inbound)
		if err != nil {
			msg = outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
		}
		select {
		case send <- msg:
		case <-writerDone:
		}
	}

	close(send)
	<-writerDone
}

var errUnsupportedMessage = errors.New("unsupported message type")

func (h *WSHandler) dispatch(ctx context.Context, playerID, sessionID string, inbound inboundMessage) (outboundMessage[any], error) {
	switch inbound.Type {
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return outboundMessage[any]{}, errors.New("invalid answer payload")
		}
		result, err := h.service.SubmitAnswer(ctx, playerID, payload.QuestionID, payload.submitted())
		return outboundMessage[any]{Type: "answerResult", Payload: result}, err
	case "endRound":
		summary, err := h.service.EndRound(ctx, playerID)
		return outboundMessage[any]{Type: "roundSummary", Payload: summary}, err
	case "endSession":
		summary, err := h.service.EndSessionIfCurrent(ctx, playerID, sessionID)
		return outboundMessage[any]{Type: "sessionSummary", Payload: summary}, err
	case "radar":
		radar, err := h.service.RadarVector(playerID)
		return outboundMessage[any]{Type: "radar", Payload: radarPayload{Radar: radar}}, err
	case "collection":
		items, err := h.service.UnlockedCollection(playerID)
		return outboundMessage[any]{Type: "collection", Payload: collectionPayload{Items: items}}, err
	case "hatch":
		state, err := h.service.HatchState(playerID)
		return outboundMessage[any]{Type: "hatch", Payload: state}, err
	case "hatchSeen":
		if err := h.service.AcknowledgeHatch(playerID); err != nil {
			return outboundMessage[any]{}, err
		}
		state, err := h.service.HatchState(playerID)
		return outboundMessage[any]{Type: "hatch", Payload: state}, err
	default:
		return outboundMessage[any]{}, errUnsupportedMessage
	}
}

// saveOnDisconnect persists the session this connection started, unless the client ended it
// or a newer connection replaced it.
func (h *WSHandler) saveOnDisconnect(ctx context.Context, playerID, sessionID string) {
	_, err := h.service.EndSessionIfCurrent(ctx, playerID, sessionID)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		h.logger.Error("save on disconnect failed", zap.String("player", playerID), zap.Error(err))
	}
}
