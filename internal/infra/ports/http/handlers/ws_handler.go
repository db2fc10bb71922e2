package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/qrave1/RoomSignal/internal/application/config"
	"github.com/qrave1/RoomSignal/internal/application/constant"
	"github.com/qrave1/RoomSignal/internal/application/metric"
	"github.com/qrave1/RoomSignal/internal/domain/events"
	"github.com/qrave1/RoomSignal/internal/domain/input"
	"github.com/qrave1/RoomSignal/internal/infra/adapters/memory"
	"github.com/qrave1/RoomSignal/internal/infra/appctx"
	"github.com/qrave1/RoomSignal/internal/usecase"
)

var errUnknownMessageType = errors.New("unknown message type")

type WebSocketHandler struct {
	cfg      config.WebSocketConfig
	upgrader *websocket.Upgrader

	signalingUsecase usecase.SignalingUsecase

	wsConnRepo memory.WebsocketConnectionRepository
}

func NewWebSocketHandler(
	cfg *config.Config,
	signalingUsecase usecase.SignalingUsecase,
	wsConnRepo memory.WebsocketConnectionRepository,
) *WebSocketHandler {
	return &WebSocketHandler{
		cfg: cfg.WebSocket,
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if cfg.Debug || slices.Contains(cfg.AllowedOrigins, "*") {
					return true
				}

				origin := r.Header.Get("Origin")

				// не браузер
				if origin == "" {
					return true
				}

				return slices.Contains(cfg.AllowedOrigins, origin)
			},
		},
		signalingUsecase: signalingUsecase,
		wsConnRepo:       wsConnRepo,
	}
}

func (h *WebSocketHandler) Handle(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// upgrader уже ответил клиенту
		slog.Error(
			"WebSocket upgrade error",
			slog.Any(constant.Error, err),
		)
		return nil
	}
	defer ws.Close()

	connID := uuid.NewString()
	ctx := appctx.WithConnID(c.Request().Context(), connID)

	h.wsConnRepo.Add(connID, ws)
	defer func() {
		h.signalingUsecase.Disconnect(ctx, connID)
		h.wsConnRepo.Remove(connID)
	}()

	ws.SetReadLimit(h.cfg.ReadLimit)

	if err = ws.SetReadDeadline(time.Now().Add(h.cfg.PongWait)); err != nil {
		return nil
	}
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	})

	h.wsConnRepo.Send(connID, events.NewMessage(events.TypeConnected, events.ConnectedEvent{ConnectionID: connID}))

	slog.Info("websocket connected", slog.String(constant.ConnID, connID))

	limiter := rate.NewLimiter(rate.Limit(h.cfg.MessagesPerSecond), h.cfg.MessageBurst)

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			h.handleWebsocketError(ctx, err)
			return nil
		}

		if !limiter.Allow() {
			metric.RecordRateLimited()
			slog.Warn("websocket message rate limited", slog.String(constant.ConnID, connID))
			continue
		}

		var msg events.Message

		if err = json.Unmarshal(raw, &msg); err != nil {
			slog.Warn(
				"unmarshal websocket message",
				slog.Any(constant.Error, err),
				slog.String(constant.ConnID, connID),
			)
			continue
		}

		if err = h.handleMessage(ctx, &msg); err != nil {
			slog.Warn(
				"handle message",
				slog.Any(constant.Error, err),
				slog.String(constant.ConnID, connID),
				slog.String(constant.MessageType, msg.Type),
			)
		}
	}
}

func (h *WebSocketHandler) handleMessage(
	ctx context.Context,
	msg *events.Message,
) error {
	connID, ok := appctx.ConnID(ctx)
	if !ok {
		return fmt.Errorf("get conn id from context")
	}

	label := msg.Type
	defer func() { metric.RecordInboundMessage(label) }()

	switch msg.Type {
	case events.TypeJoinRoom:
		var in input.JoinRoomInput

		if err := unmarshalData(msg, &in); err != nil {
			return err
		}

		if _, _, err := h.signalingUsecase.Join(ctx, connID, in); err != nil {
			h.replyError(connID, err)
		}

	case events.TypeLeaveRoom:
		h.signalingUsecase.Leave(ctx, connID)

	case events.TypeOffer, events.TypeAnswer, events.TypeICECandidate:
		var signal events.SignalEvent

		if err := unmarshalData(msg, &signal); err != nil {
			return err
		}

		h.signalingUsecase.Relay(ctx, msg.Type, connID, signal)

	case events.TypeToggleVideo:
		var toggle events.ToggleEvent

		if err := unmarshalData(msg, &toggle); err != nil {
			return err
		}

		h.signalingUsecase.ToggleVideo(ctx, connID, toggle.IsEnabled)

	case events.TypeToggleAudio:
		var toggle events.ToggleEvent

		if err := unmarshalData(msg, &toggle); err != nil {
			return err
		}

		h.signalingUsecase.ToggleAudio(ctx, connID, toggle.IsEnabled)

	case events.TypeSendChatMessage:
		var chat events.ChatMessageEvent

		if err := unmarshalData(msg, &chat); err != nil {
			return err
		}

		h.signalingUsecase.SendChatMessage(ctx, connID, chat.Message)

	case events.TypeSendReaction:
		var reaction events.ReactionEvent

		if err := unmarshalData(msg, &reaction); err != nil {
			return err
		}

		h.signalingUsecase.SendReaction(ctx, connID, reaction.Reaction)

	case events.TypeToggleRaiseHand:
		var hand events.RaiseHandEvent

		if err := unmarshalData(msg, &hand); err != nil {
			return err
		}

		h.signalingUsecase.ToggleRaisedHand(ctx, connID, hand.IsRaised)

	case events.TypeGetRoomStats:
		h.signalingUsecase.GetStats(ctx, connID)

	case events.TypeAdminRemoveParticipant:
		var remove events.RemoveParticipantEvent

		if err := unmarshalData(msg, &remove); err != nil {
			return err
		}

		if err := h.signalingUsecase.RemoveParticipant(ctx, connID, remove.ParticipantID); err != nil {
			h.replyError(connID, err)
		}

	case events.TypeAdminEndMeeting:
		if err := h.signalingUsecase.EndMeeting(ctx, connID); err != nil {
			h.replyError(connID, err)
		}

	case events.TypePing:
		h.wsConnRepo.Send(connID, events.NewMessage(events.TypePong, events.PongEvent{Timestamp: time.Now()}))

	default:
		label = "unknown"
		return errUnknownMessageType
	}

	return nil
}

// replyError - доменные ошибки уходят только инициатору
func (h *WebSocketHandler) replyError(connID string, err error) {
	slog.Info(
		"request rejected",
		slog.Any(constant.Error, err),
		slog.String(constant.ConnID, connID),
	)

	h.wsConnRepo.Send(connID, events.NewMessage(events.TypeError, events.ErrorEvent{Message: err.Error()}))
}

func unmarshalData(msg *events.Message, v any) error {
	if len(msg.Data) == 0 {
		return fmt.Errorf("empty %s payload", msg.Type)
	}

	if err := json.Unmarshal(msg.Data, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", msg.Type, err)
	}

	return nil
}

func (h *WebSocketHandler) handleWebsocketError(ctx context.Context, err error) {
	connID, _ := appctx.ConnID(ctx)

	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		switch closeErr.Code {
		case websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived:
			slog.Info("websocket disconnected", slog.String(constant.ConnID, connID))
		default:
			slog.Warn(
				"websocket close error",
				slog.Int("code", closeErr.Code),
				slog.String(constant.ConnID, connID),
			)
		}

		return
	}

	slog.Info(
		"websocket read",
		slog.Any(constant.Error, err),
		slog.String(constant.ConnID, connID),
	)
}
