package usecase

import (
	"context"

	"github.com/qrave1/RoomSignal/internal/domain/events"
	"github.com/qrave1/RoomSignal/internal/domain/input"
	"github.com/qrave1/RoomSignal/internal/domain/output"
)

// SignalingUsecase - всё, что приходит по websocket.
// Операции от непривязанного соединения молча игнорируются, кроме Join и админских.
type SignalingUsecase interface {
	Join(ctx context.Context, connID string, in input.JoinRoomInput) (output.RoomSnapshot, bool, error)
	Leave(ctx context.Context, connID string)
	Disconnect(ctx context.Context, connID string)

	Relay(ctx context.Context, kind, connID string, signal events.SignalEvent)

	ToggleVideo(ctx context.Context, connID string, enabled bool)
	ToggleAudio(ctx context.Context, connID string, enabled bool)
	SendChatMessage(ctx context.Context, connID, text string)
	SendReaction(ctx context.Context, connID, reaction string)
	ToggleRaisedHand(ctx context.Context, connID string, raised bool)
	GetStats(ctx context.Context, connID string) (output.RoomStats, bool)

	RemoveParticipant(ctx context.Context, connID, targetID string) error
	EndMeeting(ctx context.Context, connID string) error
}
