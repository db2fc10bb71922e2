package usecase

import (
	"context"

	"github.com/qrave1/RoomSignal/internal/domain/events"
	"github.com/qrave1/RoomSignal/internal/domain/models"
	"github.com/qrave1/RoomSignal/internal/domain/output"
)

func (uc *meetingUsecase) ToggleVideo(ctx context.Context, connID string, enabled bool) {
	uc.lock()
	defer uc.unlock(ctx)

	room, p, ok := uc.bound(connID)
	if !ok {
		return
	}

	p.IsVideoEnabled = enabled

	uc.broadcast(room, connID, events.TypeParticipantVideoToggle, events.ParticipantToggleEvent{
		ParticipantID: connID,
		IsEnabled:     enabled,
	})
}

func (uc *meetingUsecase) ToggleAudio(ctx context.Context, connID string, enabled bool) {
	uc.lock()
	defer uc.unlock(ctx)

	room, p, ok := uc.bound(connID)
	if !ok {
		return
	}

	p.IsAudioEnabled = enabled

	uc.broadcast(room, connID, events.TypeParticipantAudioToggle, events.ParticipantToggleEvent{
		ParticipantID: connID,
		IsEnabled:     enabled,
	})
}

// SendChatMessage сохраняет сообщение в истории комнаты и отдаёт его всем, включая автора
func (uc *meetingUsecase) SendChatMessage(ctx context.Context, connID, text string) {
	uc.lock()
	defer uc.unlock(ctx)

	room, p, ok := uc.bound(connID)
	if !ok {
		return
	}

	msg := models.NewChatMessage(p, text, uc.now())
	room.ChatMessages = append(room.ChatMessages, msg)

	uc.broadcast(room, "", events.TypeNewChatMessage, msg)
}

func (uc *meetingUsecase) SendReaction(ctx context.Context, connID, reaction string) {
	uc.lock()
	defer uc.unlock(ctx)

	room, p, ok := uc.bound(connID)
	if !ok {
		return
	}

	uc.broadcast(room, "", events.TypeNewReaction, models.NewReaction(p, reaction, uc.now()))
}

func (uc *meetingUsecase) ToggleRaisedHand(ctx context.Context, connID string, raised bool) {
	uc.lock()
	defer uc.unlock(ctx)

	room, p, ok := uc.bound(connID)
	if !ok {
		return
	}

	p.HasRaisedHand = raised

	if raised {
		room.RaiseHand(p, uc.now())
	} else {
		room.LowerHand(connID)
	}

	uc.broadcast(room, "", events.TypeParticipantHandToggle, events.HandToggleEvent{
		ParticipantID:   connID,
		IsRaised:        raised,
		ParticipantName: p.Name,
	})
}

// GetStats отвечает только спросившему
func (uc *meetingUsecase) GetStats(ctx context.Context, connID string) (output.RoomStats, bool) {
	uc.lock()
	defer uc.unlock(ctx)

	room, _, ok := uc.bound(connID)
	if !ok {
		return output.RoomStats{}, false
	}

	stats := output.RoomStats{
		TotalParticipants: len(room.Participants),
		ChatMessages:      len(room.ChatMessages),
		RaisedHands:       len(room.RaisedHands),
		RoomDuration:      uc.now().Sub(room.CreatedAt).Milliseconds(),
	}

	for _, p := range room.Participants {
		if p.IsVideoEnabled {
			stats.VideoEnabled++
		}
		if p.IsAudioEnabled {
			stats.AudioEnabled++
		}
	}

	uc.send(connID, events.TypeRoomStats, stats)

	return stats, true
}
