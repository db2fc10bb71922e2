package usecase

import (
	"context"
	"log/slog"

	"github.com/qrave1/RoomSignal/internal/application/constant"
	"github.com/qrave1/RoomSignal/internal/domain/events"
	"github.com/qrave1/RoomSignal/internal/domain/models"
)

// Leave - явный выход по leave-room. Сокет остаётся открытым.
func (uc *meetingUsecase) Leave(ctx context.Context, connID string) {
	uc.lock()
	defer uc.unlock(ctx)

	uc.leaveLocked(connID)
}

// Disconnect - сокет закрылся
func (uc *meetingUsecase) Disconnect(ctx context.Context, connID string) {
	uc.lock()
	defer uc.unlock(ctx)

	uc.leaveLocked(connID)
}

// leaveLocked убирает соединение из его комнаты. Уход администратора завершает встречу для остальных.
func (uc *meetingUsecase) leaveLocked(connID string) {
	binding, ok := uc.sessionRepo.Get(connID)
	if !ok {
		return
	}

	room, ok := uc.roomRepo.Get(binding.RoomID)
	if !ok {
		uc.sessionRepo.Unbind(connID)
		return
	}

	if room.AdminConnID == connID {
		uc.closeRoom(room, connID, models.CloseReasonHostLeft, events.MeetingEndedEvent{
			Reason:  reasonHostLeft,
			Message: "The meeting has ended because the host left.",
			EndedBy: binding.Name,
		})
		return
	}

	room.RemoveParticipant(connID)

	uc.broadcast(room, connID, events.TypeUserLeft, events.UserLeftEvent{ParticipantID: connID})
	uc.broadcastCount(room)

	slog.Info(
		"participant left",
		slog.String(constant.ConnID, connID),
		slog.String(constant.RoomID, room.ID),
		slog.String(constant.Participant, binding.Name),
	)

	if len(room.Participants) == 0 {
		uc.roomRepo.Delete(room.ID)
		uc.closed(room, models.CloseReasonEmpty)
	}

	uc.sessionRepo.Unbind(connID)
}
