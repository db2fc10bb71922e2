package usecase

import (
	"context"
	"log/slog"

	"github.com/qrave1/RoomSignal/internal/application/constant"
	"github.com/qrave1/RoomSignal/internal/application/metric"
	"github.com/qrave1/RoomSignal/internal/domain"
	"github.com/qrave1/RoomSignal/internal/domain/events"
	"github.com/qrave1/RoomSignal/internal/domain/models"
)

const (
	reasonRemovedByAdmin = "Removed by admin"
	reasonHostEnded      = "Meeting ended by host"
	reasonHostLeft       = "Admin left the meeting"
)

// admin возвращает комнату, если connID её администратор
func (uc *meetingUsecase) admin(connID string) (*models.Room, *models.Participant, error) {
	room, p, ok := uc.bound(connID)
	if !ok || room.AdminConnID != connID {
		return nil, nil, domain.ErrNotAuthorized
	}

	return room, p, nil
}

// RemoveParticipant выкидывает участника. Себя администратор так удалить не может.
func (uc *meetingUsecase) RemoveParticipant(ctx context.Context, connID, targetID string) error {
	uc.lock()
	defer uc.unlock(ctx)

	room, admin, err := uc.admin(connID)
	if err != nil {
		return err
	}

	if targetID == connID {
		return nil
	}

	target, ok := room.RemoveParticipant(targetID)
	if !ok {
		return nil
	}

	uc.sessionRepo.Unbind(targetID)

	uc.send(targetID, events.TypeForceDisconnect, events.ForceDisconnectEvent{
		Reason:  reasonRemovedByAdmin,
		Message: "You have been removed from the meeting by the host.",
	})

	uc.broadcast(room, "", events.TypeParticipantRemoved, events.ParticipantRemovedEvent{
		ParticipantID:   targetID,
		ParticipantName: target.Name,
		RemovedBy:       admin.Name,
	})
	uc.broadcastCount(room)

	uc.transport.Disconnect(targetID, uc.cfg.RemovalGrace)

	slog.Info(
		"participant removed by admin",
		slog.String(constant.RoomID, room.ID),
		slog.String(constant.ConnID, connID),
		slog.String(constant.TargetID, targetID),
	)

	return nil
}

func (uc *meetingUsecase) EndMeeting(ctx context.Context, connID string) error {
	uc.lock()
	defer uc.unlock(ctx)

	room, admin, err := uc.admin(connID)
	if err != nil {
		return err
	}

	uc.closeRoom(room, "", models.CloseReasonHostEnded, events.MeetingEndedEvent{
		Reason:  reasonHostEnded,
		Message: "The meeting has been ended by the host.",
		EndedBy: admin.Name,
	})

	return nil
}

// closeRoom рассылает meeting-ended всем кроме except, снимает привязки, удаляет комнату
// и закрывает сокеты участников после паузы. Сокет except не трогаем.
func (uc *meetingUsecase) closeRoom(room *models.Room, except, reason string, ev events.MeetingEndedEvent) {
	uc.broadcast(room, except, events.TypeMeetingEnded, ev)

	for _, connID := range room.ConnIDs() {
		uc.sessionRepo.Unbind(connID)

		if connID != except {
			uc.transport.Disconnect(connID, uc.cfg.EndMeetingGrace)
		}
	}

	uc.roomRepo.Delete(room.ID)
	uc.closed(room, reason)
}

func (uc *meetingUsecase) closed(room *models.Room, reason string) {
	uc.record(room.ID, models.JournalRoomClosed, reason, len(room.Participants))
	metric.RecordMeetingClosed(reason)

	slog.Info(
		"room closed",
		slog.String(constant.RoomID, room.ID),
		slog.String(constant.Reason, reason),
		slog.Int(constant.Count, len(room.Participants)),
	)
}
