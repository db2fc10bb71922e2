package usecase

import (
	"context"
	"log/slog"

	"github.com/qrave1/RoomSignal/internal/application/constant"
	"github.com/qrave1/RoomSignal/internal/domain"
	"github.com/qrave1/RoomSignal/internal/domain/events"
	"github.com/qrave1/RoomSignal/internal/domain/input"
	"github.com/qrave1/RoomSignal/internal/domain/models"
	"github.com/qrave1/RoomSignal/internal/domain/output"
	"github.com/qrave1/RoomSignal/internal/infra/adapters/memory"
)

// Join пускает соединение в комнату. room-joined уходит самому соединению,
// остальным user-joined, всей комнате новое число участников.
func (uc *meetingUsecase) Join(ctx context.Context, connID string, in input.JoinRoomInput) (output.RoomSnapshot, bool, error) {
	uc.lock()
	defer uc.unlock(ctx)

	room, ok := uc.roomRepo.Get(in.RoomID)
	if !ok {
		return output.RoomSnapshot{}, false, domain.ErrRoomNotFound
	}

	if room.Passcode != in.Passcode {
		return output.RoomSnapshot{}, false, domain.ErrInvalidPasscode
	}

	// Повторный join в ту же комнату ничего не меняет
	if _, ok := room.Participant(connID); ok {
		snapshot := output.NewRoomSnapshot(room, connID)
		isAdmin := room.AdminConnID == connID

		uc.send(connID, events.TypeRoomJoined, events.RoomJoinedEvent{Room: snapshot, IsAdmin: isAdmin})

		return snapshot, isAdmin, nil
	}

	if room.NameTaken(in.ParticipantName, connID) {
		return output.RoomSnapshot{}, false, domain.ErrNameTaken
	}

	if binding, ok := uc.sessionRepo.Get(connID); ok && binding.RoomID != room.ID {
		slog.Info(
			"connection switches room",
			slog.String(constant.ConnID, connID),
			slog.String(constant.RoomID, binding.RoomID),
		)
		uc.leaveLocked(connID)
	}

	isAdmin := false
	if in.IsHost && room.AdminConnID == "" {
		room.AdminConnID = connID
		isAdmin = true
	}

	participant := models.NewParticipant(connID, in.ParticipantName, in.ParticipantEmail, isAdmin, uc.now())

	room.AddParticipant(participant)
	uc.sessionRepo.Bind(connID, memory.Binding{RoomID: room.ID, Name: participant.Name})

	snapshot := output.NewRoomSnapshot(room, connID)

	uc.send(connID, events.TypeRoomJoined, events.RoomJoinedEvent{Room: snapshot, IsAdmin: isAdmin})
	uc.broadcast(room, connID, events.TypeUserJoined, *participant)
	uc.broadcastCount(room)

	slog.Info(
		"participant joined",
		slog.String(constant.ConnID, connID),
		slog.String(constant.RoomID, room.ID),
		slog.String(constant.Participant, participant.Name),
		slog.Bool("is_admin", isAdmin),
	)

	return snapshot, isAdmin, nil
}
