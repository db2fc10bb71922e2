package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qrave1/RoomSignal/internal/application/constant"
	"github.com/qrave1/RoomSignal/internal/domain"
	"github.com/qrave1/RoomSignal/internal/domain/input"
	"github.com/qrave1/RoomSignal/internal/domain/models"
	"github.com/qrave1/RoomSignal/internal/domain/output"
)

type RoomUsecase interface {
	CreateRoom(ctx context.Context, in *input.CreateRoomInput) (*models.Room, error)
	ListRooms(ctx context.Context) []output.RoomSummary
	// VerifyPasscode проверяет код до открытия websocket. Ничего не меняет.
	VerifyPasscode(ctx context.Context, roomID, passcode string) error
}

func (uc *meetingUsecase) CreateRoom(ctx context.Context, in *input.CreateRoomInput) (*models.Room, error) {
	if in.RoomID == "" {
		return nil, fmt.Errorf("room id is required")
	}

	uc.lock()
	defer uc.unlock(ctx)

	room := models.NewRoom(in, uc.now())

	if err := uc.roomRepo.Create(room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	uc.record(room.ID, models.JournalRoomOpened, "", 0)

	slog.Info("room created", slog.String(constant.RoomID, room.ID))

	return room, nil
}

func (uc *meetingUsecase) ListRooms(ctx context.Context) []output.RoomSummary {
	uc.lock()
	defer uc.unlock(ctx)

	rooms := uc.roomRepo.List()
	summaries := make([]output.RoomSummary, 0, len(rooms))

	for _, room := range rooms {
		summaries = append(summaries, output.RoomSummary{
			ID:               room.ID,
			CreatorName:      room.CreatorName,
			MeetingDate:      room.MeetingDate,
			MeetingTime:      room.MeetingTime,
			ParticipantCount: len(room.Participants),
		})
	}

	return summaries
}

func (uc *meetingUsecase) VerifyPasscode(ctx context.Context, roomID, passcode string) error {
	uc.lock()
	defer uc.unlock(ctx)

	room, ok := uc.roomRepo.Get(roomID)
	if !ok {
		return domain.ErrRoomNotFound
	}

	if room.Passcode != passcode {
		return domain.ErrInvalidPasscode
	}

	return nil
}
