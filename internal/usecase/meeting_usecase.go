package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/qrave1/RoomSignal/internal/application/config"
	"github.com/qrave1/RoomSignal/internal/application/constant"
	"github.com/qrave1/RoomSignal/internal/application/metric"
	"github.com/qrave1/RoomSignal/internal/domain/events"
	"github.com/qrave1/RoomSignal/internal/domain/models"
	"github.com/qrave1/RoomSignal/internal/infra/adapters/memory"
)

// Transport - доставка сообщений до соединений. Send не блокирует и не гарантирует доставку.
type Transport interface {
	Send(connID string, msg events.Message)
	Disconnect(connID string, after time.Duration)
}

// MeetingJournal - куда пишем историю встреч. nil - журнал выключен.
type MeetingJournal interface {
	Record(ctx context.Context, entry *models.JournalEntry) error
}

// MeetingUsecase - комнаты для HTTP и сигналинг для websocket над общим состоянием
type MeetingUsecase interface {
	RoomUsecase
	SignalingUsecase
}

// meetingUsecase реализует RoomUsecase и SignalingUsecase.
// Все операции над комнатами идут под одним мьютексом: проверка, изменение и рассылка атомарны.
type meetingUsecase struct {
	mu sync.Mutex

	cfg config.MeetingConfig

	roomRepo    memory.RoomRepository
	sessionRepo memory.SessionRepository
	transport   Transport
	journal     MeetingJournal

	// pending копится под мьютексом и пишется в журнал после его освобождения
	pending []*models.JournalEntry

	now func() time.Time
}

func NewMeetingUsecase(
	cfg config.MeetingConfig,
	roomRepo memory.RoomRepository,
	sessionRepo memory.SessionRepository,
	transport Transport,
	journal MeetingJournal,
) MeetingUsecase {
	return &meetingUsecase{
		cfg:         cfg,
		roomRepo:    roomRepo,
		sessionRepo: sessionRepo,
		transport:   transport,
		journal:     journal,
		now:         time.Now,
	}
}

func (uc *meetingUsecase) lock() {
	uc.mu.Lock()
}

// unlock отпускает мьютекс, обновляет метрики и сбрасывает журнал
func (uc *meetingUsecase) unlock(ctx context.Context) {
	pending := uc.pending
	uc.pending = nil

	metric.SetActiveRooms(uc.roomRepo.Count())
	metric.SetActiveParticipants(uc.sessionRepo.Count())

	uc.mu.Unlock()

	if uc.journal == nil || len(pending) == 0 {
		return
	}

	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	for _, entry := range pending {
		if err := uc.journal.Record(jctx, entry); err != nil {
			slog.Error(
				"record meeting journal",
				slog.Any(constant.Error, err),
				slog.String(constant.RoomID, entry.RoomID),
			)
		}
	}
}

func (uc *meetingUsecase) record(roomID string, kind models.JournalKind, reason string, participants int) {
	uc.pending = append(uc.pending, models.NewJournalEntry(roomID, kind, reason, participants, uc.now()))
}

// bound возвращает комнату и участника для соединения. Вызывать под мьютексом.
func (uc *meetingUsecase) bound(connID string) (*models.Room, *models.Participant, bool) {
	binding, ok := uc.sessionRepo.Get(connID)
	if !ok {
		return nil, nil, false
	}

	room, ok := uc.roomRepo.Get(binding.RoomID)
	if !ok {
		return nil, nil, false
	}

	p, ok := room.Participant(connID)
	if !ok {
		return nil, nil, false
	}

	return room, p, true
}

func (uc *meetingUsecase) send(connID, kind string, payload any) {
	uc.transport.Send(connID, events.NewMessage(kind, payload))
}

// broadcast рассылает всем участникам комнаты кроме except (пустой except - всем)
func (uc *meetingUsecase) broadcast(room *models.Room, except, kind string, payload any) {
	msg := events.NewMessage(kind, payload)

	for _, p := range room.Participants {
		if p.ConnID == except {
			continue
		}

		uc.transport.Send(p.ConnID, msg)
	}
}

func (uc *meetingUsecase) broadcastCount(room *models.Room) {
	uc.broadcast(room, "", events.TypeParticipantCountUpdated, events.ParticipantCountEvent{Count: len(room.Participants)})
}
