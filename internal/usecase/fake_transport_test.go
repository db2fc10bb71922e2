package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/qrave1/RoomSignal/internal/application/config"
	"github.com/qrave1/RoomSignal/internal/domain/events"
	"github.com/qrave1/RoomSignal/internal/domain/input"
	"github.com/qrave1/RoomSignal/internal/domain/models"
	"github.com/qrave1/RoomSignal/internal/infra/adapters/memory"
)

type sent struct {
	to  string
	msg events.Message
}

type teardown struct {
	connID string
	after  time.Duration
}

// recordingTransport запоминает всё, что usecase пытался отправить
type recordingTransport struct {
	mu          sync.Mutex
	sent        []sent
	disconnects []teardown
}

func (r *recordingTransport) Send(connID string, msg events.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sent = append(r.sent, sent{to: connID, msg: msg})
}

func (r *recordingTransport) Disconnect(connID string, after time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.disconnects = append(r.disconnects, teardown{connID: connID, after: after})
}

func (r *recordingTransport) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sent = nil
	r.disconnects = nil
}

// to отдаёт сообщения для connID нужного типа
func (r *recordingTransport) to(connID, kind string) []events.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []events.Message
	for _, s := range r.sent {
		if s.to == connID && s.msg.Type == kind {
			out = append(out, s.msg)
		}
	}

	return out
}

func (r *recordingTransport) kinds(connID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for _, s := range r.sent {
		if s.to == connID {
			out = append(out, s.msg.Type)
		}
	}

	return out
}

type memoryJournal struct {
	mu      sync.Mutex
	entries []*models.JournalEntry
}

func (j *memoryJournal) Record(_ context.Context, entry *models.JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries = append(j.entries, entry)

	return nil
}

type fixture struct {
	uc        *meetingUsecase
	transport *recordingTransport
	journal   *memoryJournal
	rooms     memory.RoomRepository
	sessions  memory.SessionRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	transport := &recordingTransport{}
	journal := &memoryJournal{}
	rooms := memory.NewRoomRepository()
	sessions := memory.NewSessionRepository()

	uc := NewMeetingUsecase(
		config.MeetingConfig{RemovalGrace: time.Second, EndMeetingGrace: 2 * time.Second},
		rooms,
		sessions,
		transport,
		journal,
	).(*meetingUsecase)

	return &fixture{uc: uc, transport: transport, journal: journal, rooms: rooms, sessions: sessions}
}

func (f *fixture) createRoom(t *testing.T, roomID, passcode string) {
	t.Helper()

	_, err := f.uc.CreateRoom(context.Background(), &input.CreateRoomInput{
		RoomID:      roomID,
		Passcode:    passcode,
		CreatorName: "Alice",
	})
	if err != nil {
		t.Fatalf("create room %s: %v", roomID, err)
	}
}

func (f *fixture) join(t *testing.T, connID, roomID, passcode, name string, host bool) bool {
	t.Helper()

	_, isAdmin, err := f.uc.Join(context.Background(), connID, input.JoinRoomInput{
		RoomID:          roomID,
		Passcode:        passcode,
		ParticipantName: name,
		IsHost:          host,
	})
	if err != nil {
		t.Fatalf("join %s as %s: %v", roomID, name, err)
	}

	return isAdmin
}

func decode[T any](t *testing.T, msg events.Message) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(msg.Data, &v); err != nil {
		t.Fatalf("decode %s: %v", msg.Type, err)
	}

	return v
}

func joinInput(roomID, passcode, name string) input.JoinRoomInput {
	return input.JoinRoomInput{RoomID: roomID, Passcode: passcode, ParticipantName: name}
}
