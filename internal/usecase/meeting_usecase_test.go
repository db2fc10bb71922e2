package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/qrave1/RoomSignal/internal/domain"
	"github.com/qrave1/RoomSignal/internal/domain/events"
	"github.com/qrave1/RoomSignal/internal/domain/input"
	"github.com/qrave1/RoomSignal/internal/domain/models"
)

// Полный сценарий: хост, участник, дубль имени, неверный код, удаление, уход хоста
func TestMeetingScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createRoom(t, "R1", "abc")

	snapshot, isAdmin, err := f.uc.Join(ctx, "alice", input.JoinRoomInput{
		RoomID: "R1", Passcode: "abc", ParticipantName: "Alice", IsHost: true,
	})
	if err != nil {
		t.Fatalf("alice join: %v", err)
	}
	if !isAdmin {
		t.Fatalf("alice must become admin")
	}
	if len(snapshot.Participants) != 0 {
		t.Fatalf("alice snapshot participants=%d, want 0", len(snapshot.Participants))
	}

	f.transport.reset()

	if f.join(t, "bob", "R1", "abc", "Bob", false) {
		t.Fatalf("bob must not be admin")
	}

	joined := f.transport.to("alice", events.TypeUserJoined)
	if len(joined) != 1 {
		t.Fatalf("alice user-joined=%d, want 1", len(joined))
	}
	if p := decode[models.Participant](t, joined[0]); p.Name != "Bob" || p.ConnID != "bob" {
		t.Fatalf("user-joined=%+v, want Bob", p)
	}

	for _, conn := range []string{"alice", "bob"} {
		counts := f.transport.to(conn, events.TypeParticipantCountUpdated)
		if len(counts) != 1 {
			t.Fatalf("%s count updates=%d, want 1", conn, len(counts))
		}
		if c := decode[events.ParticipantCountEvent](t, counts[0]); c.Count != 2 {
			t.Fatalf("%s count=%d, want 2", conn, c.Count)
		}
	}

	_, _, err = f.uc.Join(ctx, "bob2", input.JoinRoomInput{RoomID: "R1", Passcode: "abc", ParticipantName: "Bob"})
	if !errors.Is(err, domain.ErrNameTaken) {
		t.Fatalf("err=%v, want %v", err, domain.ErrNameTaken)
	}

	_, _, err = f.uc.Join(ctx, "eve", input.JoinRoomInput{RoomID: "R1", Passcode: "nope", ParticipantName: "Eve"})
	if !errors.Is(err, domain.ErrInvalidPasscode) {
		t.Fatalf("err=%v, want %v", err, domain.ErrInvalidPasscode)
	}

	room, _ := f.rooms.Get("R1")
	if len(room.Participants) != 2 {
		t.Fatalf("participants=%d, want 2", len(room.Participants))
	}

	f.transport.reset()

	if err := f.uc.RemoveParticipant(ctx, "alice", "bob"); err != nil {
		t.Fatalf("remove bob: %v", err)
	}

	if got := f.transport.to("bob", events.TypeForceDisconnect); len(got) != 1 {
		t.Fatalf("bob force-disconnect=%d, want 1", len(got))
	}

	removed := f.transport.to("alice", events.TypeParticipantRemoved)
	if len(removed) != 1 {
		t.Fatalf("alice participant-removed=%d, want 1", len(removed))
	}
	if ev := decode[events.ParticipantRemovedEvent](t, removed[0]); ev.ParticipantID != "bob" || ev.RemovedBy != "Alice" {
		t.Fatalf("participant-removed=%+v", ev)
	}

	counts := f.transport.to("alice", events.TypeParticipantCountUpdated)
	if c := decode[events.ParticipantCountEvent](t, counts[len(counts)-1]); c.Count != 1 {
		t.Fatalf("count=%d, want 1", c.Count)
	}

	if len(f.transport.disconnects) != 1 || f.transport.disconnects[0].connID != "bob" {
		t.Fatalf("disconnects=%+v, want bob", f.transport.disconnects)
	}

	f.uc.Disconnect(ctx, "alice")

	if _, ok := f.rooms.Get("R1"); ok {
		t.Fatalf("room R1 must be deleted after host disconnect")
	}
	if f.sessions.Count() != 0 {
		t.Fatalf("bindings=%d, want 0", f.sessions.Count())
	}
}

func TestJournalWrittenAfterRoomLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createRoom(t, "R1", "abc")
	f.join(t, "bob", "R1", "abc", "Bob", false)
	f.uc.Leave(ctx, "bob")

	if len(f.journal.entries) != 2 {
		t.Fatalf("journal entries=%d, want 2", len(f.journal.entries))
	}

	opened, closed := f.journal.entries[0], f.journal.entries[1]
	if opened.Kind != models.JournalRoomOpened || closed.Kind != models.JournalRoomClosed {
		t.Fatalf("kinds=%s,%s", opened.Kind, closed.Kind)
	}
	if closed.Reason != models.CloseReasonEmpty {
		t.Fatalf("reason=%q, want %q", closed.Reason, models.CloseReasonEmpty)
	}
}

func TestNilJournalIsAllowed(t *testing.T) {
	f := newFixture(t)
	f.uc.journal = nil

	f.createRoom(t, "R1", "abc")
	f.join(t, "bob", "R1", "abc", "Bob", false)
	f.uc.Disconnect(context.Background(), "bob")

	if f.rooms.Count() != 0 {
		t.Fatalf("rooms=%d, want 0", f.rooms.Count())
	}
}

// Параллельные входы хостов вперемешку с событиями комнаты: админ один, дублей нет
func TestConcurrentJoinsKeepSingleAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createRoom(t, "R1", "abc")

	const n = 50

	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			connID := fmt.Sprintf("conn-%d", i)

			_, _, err := f.uc.Join(ctx, connID, input.JoinRoomInput{
				RoomID:          "R1",
				Passcode:        "abc",
				ParticipantName: fmt.Sprintf("P-%d", i),
				IsHost:          true,
			})
			if err != nil {
				errs <- err
				return
			}

			f.uc.ToggleVideo(ctx, connID, i%2 == 0)
			f.uc.ToggleAudio(ctx, connID, i%3 == 0)
			f.uc.SendChatMessage(ctx, connID, "hi")
			f.uc.ToggleRaisedHand(ctx, connID, true)
			f.uc.GetStats(ctx, connID)
			f.uc.ListRooms(ctx)
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("join: %v", err)
	}

	room, ok := f.rooms.Get("R1")
	if !ok {
		t.Fatalf("room R1 is gone")
	}

	if len(room.Participants) != n {
		t.Fatalf("participants=%d, want %d", len(room.Participants), n)
	}
	if len(room.ChatMessages) != n {
		t.Fatalf("chat=%d, want %d", len(room.ChatMessages), n)
	}

	seen := make(map[string]bool, n)
	admins := 0

	for _, p := range room.Participants {
		if seen[p.ConnID] {
			t.Fatalf("duplicate participant %s", p.ConnID)
		}
		seen[p.ConnID] = true

		if p.IsAdmin {
			admins++
			if p.ConnID != room.AdminConnID {
				t.Fatalf("admin flag on %s, room admin %s", p.ConnID, room.AdminConnID)
			}
		}
	}

	if admins != 1 {
		t.Fatalf("admins=%d, want 1", admins)
	}

	// все кроме админа уходят одновременно
	for _, p := range room.Others(room.AdminConnID) {
		wg.Add(1)

		go func(connID string) {
			defer wg.Done()

			f.uc.Disconnect(ctx, connID)
			f.uc.GetStats(ctx, room.AdminConnID)
		}(p.ConnID)
	}

	wg.Wait()

	if len(room.Participants) != 1 || room.Participants[0].ConnID != room.AdminConnID {
		t.Fatalf("participants=%d, want only admin", len(room.Participants))
	}
	if len(room.RaisedHands) != 1 {
		t.Fatalf("raised hands=%d, want 1", len(room.RaisedHands))
	}
	if f.sessions.Count() != 1 {
		t.Fatalf("bindings=%d, want 1", f.sessions.Count())
	}
}
