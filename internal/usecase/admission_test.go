package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/qrave1/RoomSignal/internal/domain"
	"github.com/qrave1/RoomSignal/internal/domain/events"
	"github.com/qrave1/RoomSignal/internal/domain/input"
)

func TestJoinUnknownRoom(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.uc.Join(context.Background(), "c1", input.JoinRoomInput{RoomID: "nope", ParticipantName: "A"})
	if !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("err=%v, want %v", err, domain.ErrRoomNotFound)
	}

	if f.sessions.Count() != 0 {
		t.Fatalf("failed join must not bind connection")
	}
}

func TestJoinSameConnectionIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.createRoom(t, "R1", "abc")

	f.join(t, "alice", "R1", "abc", "Alice", true)
	f.join(t, "bob", "R1", "abc", "Bob", false)
	f.transport.reset()

	snapshot, isAdmin, err := f.uc.Join(context.Background(), "bob", input.JoinRoomInput{
		RoomID: "R1", Passcode: "abc", ParticipantName: "Bob",
	})
	if err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	if isAdmin {
		t.Fatalf("rejoin must keep bob a participant")
	}
	if len(snapshot.Participants) != 1 || snapshot.Participants[0].ConnID != "alice" {
		t.Fatalf("snapshot=%+v, want only alice", snapshot.Participants)
	}

	room, _ := f.rooms.Get("R1")
	if len(room.Participants) != 2 {
		t.Fatalf("participants=%d, want 2", len(room.Participants))
	}

	if got := f.transport.kinds("alice"); len(got) != 0 {
		t.Fatalf("alice got %v, want nothing", got)
	}
}

func TestJoinSnapshotExcludesJoiner(t *testing.T) {
	f := newFixture(t)
	f.createRoom(t, "R1", "abc")

	for i, name := range []string{"A", "B", "C"} {
		snapshot, _, err := f.uc.Join(context.Background(), name, input.JoinRoomInput{
			RoomID: "R1", Passcode: "abc", ParticipantName: name,
		})
		if err != nil {
			t.Fatalf("join %s: %v", name, err)
		}

		if len(snapshot.Participants) != i {
			t.Fatalf("%s snapshot size=%d, want %d", name, len(snapshot.Participants), i)
		}
		for _, p := range snapshot.Participants {
			if p.ConnID == name {
				t.Fatalf("%s sees itself in snapshot", name)
			}
		}
	}
}

func TestJoinSecondHostIsRegularParticipant(t *testing.T) {
	f := newFixture(t)
	f.createRoom(t, "R1", "abc")

	if !f.join(t, "alice", "R1", "abc", "Alice", true) {
		t.Fatalf("first host must be admin")
	}
	if f.join(t, "carol", "R1", "abc", "Carol", true) {
		t.Fatalf("second host must not be admin")
	}

	room, _ := f.rooms.Get("R1")

	admins := 0
	for _, p := range room.Participants {
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
}

func TestJoinWithoutHostLeavesAdminUnset(t *testing.T) {
	f := newFixture(t)
	f.createRoom(t, "R1", "abc")

	f.join(t, "bob", "R1", "abc", "Bob", false)

	room, _ := f.rooms.Get("R1")
	if room.AdminConnID != "" {
		t.Fatalf("admin=%q, want empty", room.AdminConnID)
	}
}

func TestJoinAnotherRoomLeavesPrevious(t *testing.T) {
	f := newFixture(t)
	f.createRoom(t, "R1", "abc")
	f.createRoom(t, "R2", "xyz")

	f.join(t, "alice", "R1", "abc", "Alice", false)
	f.join(t, "bob", "R1", "abc", "Bob", false)
	f.transport.reset()

	f.join(t, "bob", "R2", "xyz", "Bob", false)

	r1, _ := f.rooms.Get("R1")
	if len(r1.Participants) != 1 {
		t.Fatalf("R1 participants=%d, want 1", len(r1.Participants))
	}

	if got := f.transport.to("alice", events.TypeUserLeft); len(got) != 1 {
		t.Fatalf("alice user-left=%d, want 1", len(got))
	}

	b, _ := f.sessions.Get("bob")
	if b.RoomID != "R2" {
		t.Fatalf("bob bound to %q, want R2", b.RoomID)
	}
}

func TestJoinFailedSwitchKeepsPreviousRoom(t *testing.T) {
	f := newFixture(t)
	f.createRoom(t, "R1", "abc")
	f.createRoom(t, "R2", "xyz")

	f.join(t, "bob", "R1", "abc", "Bob", false)

	_, _, err := f.uc.Join(context.Background(), "bob", input.JoinRoomInput{RoomID: "R2", Passcode: "bad", ParticipantName: "Bob"})
	if !errors.Is(err, domain.ErrInvalidPasscode) {
		t.Fatalf("err=%v, want %v", err, domain.ErrInvalidPasscode)
	}

	b, _ := f.sessions.Get("bob")
	if b.RoomID != "R1" {
		t.Fatalf("bob bound to %q, want R1", b.RoomID)
	}
}
