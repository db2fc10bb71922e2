package models

import (
	"time"

	"github.com/google/uuid"
)

type JournalKind string

const (
	JournalRoomOpened JournalKind = "room_opened"
	JournalRoomClosed JournalKind = "room_closed"
)

// Причины закрытия комнаты
const (
	CloseReasonEmpty     = "empty"
	CloseReasonHostLeft  = "host_left"
	CloseReasonHostEnded = "host_ended"
)

// JournalEntry - запись в журнале встреч. Состояние комнат из журнала не восстанавливается.
type JournalEntry struct {
	ID               uuid.UUID   `db:"id"`
	RoomID           string      `db:"room_id"`
	Kind             JournalKind `db:"kind"`
	Reason           string      `db:"reason"`
	ParticipantCount int         `db:"participant_count"`
	CreatedAt        time.Time   `db:"created_at"`
}

func NewJournalEntry(roomID string, kind JournalKind, reason string, participants int, now time.Time) *JournalEntry {
	return &JournalEntry{
		ID:               uuid.New(),
		RoomID:           roomID,
		Kind:             kind,
		Reason:           reason,
		ParticipantCount: participants,
		CreatedAt:        now,
	}
}
