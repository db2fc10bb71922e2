package models

import (
	"time"

	"github.com/qrave1/RoomSignal/internal/domain/input"
)

// Room - состояние комнаты, живёт только в памяти процесса
type Room struct {
	ID       string `json:"id"`
	Passcode string `json:"-"`

	CreatorName  string `json:"creatorName"`
	CreatorEmail string `json:"creatorEmail"`
	MeetingDate  string `json:"meetingDate"`
	MeetingTime  string `json:"meetingTime"`

	// AdminConnID пустой, пока не зашёл хост
	AdminConnID string `json:"adminId"`

	Participants []*Participant `json:"-"`
	ChatMessages []ChatMessage  `json:"-"`
	RaisedHands  []RaisedHand   `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

func NewRoom(in *input.CreateRoomInput, now time.Time) *Room {
	return &Room{
		ID:           in.RoomID,
		Passcode:     in.Passcode,
		CreatorName:  in.CreatorName,
		CreatorEmail: in.CreatorEmail,
		MeetingDate:  in.MeetingDate,
		MeetingTime:  in.MeetingTime,
		Participants: make([]*Participant, 0),
		ChatMessages: make([]ChatMessage, 0),
		RaisedHands:  make([]RaisedHand, 0),
		CreatedAt:    now,
	}
}

func (r *Room) Participant(connID string) (*Participant, bool) {
	for _, p := range r.Participants {
		if p.ConnID == connID {
			return p, true
		}
	}

	return nil, false
}

// NameTaken проверяет имя среди участников с другим соединением
func (r *Room) NameTaken(name, connID string) bool {
	for _, p := range r.Participants {
		if p.Name == name && p.ConnID != connID {
			return true
		}
	}

	return false
}

func (r *Room) AddParticipant(p *Participant) {
	r.Participants = append(r.Participants, p)
}

// RemoveParticipant убирает участника и его поднятую руку.
func (r *Room) RemoveParticipant(connID string) (*Participant, bool) {
	for i, p := range r.Participants {
		if p.ConnID != connID {
			continue
		}

		r.Participants = append(r.Participants[:i], r.Participants[i+1:]...)
		r.LowerHand(connID)

		return p, true
	}

	return nil, false
}

// Others - все участники кроме connID, в порядке входа
func (r *Room) Others(connID string) []Participant {
	out := make([]Participant, 0, len(r.Participants))

	for _, p := range r.Participants {
		if p.ConnID == connID {
			continue
		}
		out = append(out, *p)
	}

	return out
}

func (r *Room) ConnIDs() []string {
	ids := make([]string, 0, len(r.Participants))

	for _, p := range r.Participants {
		ids = append(ids, p.ConnID)
	}

	return ids
}

func (r *Room) RaiseHand(p *Participant, now time.Time) {
	r.LowerHand(p.ConnID)
	r.RaisedHands = append(r.RaisedHands, RaisedHand{
		ParticipantID:   p.ConnID,
		ParticipantName: p.Name,
		Timestamp:       now,
	})
}

func (r *Room) LowerHand(connID string) {
	hands := r.RaisedHands[:0]

	for _, h := range r.RaisedHands {
		if h.ParticipantID != connID {
			hands = append(hands, h)
		}
	}

	r.RaisedHands = hands
}
