package models

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewChatMessage(sender *Participant, text string, now time.Time) ChatMessage {
	return ChatMessage{
		ID:         uuid.NewString(),
		SenderID:   sender.ConnID,
		SenderName: sender.Name,
		Message:    text,
		Timestamp:  now,
	}
}

// Reaction не сохраняется в комнате, клиент сам убирает её через пару секунд
type Reaction struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Reaction   string    `json:"reaction"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewReaction(sender *Participant, symbol string, now time.Time) Reaction {
	return Reaction{
		ID:         uuid.NewString(),
		SenderID:   sender.ConnID,
		SenderName: sender.Name,
		Reaction:   symbol,
		Timestamp:  now,
	}
}

type RaisedHand struct {
	ParticipantID   string    `json:"participantId"`
	ParticipantName string    `json:"participantName"`
	Timestamp       time.Time `json:"timestamp"`
}
