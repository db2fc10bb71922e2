package models

import "time"

type Participant struct {
	ConnID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`

	IsAdmin         bool `json:"isAdmin"`
	IsVideoEnabled  bool `json:"isVideoEnabled"`
	IsAudioEnabled  bool `json:"isAudioEnabled"`
	IsScreenSharing bool `json:"isScreenSharing"`
	HasRaisedHand   bool `json:"hasRaisedHand"`

	JoinedAt time.Time `json:"joinedAt"`
}

// NewParticipant - камера и микрофон включены при входе
func NewParticipant(connID, name, email string, isAdmin bool, now time.Time) *Participant {
	return &Participant{
		ConnID:         connID,
		Name:           name,
		Email:          email,
		IsAdmin:        isAdmin,
		IsVideoEnabled: true,
		IsAudioEnabled: true,
		JoinedAt:       now,
	}
}
