package output

import "github.com/qrave1/RoomSignal/internal/domain/models"

// RoomSnapshot - то, что видит только что вошедший участник. Себя в списке он не видит.
type RoomSnapshot struct {
	ID           string               `json:"id"`
	CreatorName  string               `json:"creatorName"`
	AdminID      string               `json:"adminId"`
	Participants []models.Participant `json:"participants"`
	ChatMessages []models.ChatMessage `json:"chatMessages"`
	RaisedHands  []models.RaisedHand  `json:"raisedHands"`
}

func NewRoomSnapshot(room *models.Room, connID string) RoomSnapshot {
	chat := make([]models.ChatMessage, len(room.ChatMessages))
	copy(chat, room.ChatMessages)

	hands := make([]models.RaisedHand, len(room.RaisedHands))
	copy(hands, room.RaisedHands)

	return RoomSnapshot{
		ID:           room.ID,
		CreatorName:  room.CreatorName,
		AdminID:      room.AdminConnID,
		Participants: room.Others(connID),
		ChatMessages: chat,
		RaisedHands:  hands,
	}
}

// RoomSummary - строка списка комнат
type RoomSummary struct {
	ID               string `json:"id"`
	CreatorName      string `json:"creatorName"`
	MeetingDate      string `json:"meetingDate"`
	MeetingTime      string `json:"meetingTime"`
	ParticipantCount int    `json:"participantCount"`
}

type RoomStats struct {
	TotalParticipants int   `json:"totalParticipants"`
	ChatMessages      int   `json:"chatMessages"`
	RaisedHands       int   `json:"raisedHands"`
	VideoEnabled      int   `json:"videoEnabled"`
	AudioEnabled      int   `json:"audioEnabled"`
	RoomDuration      int64 `json:"roomDuration"`
}
