package dto

import (
	"time"

	"github.com/qrave1/RoomSignal/internal/domain/models"
)

type CreateRoomRequest struct {
	RoomID       string `json:"roomId"`
	Passcode     string `json:"passcode"`
	CreatorName  string `json:"creatorName"`
	CreatorEmail string `json:"creatorEmail"`
	MeetingDate  string `json:"meetingDate"`
	MeetingTime  string `json:"meetingTime"`
}

// RoomDTO - комната наружу. Passcode не отдаём.
type RoomDTO struct {
	ID           string    `json:"id"`
	CreatorName  string    `json:"creatorName"`
	CreatorEmail string    `json:"creatorEmail"`
	MeetingDate  string    `json:"meetingDate"`
	MeetingTime  string    `json:"meetingTime"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewRoomDTO(room *models.Room) RoomDTO {
	return RoomDTO{
		ID:           room.ID,
		CreatorName:  room.CreatorName,
		CreatorEmail: room.CreatorEmail,
		MeetingDate:  room.MeetingDate,
		MeetingTime:  room.MeetingTime,
		CreatedAt:    room.CreatedAt,
	}
}

type CreateRoomResponse struct {
	Success bool    `json:"success"`
	Room    RoomDTO `json:"room"`
}

type VerifyPasscodeRequest struct {
	Passcode string `json:"passcode"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
