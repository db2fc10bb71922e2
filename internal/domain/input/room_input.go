package input

type CreateRoomInput struct {
	RoomID       string `json:"roomId"`
	Passcode     string `json:"passcode"`
	CreatorName  string `json:"creatorName"`
	CreatorEmail string `json:"creatorEmail"`
	MeetingDate  string `json:"meetingDate"`
	MeetingTime  string `json:"meetingTime"`
}

type JoinRoomInput struct {
	RoomID           string `json:"roomId"`
	Passcode         string `json:"passcode"`
	ParticipantName  string `json:"participantName"`
	ParticipantEmail string `json:"participantEmail"`
	IsHost           bool   `json:"isHost"`
}
