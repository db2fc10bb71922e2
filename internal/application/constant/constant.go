package constant

// Ключи атрибутов для slog
const (
	Error       = "error"
	ConnID      = "conn_id"
	RoomID      = "room_id"
	TargetID    = "target_id"
	Participant = "participant"
	MessageType = "message_type"
	Reason      = "reason"
	Count       = "count"
)
