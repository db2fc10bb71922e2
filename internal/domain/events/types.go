package events

import (
	"encoding/json"
	"time"

	"github.com/qrave1/RoomSignal/internal/domain/output"
)

// Message - общее событие
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewMessage упаковывает payload в конверт. Payload всегда из этого пакета, поэтому ошибку маршалинга не ждём.
func NewMessage(kind string, payload any) Message {
	if payload == nil {
		return Message{Type: kind}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return Message{Type: TypeError, Data: json.RawMessage(`{"message":"internal error"}`)}
	}

	return Message{Type: kind, Data: data}
}

// Входящие типы
const (
	TypeJoinRoom               = "join-room"
	TypeLeaveRoom              = "leave-room"
	TypeToggleVideo            = "toggle-video"
	TypeToggleAudio            = "toggle-audio"
	TypeSendChatMessage        = "send-chat-message"
	TypeSendReaction           = "send-reaction"
	TypeToggleRaiseHand        = "toggle-raise-hand"
	TypeGetRoomStats           = "get-room-stats"
	TypeAdminRemoveParticipant = "admin-remove-participant"
	TypeAdminEndMeeting        = "admin-end-meeting"
	TypePing                   = "ping"
)

// Сигналинг ходит в обе стороны под одним и тем же типом
const (
	TypeOffer        = "offer"
	TypeAnswer       = "answer"
	TypeICECandidate = "ice-candidate"
)

// Исходящие типы
const (
	TypeConnected               = "connected"
	TypeRoomJoined              = "room-joined"
	TypeUserJoined              = "user-joined"
	TypeUserLeft                = "user-left"
	TypeParticipantCountUpdated = "participant-count-updated"
	TypeParticipantRemoved      = "participant-removed"
	TypeMeetingEnded            = "meeting-ended"
	TypeForceDisconnect         = "force-disconnect"
	TypeParticipantVideoToggle  = "participant-video-toggle"
	TypeParticipantAudioToggle  = "participant-audio-toggle"
	TypeNewChatMessage          = "new-chat-message"
	TypeNewReaction             = "new-reaction"
	TypeParticipantHandToggle   = "participant-hand-toggle"
	TypeRoomStats               = "room-stats"
	TypeError                   = "error"
	TypePong                    = "pong"
)

// IsSignal - offer, answer или ice-candidate
func IsSignal(kind string) bool {
	return kind == TypeOffer || kind == TypeAnswer || kind == TypeICECandidate
}

// SignalField - имя поля с полезной нагрузкой для сигнального сообщения
func SignalField(kind string) string {
	if kind == TypeICECandidate {
		return "candidate"
	}

	return kind
}

type ConnectedEvent struct {
	ConnectionID string `json:"connectionId"`
}

type RoomJoinedEvent struct {
	Room    output.RoomSnapshot `json:"room"`
	IsAdmin bool                `json:"isAdmin"`
}

type UserLeftEvent struct {
	ParticipantID string `json:"participantId"`
}

type ParticipantCountEvent struct {
	Count int `json:"count"`
}

type ParticipantRemovedEvent struct {
	ParticipantID   string `json:"participantId"`
	ParticipantName string `json:"participantName"`
	RemovedBy       string `json:"removedBy"`
}

type MeetingEndedEvent struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
	EndedBy string `json:"endedBy"`
}

type ForceDisconnectEvent struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// SignalEvent - входящий offer/answer/ice-candidate. Payload не разбираем, отдаём как есть.
type SignalEvent struct {
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
	TargetID  string          `json:"targetId"`
}

// Payload достаёт нагрузку по типу сообщения
func (e *SignalEvent) Payload(kind string) json.RawMessage {
	switch kind {
	case TypeOffer:
		return e.Offer
	case TypeAnswer:
		return e.Answer
	case TypeICECandidate:
		return e.Candidate
	}

	return nil
}

// RelayedSignal - то, что уходит адресату: исходное поле плюс senderId
func RelayedSignal(kind string, payload json.RawMessage, senderID string) map[string]any {
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}

	return map[string]any{
		SignalField(kind): payload,
		"senderId":        senderID,
	}
}

type ToggleEvent struct {
	IsEnabled bool `json:"isEnabled"`
}

type ParticipantToggleEvent struct {
	ParticipantID string `json:"participantId"`
	IsEnabled     bool   `json:"isEnabled"`
}

type ChatMessageEvent struct {
	Message string `json:"message"`
}

type ReactionEvent struct {
	Reaction string `json:"reaction"`
}

type RaiseHandEvent struct {
	IsRaised bool `json:"isRaised"`
}

type HandToggleEvent struct {
	ParticipantID   string `json:"participantId"`
	IsRaised        bool   `json:"isRaised"`
	ParticipantName string `json:"participantName"`
}

type RemoveParticipantEvent struct {
	ParticipantID string `json:"participantId"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}

type PongEvent struct {
	Timestamp time.Time `json:"timestamp"`
}
