package domain

import "errors"

// Ошибки допуска и прав администратора. Отдаются только инициатору.
var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrInvalidPasscode = errors.New("invalid passcode")
	ErrNameTaken       = errors.New("name is already taken in this room")
	ErrNotAuthorized   = errors.New("only admin can perform this action")
	ErrRoomExists      = errors.New("room id already exists")
)
