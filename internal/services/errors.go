package services

import "errors"

var (
	ErrRoomNameEmpty   = errors.New("room name cannot be empty")
	ErrRoomNameTooLong = errors.New("room name is too long (max 50 characters)")
	ErrRoomLimit       = errors.New("public room limit reached (max 10 rooms)")
	ErrUserRoomLimit   = errors.New("user room limit reached (max 3 rooms)")
	ErrAlreadyJoined   = errors.New("already joined this room")
	ErrNotCreator      = errors.New("only room creator can modify the room")
	ErrRoomNotFound    = errors.New("room not found")

	ErrMessageEmpty   = errors.New("message cannot be empty")
	ErrMessageTooLong = errors.New("message is too long (max 300 characters)")

	ErrNicknameEmpty   = errors.New("nickname cannot be empty")
	ErrNicknameTooLong = errors.New("nickname is too long (max 20 characters)")
	ErrNicknameInvalid = errors.New("nickname contains forbidden characters")
	ErrUserNotFound    = errors.New("user not found")
)
