package websocket

import "errors"

var (
	ErrClientQueueFull = errors.New("client message queue is full")
	ErrInvalidMessage  = errors.New("invalid message format")
	ErrNotSubscribed   = errors.New("not subscribed to this room")
)
