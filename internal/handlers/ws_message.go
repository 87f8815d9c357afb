package handlers

import (
	"encoding/json"

	"github.com/thereayou/shadow-chat/internal/handlers/dto"
	"github.com/thereayou/shadow-chat/internal/services"
	"github.com/thereayou/shadow-chat/internal/websocket"
)

// WSMessageHandler обрабатывает события, пришедшие по WebSocket.
// Рассылку по комнате делает ChatService.
type WSMessageHandler struct {
	chat  *services.ChatService
	users *services.UserService
}

func NewWSMessageHandler(chat *services.ChatService, users *services.UserService) *WSMessageHandler {
	return &WSMessageHandler{chat: chat, users: users}
}

func (h *WSMessageHandler) HandleMessage(client *websocket.Client, msg *websocket.Message) error {
	switch msg.Type {
	case websocket.TypeMessage:
		return h.handleTextMessage(client, msg)

	default:
		return websocket.ErrInvalidMessage
	}
}

func (h *WSMessageHandler) handleTextMessage(client *websocket.Client, msg *websocket.Message) error {
	if msg.RoomID == nil {
		return websocket.ErrInvalidMessage
	}

	if !client.SubscribedTo(*msg.RoomID) {
		return websocket.ErrNotSubscribed
	}

	var payload dto.MessagePayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return err
	}

	nickname := h.users.GetUserDisplayName(client.UserID)

	_, err := h.chat.SendTextMessage(*msg.RoomID, client.UserID, nickname, payload.Content)
	return err
}
