package services

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/shadow-chat/internal/models"
)

const (
	maxMessageLen      = 300
	recentMessageLimit = 150
)

// ChatService — тонкая прослойка над стором сообщений:
// валидация, сохранение и рассылка в комнату.
type ChatService struct {
	messages MessageStore
	hub      Broadcaster
}

func NewChatService(messages MessageStore, hub Broadcaster) *ChatService {
	return &ChatService{messages: messages, hub: hub}
}

// chatEvent — конверт события для подписчиков комнаты
type chatEvent struct {
	Type      string          `json:"type"`
	RoomID    uuid.UUID       `json:"room_id"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// SendTextMessage сохраняет текстовое сообщение и рассылает его
// подписчикам комнаты. Угловые скобки экранируются до записи.
func (s *ChatService) SendTextMessage(roomID, userID uuid.UUID, nickname, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMessageEmpty
	}
	if len([]rune(content)) > maxMessageLen {
		return nil, ErrMessageTooLong
	}

	message := &models.Message{
		RoomID:    roomID,
		UserID:    userID,
		Nickname:  nickname,
		Type:      models.MessageTypeText,
		Content:   sanitizeText(content),
		CreatedAt: time.Now(),
	}

	if err := s.messages.SaveMessage(message); err != nil {
		log.Printf("Failed to save message: %v", err)
		return nil, err
	}

	s.broadcast(message)

	return message, nil
}

// SendAttachmentMessage сохраняет сообщение-вложение: в content
// лежит URL уже загруженного файла, размер фиксируется отдельно.
func (s *ChatService) SendAttachmentMessage(roomID, userID uuid.UUID, nickname, msgType, url string, fileSize int64) (*models.Message, error) {
	if url == "" {
		return nil, ErrMessageEmpty
	}

	message := &models.Message{
		RoomID:    roomID,
		UserID:    userID,
		Nickname:  nickname,
		Type:      msgType,
		Content:   url,
		FileSize:  &fileSize,
		CreatedAt: time.Now(),
	}

	if err := s.messages.SaveMessage(message); err != nil {
		log.Printf("Failed to save attachment message: %v", err)
		return nil, err
	}

	s.broadcast(message)

	return message, nil
}

// LoadRecentMessages — последние 150 сообщений, старые в начале.
func (s *ChatService) LoadRecentMessages(roomID uuid.UUID) ([]models.Message, error) {
	return s.messages.RecentMessages(roomID, recentMessageLimit)
}

// LoadOlderMessages — ленивая подгрузка истории до before.
func (s *ChatService) LoadOlderMessages(roomID uuid.UUID, before time.Time, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > recentMessageLimit {
		limit = recentMessageLimit
	}
	return s.messages.OlderMessages(roomID, before, limit)
}

func (s *ChatService) broadcast(message *models.Message) {
	if s.hub == nil {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	event := chatEvent{
		Type:      "message",
		RoomID:    message.RoomID,
		Data:      data,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal chat event: %v", err)
		return
	}

	s.hub.SendToRoom(message.RoomID, payload)
}

// sanitizeText — простой XSS-фильтр, как на клиенте:
// экранируются только угловые скобки.
func sanitizeText(text string) string {
	text = strings.ReplaceAll(text, "<", "&lt;")
	return strings.ReplaceAll(text, ">", "&gt;")
}
