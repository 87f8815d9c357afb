package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MessageType определяет типы событий
type MessageType string

const (
	// Системные типы
	TypePing MessageType = "ping"
	TypePong MessageType = "pong"

	// Подписка на ленту комнаты
	TypeSubscribe   MessageType = "subscribe"
	TypeUnsubscribe MessageType = "unsubscribe"

	// Новое сообщение в комнате
	TypeMessage MessageType = "message"
)

type Message struct {
	Type      MessageType     `json:"type"`
	RoomID    *uuid.UUID      `json:"room_id,omitempty"`
	UserID    uuid.UUID       `json:"user_id"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub раздаёт события сообщений по подпискам. У клиента одна
// длинная подписка: подписка на новую комнату сначала снимает
// предыдущую, чтобы не было двойной доставки.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Подписчики по комнатам
	rooms map[uuid.UUID]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub создает новый Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		rooms:      make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	log.Printf("Client registered: %s (User: %s)", client.ID, client.UserID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		h.unsubscribeUnsafe(client)
		delete(h.clients, client.ID)
		close(client.Send)

		log.Printf("Client unregistered: %s (User: %s)", client.ID, client.UserID)
	}
}

// Subscribe подписывает клиента на ленту комнаты.
// Предыдущая подписка снимается первой.
func (h *Hub) Subscribe(client *Client, roomID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.unsubscribeUnsafe(client)

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[uuid.UUID]*Client)
	}
	h.rooms[roomID][client.ID] = client

	client.mu.Lock()
	client.Room = &roomID
	client.mu.Unlock()
}

// Unsubscribe снимает текущую подписку клиента
func (h *Hub) Unsubscribe(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.unsubscribeUnsafe(client)
}

func (h *Hub) unsubscribeUnsafe(client *Client) {
	client.mu.Lock()
	roomID := client.Room
	client.Room = nil
	client.mu.Unlock()

	if roomID == nil {
		return
	}

	if room, ok := h.rooms[*roomID]; ok {
		delete(room, client.ID)
		if len(room) == 0 {
			delete(h.rooms, *roomID)
		}
	}
}

// SendToRoom отправляет событие всем подписчикам комнаты
func (h *Hub) SendToRoom(roomID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if room, ok := h.rooms[roomID]; ok {
		for _, client := range room {
			select {
			case client.Send <- message:
			default:
				log.Printf("Client %s send channel full", client.ID)
			}
		}
	}
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{
		Type:      TypePing,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(msg); err == nil {
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// GetRoomUsers возвращает список пользователей, подписанных на комнату
func (h *Hub) GetRoomUsers(roomID uuid.UUID) []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	userMap := make(map[uuid.UUID]bool)
	if room, ok := h.rooms[roomID]; ok {
		for _, client := range room {
			userMap[client.UserID] = true
		}
	}

	users := make([]uuid.UUID, 0, len(userMap))
	for userID := range userMap {
		users = append(users, userID)
	}
	return users
}
