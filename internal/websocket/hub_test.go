package websocket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub) *Client {
	return &Client{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Send:   make(chan []byte, 8),
		Hub:    hub,
	}
}

func TestSubscribeAndSendToRoom(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	roomID := uuid.New()

	hub.registerClient(client)
	hub.Subscribe(client, roomID)

	require.True(t, client.SubscribedTo(roomID))

	hub.SendToRoom(roomID, []byte("hello"))

	select {
	case msg := <-client.Send:
		assert.Equal(t, "hello", string(msg))
	default:
		t.Fatal("message was not delivered")
	}
}

func TestSubscribeReplacesPrevious(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	roomA, roomB := uuid.New(), uuid.New()

	hub.registerClient(client)
	hub.Subscribe(client, roomA)
	hub.Subscribe(client, roomB)

	// Одна активная подписка на клиента: старая снимается
	assert.False(t, client.SubscribedTo(roomA))
	assert.True(t, client.SubscribedTo(roomB))

	hub.SendToRoom(roomA, []byte("stale"))
	select {
	case msg := <-client.Send:
		t.Fatalf("unexpected delivery from old room: %s", msg)
	default:
	}

	hub.SendToRoom(roomB, []byte("fresh"))
	select {
	case msg := <-client.Send:
		assert.Equal(t, "fresh", string(msg))
	default:
		t.Fatal("message was not delivered to new room")
	}
}

func TestSendToRoomOnlySubscribers(t *testing.T) {
	hub := NewHub()
	subscriber := newTestClient(hub)
	bystander := newTestClient(hub)
	roomID := uuid.New()

	hub.registerClient(subscriber)
	hub.registerClient(bystander)
	hub.Subscribe(subscriber, roomID)

	hub.SendToRoom(roomID, []byte("hello"))

	assert.Len(t, subscriber.Send, 1)
	assert.Empty(t, bystander.Send)
}

func TestUnsubscribe(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	roomID := uuid.New()

	hub.registerClient(client)
	hub.Subscribe(client, roomID)
	hub.Unsubscribe(client)

	assert.False(t, client.SubscribedTo(roomID))

	hub.SendToRoom(roomID, []byte("hello"))
	assert.Empty(t, client.Send)
}

func TestUnregisterRemovesSubscription(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	roomID := uuid.New()

	hub.registerClient(client)
	hub.Subscribe(client, roomID)
	hub.unregisterClient(client)

	assert.Empty(t, hub.GetRoomUsers(roomID))

	// Канал закрыт, повторная рассылка не паникует
	hub.SendToRoom(roomID, []byte("hello"))
}

func TestGetRoomUsers(t *testing.T) {
	hub := NewHub()
	roomID := uuid.New()

	first := newTestClient(hub)
	second := newTestClient(hub)
	hub.registerClient(first)
	hub.registerClient(second)
	hub.Subscribe(first, roomID)
	hub.Subscribe(second, roomID)

	users := hub.GetRoomUsers(roomID)
	assert.Len(t, users, 2)
	assert.Contains(t, users, first.UserID)
	assert.Contains(t, users, second.UserID)

	// Два клиента одного пользователя считаются один раз
	twin := newTestClient(hub)
	twin.UserID = first.UserID
	hub.registerClient(twin)
	hub.Subscribe(twin, roomID)

	assert.Len(t, hub.GetRoomUsers(roomID), 2)
}

func TestSendMessageQueueFull(t *testing.T) {
	client := &Client{
		ID:   uuid.New(),
		Send: make(chan []byte, 1),
	}

	require.NoError(t, client.SendMessage(TypePing, nil))
	assert.ErrorIs(t, client.SendMessage(TypePing, nil), ErrClientQueueFull)
}
