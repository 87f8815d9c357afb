package services

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/shadow-chat/internal/models"
)

func TestSendTextMessageValidation(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewChatService(store, nil)
	roomID, userID := uuid.New(), uuid.New()

	_, err := svc.SendTextMessage(roomID, userID, "vasya", "")
	assert.ErrorIs(t, err, ErrMessageEmpty)

	_, err = svc.SendTextMessage(roomID, userID, "vasya", "   \n  ")
	assert.ErrorIs(t, err, ErrMessageEmpty)

	_, err = svc.SendTextMessage(roomID, userID, "vasya", strings.Repeat("ж", 301))
	assert.ErrorIs(t, err, ErrMessageTooLong)

	assert.Empty(t, store.saved)
}

func TestSendTextMessageRuneLimit(t *testing.T) {
	svc := NewChatService(&fakeMessageStore{}, nil)

	// 300 кириллических символов — это 600 байт, но лимит по рунам
	msg, err := svc.SendTextMessage(uuid.New(), uuid.New(), "vasya", strings.Repeat("ж", 300))
	require.NoError(t, err)
	assert.Len(t, []rune(msg.Content), 300)
}

func TestSendTextMessageSanitizes(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewChatService(store, nil)

	msg, err := svc.SendTextMessage(uuid.New(), uuid.New(), "vasya", `<script>alert("x")</script>`)
	require.NoError(t, err)

	assert.Equal(t, `&lt;script&gt;alert("x")&lt;/script&gt;`, msg.Content)
	assert.Equal(t, models.MessageTypeText, msg.Type)
	require.Len(t, store.saved, 1)
	assert.Equal(t, msg.Content, store.saved[0].Content)
}

func TestSendTextMessageBroadcasts(t *testing.T) {
	hub := &fakeBroadcaster{}
	svc := NewChatService(&fakeMessageStore{}, hub)
	roomID := uuid.New()

	msg, err := svc.SendTextMessage(roomID, uuid.New(), "vasya", "привет")
	require.NoError(t, err)

	require.Len(t, hub.rooms, 1)
	assert.Equal(t, roomID, hub.rooms[0])

	var event chatEvent
	require.NoError(t, json.Unmarshal(hub.payloads[0], &event))
	assert.Equal(t, "message", event.Type)
	assert.Equal(t, roomID, event.RoomID)

	var sent models.Message
	require.NoError(t, json.Unmarshal(event.Data, &sent))
	assert.Equal(t, msg.ID, sent.ID)
	assert.Equal(t, "привет", sent.Content)
}

func TestSendAttachmentMessage(t *testing.T) {
	store := &fakeMessageStore{}
	hub := &fakeBroadcaster{}
	svc := NewChatService(store, hub)

	msg, err := svc.SendAttachmentMessage(uuid.New(), uuid.New(), "vasya",
		models.MessageTypeImage, "http://cdn.local/chat-images/u/1.png", 123456)
	require.NoError(t, err)

	assert.Equal(t, models.MessageTypeImage, msg.Type)
	assert.Equal(t, "http://cdn.local/chat-images/u/1.png", msg.Content)
	require.NotNil(t, msg.FileSize)
	assert.Equal(t, int64(123456), *msg.FileSize)
	assert.Len(t, hub.payloads, 1)
}

func TestSendAttachmentMessageEmptyURL(t *testing.T) {
	svc := NewChatService(&fakeMessageStore{}, nil)

	_, err := svc.SendAttachmentMessage(uuid.New(), uuid.New(), "vasya", models.MessageTypeVideo, "", 0)
	assert.ErrorIs(t, err, ErrMessageEmpty)
}

func TestLoadOlderMessagesClampsLimit(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewChatService(store, nil)
	before := time.Now()

	_, err := svc.LoadOlderMessages(uuid.New(), before, 0)
	require.NoError(t, err)
	assert.Equal(t, recentMessageLimit, store.lastLimit)

	_, err = svc.LoadOlderMessages(uuid.New(), before, 500)
	require.NoError(t, err)
	assert.Equal(t, recentMessageLimit, store.lastLimit)

	_, err = svc.LoadOlderMessages(uuid.New(), before, 20)
	require.NoError(t, err)
	assert.Equal(t, 20, store.lastLimit)
}

func TestLoadRecentMessagesLimit(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewChatService(store, nil)

	_, err := svc.LoadRecentMessages(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, recentMessageLimit, store.lastLimit)
}
