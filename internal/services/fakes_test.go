package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/shadow-chat/internal/models"
	"gorm.io/gorm"
)

// In-memory сторы для тестов сервисов.

type fakeMessageStore struct {
	mu sync.Mutex

	tableSize int64
	total     int64
	oldCount  int64 // сообщений старше отсечки по возрасту

	sizeErr   error
	countErr  error
	selectErr error
	deleteErr error

	saved     []*models.Message
	recent    []models.Message
	older     []models.Message
	lastLimit int

	deleteBeforeCalls int
	deleteByIDCalls   int
}

func (f *fakeMessageStore) SaveMessage(message *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	message.ID = uuid.New()
	f.saved = append(f.saved, message)
	f.total++
	return nil
}

func (f *fakeMessageStore) RecentMessages(roomID uuid.UUID, limit int) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	return f.recent, nil
}

func (f *fakeMessageStore) OlderMessages(roomID uuid.UUID, before time.Time, limit int) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	return f.older, nil
}

func (f *fakeMessageStore) CountMessages() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.total, nil
}

func (f *fakeMessageStore) CountAttachmentMessages() (int64, error) {
	return 0, nil
}

func (f *fakeMessageStore) DeleteMessagesBefore(cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteBeforeCalls++
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	deleted := f.oldCount
	f.total -= deleted
	f.oldCount = 0
	return deleted, nil
}

func (f *fakeMessageStore) OldestMessageIDs(limit int) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	if int64(limit) > f.total {
		limit = int(f.total)
	}
	ids := make([]uuid.UUID, limit)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids, nil
}

func (f *fakeMessageStore) DeleteMessagesByID(ids []uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteByIDCalls++
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.total -= int64(len(ids))
	return int64(len(ids)), nil
}

func (f *fakeMessageStore) MessagesTableSize() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sizeErr != nil {
		return 0, f.sizeErr
	}
	return f.tableSize, nil
}

type membershipKey struct {
	userID uuid.UUID
	roomID uuid.UUID
}

type fakeRoomStore struct {
	mu          sync.Mutex
	rooms       map[uuid.UUID]*models.Room
	memberships map[membershipKey]bool

	joinErr error
}

func newFakeRoomStore() *fakeRoomStore {
	return &fakeRoomStore{
		rooms:       make(map[uuid.UUID]*models.Room),
		memberships: make(map[membershipKey]bool),
	}
}

func (f *fakeRoomStore) CreateRoom(room *models.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	room.ID = uuid.New()
	copied := *room
	f.rooms[room.ID] = &copied
	return nil
}

func (f *fakeRoomStore) GetRoom(id uuid.UUID) (*models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *room
	return &copied, nil
}

func (f *fakeRoomStore) UpdateRoom(room *models.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *room
	f.rooms[room.ID] = &copied
	return nil
}

func (f *fakeRoomStore) DeleteRoom(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rooms, id)
	for key := range f.memberships {
		if key.roomID == id {
			delete(f.memberships, key)
		}
	}
	return nil
}

func (f *fakeRoomStore) PublicRooms() ([]models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rooms []models.Room
	for _, room := range f.rooms {
		if room.IsPublic {
			rooms = append(rooms, *room)
		}
	}
	return rooms, nil
}

func (f *fakeRoomStore) CountPublicRooms() (int64, error) {
	rooms, _ := f.PublicRooms()
	return int64(len(rooms)), nil
}

func (f *fakeRoomStore) UserRooms(userID uuid.UUID) ([]models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rooms []models.Room
	for key := range f.memberships {
		if key.userID == userID {
			if room, ok := f.rooms[key.roomID]; ok {
				rooms = append(rooms, *room)
			}
		}
	}
	return rooms, nil
}

func (f *fakeRoomStore) AddMembership(userID, roomID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.joinErr != nil {
		return f.joinErr
	}
	f.memberships[membershipKey{userID, roomID}] = true
	return nil
}

func (f *fakeRoomStore) RemoveMembership(userID, roomID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.memberships, membershipKey{userID, roomID})
	return nil
}

func (f *fakeRoomStore) MembershipExists(userID, roomID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.memberships[membershipKey{userID, roomID}], nil
}

func (f *fakeRoomStore) CountUserRooms(userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for key := range f.memberships {
		if key.userID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRoomStore) RoomMemberCount(roomID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for key := range f.memberships {
		if key.roomID == roomID {
			count++
		}
	}
	return count, nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserStore) UpsertUser(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) GetUser(id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) UpdateNickname(id uuid.UUID, nickname string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Nickname = nickname
	return nil
}

func (f *fakeUserStore) CountUsers() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	rooms    []uuid.UUID
	payloads [][]byte
}

func (f *fakeBroadcaster) SendToRoom(roomID uuid.UUID, message []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms = append(f.rooms, roomID)
	f.payloads = append(f.payloads, message)
}
