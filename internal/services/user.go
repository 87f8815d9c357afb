package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/thereayou/shadow-chat/internal/models"
)

const (
	maxNicknameLen = 20

	// Кэш личности — аналог localStorage браузерного клиента
	userCachePrefix = "shadow_chat_user:"
	userCacheTTL    = 30 * 24 * time.Hour
)

type cachedUser struct {
	ID       uuid.UUID `json:"id"`
	Nickname string    `json:"nickname"`
}

// UserService держит личность в двух местах: Redis-кэш и таблица users.
// Кэш первичен при чтении, база — источник истины после рестарта.
type UserService struct {
	users UserStore
	redis *redis.Client
}

func NewUserService(users UserStore, rdb *redis.Client) *UserService {
	return &UserService{users: users, redis: rdb}
}

// EnsureUser инициализирует пользователя: кэш → база → новый.
// Новому генерируется случайный никнейм.
func (s *UserService) EnsureUser(id uuid.UUID) (*models.User, error) {
	if cached := s.fromCache(id); cached != nil {
		return &models.User{ID: cached.ID, Nickname: cached.Nickname}, nil
	}

	user, err := s.users.GetUser(id)
	if err == nil {
		s.toCache(user)
		return user, nil
	}

	user = &models.User{
		ID:        id,
		Nickname:  randomNickname(),
		CreatedAt: time.Now(),
	}

	if err := s.users.UpsertUser(user); err != nil {
		log.Printf("Failed to save user: %v", err)
		return nil, err
	}

	s.toCache(user)

	return user, nil
}

// UpdateNickname валидирует и обновляет никнейм в базе и в кэше.
func (s *UserService) UpdateNickname(id uuid.UUID, nickname string) (string, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return "", ErrNicknameEmpty
	}
	if len([]rune(nickname)) > maxNicknameLen {
		return "", ErrNicknameTooLong
	}
	if strings.ContainsAny(nickname, "<>") {
		return "", ErrNicknameInvalid
	}

	if err := s.users.UpdateNickname(id, nickname); err != nil {
		log.Printf("Failed to update nickname: %v", err)
		return "", err
	}

	s.toCache(&models.User{ID: id, Nickname: nickname})

	return nickname, nil
}

func (s *UserService) GetUser(id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetUser(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetUserDisplayName возвращает никнейм для отображения,
// для неизвестных пользователей — заглушку.
func (s *UserService) GetUserDisplayName(id uuid.UUID) string {
	if cached := s.fromCache(id); cached != nil {
		return cached.Nickname
	}

	user, err := s.users.GetUser(id)
	if err != nil {
		return "guest"
	}

	s.toCache(user)

	return user.Nickname
}

func (s *UserService) fromCache(id uuid.UUID) *cachedUser {
	if s.redis == nil {
		return nil
	}

	raw, err := s.redis.Get(context.Background(), userCachePrefix+id.String()).Result()
	if err != nil {
		return nil
	}

	var cached cachedUser
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil
	}

	return &cached
}

func (s *UserService) toCache(user *models.User) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(cachedUser{ID: user.ID, Nickname: user.Nickname})
	if err != nil {
		return
	}

	if err := s.redis.Set(context.Background(), userCachePrefix+user.ID.String(), data, userCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache user: %v", err)
	}
}

// randomNickname — "user" + 4 случайные цифры
func randomNickname() string {
	return fmt.Sprintf("user%04d", rand.Intn(10000))
}
