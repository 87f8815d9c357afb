package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	snapshotCacheKey = "shadow_chat:capacity"
	snapshotCacheTTL = 30 * time.Second
)

// Statistics — сводка для панели мониторинга
type Statistics struct {
	MessageCount    int64   `json:"message_count"`
	UserCount       int64   `json:"user_count"`
	AttachmentCount int64   `json:"attachment_count"`
	DBUsageMB       float64 `json:"db_usage_mb"`
	PercentUsed     float64 `json:"percent_used"`
}

type MonitorData struct {
	Database  MonitorDatabase `json:"database"`
	Stats     *Statistics     `json:"statistics,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type MonitorDatabase struct {
	UsageMB     float64 `json:"usage_mb"`
	LimitMB     float64 `json:"limit_mb"`
	PercentUsed float64 `json:"percent_used"`
	Status      string  `json:"status"`
	Threshold   float64 `json:"threshold"`
}

// StatsService собирает данные мониторинга ёмкости. Срез кэшируется
// в Redis, чтобы эндпоинт не дёргал pg_total_relation_size на каждый
// запрос.
type StatsService struct {
	messages MessageStore
	users    UserStore
	cleanup  *CleanupService
	redis    *redis.Client
}

func NewStatsService(messages MessageStore, users UserStore, cleanup *CleanupService, rdb *redis.Client) *StatsService {
	return &StatsService{
		messages: messages,
		users:    users,
		cleanup:  cleanup,
		redis:    rdb,
	}
}

// Snapshot возвращает срез использования, по возможности из кэша.
func (s *StatsService) Snapshot() CapacitySnapshot {
	if snap := s.cachedSnapshot(); snap != nil {
		return *snap
	}

	snap := s.cleanup.CheckUsage()
	if snap.Status != CapacityError {
		s.cacheSnapshot(snap)
	}

	return snap
}

// Statistics — счётчики для мониторинга. Ошибка любого счётчика
// логируется и оставляет ноль, ответ всё равно уходит.
func (s *StatsService) Statistics() *Statistics {
	stats := &Statistics{}

	var err error
	if stats.MessageCount, err = s.messages.CountMessages(); err != nil {
		log.Printf("Failed to count messages: %v", err)
	}
	if stats.UserCount, err = s.users.CountUsers(); err != nil {
		log.Printf("Failed to count users: %v", err)
	}
	if stats.AttachmentCount, err = s.messages.CountAttachmentMessages(); err != nil {
		log.Printf("Failed to count attachments: %v", err)
	}

	snap := s.Snapshot()
	stats.DBUsageMB = snap.UsageMB
	stats.PercentUsed = snap.PercentUsed

	return stats
}

func (s *StatsService) MonitorData() MonitorData {
	snap := s.Snapshot()

	return MonitorData{
		Database: MonitorDatabase{
			UsageMB:     snap.UsageMB,
			LimitMB:     DBLimitMB,
			PercentUsed: snap.PercentUsed,
			Status:      snap.Status,
			Threshold:   CleanupThreshold,
		},
		Stats:     s.Statistics(),
		Timestamp: time.Now(),
	}
}

func (s *StatsService) cachedSnapshot() *CapacitySnapshot {
	if s.redis == nil {
		return nil
	}

	raw, err := s.redis.Get(context.Background(), snapshotCacheKey).Result()
	if err != nil {
		return nil
	}

	var snap CapacitySnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil
	}

	return &snap
}

func (s *StatsService) cacheSnapshot(snap CapacitySnapshot) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return
	}

	if err := s.redis.Set(context.Background(), snapshotCacheKey, data, snapshotCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache capacity snapshot: %v", err)
	}
}
