package services

import (
	"context"
	"log"
	"math"
	"sync"
	"time"
)

// Лимиты бесплатного тарифа и политика удержания
const (
	DBLimitMB        = 200    // бюджет таблицы messages, МБ
	CleanupThreshold = 90     // процент заполнения, при котором запускается чистка
	KeepMessages     = 100000 // сколько последних сообщений сохраняем
	KeepDays         = 90     // сколько дней истории сохраняем

	// Минимальный интервал между автоматическими чистками
	CleanupInterval = time.Minute

	// Период фонового опроса по умолчанию
	DefaultCheckPeriod = 5 * time.Minute

	deleteBatchSize = 1000
)

// Статусы заполненности
const (
	CapacitySafe     = "safe"
	CapacityWarning  = "warning"
	CapacityCritical = "critical"
	CapacityError    = "error"
)

// CapacitySnapshot — моментальный срез использования базы.
// Не персистентен, вычисляется по запросу.
type CapacitySnapshot struct {
	UsageMB     float64 `json:"usage_mb"`
	PercentUsed float64 `json:"percent_used"`
	Status      string  `json:"status"`
}

type CleanupResult struct {
	Cleaned bool   `json:"cleaned"`
	Status  string `json:"status"`
	Deleted int64  `json:"deleted"`
	Err     string `json:"error,omitempty"`
}

// CleanupService следит за размером таблицы сообщений и чистит её
// двумя фазами: сначала по возрасту, потом по количеству.
// Метка последнего запуска живёт в структуре, а не в глобальной
// переменной, и защищена мьютексом.
type CleanupService struct {
	messages MessageStore

	mu          sync.Mutex
	lastCleanup time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

func NewCleanupService(messages MessageStore) *CleanupService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CleanupService{
		messages: messages,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// CheckUsage возвращает срез использования базы.
// Ошибка запроса не пробрасывается: это фоновый сигнал,
// наружу уходит нулевой срез со статусом error.
func (s *CleanupService) CheckUsage() CapacitySnapshot {
	sizeBytes, err := s.messages.MessagesTableSize()
	if err != nil {
		log.Printf("Failed to get messages table size: %v", err)
		return CapacitySnapshot{Status: CapacityError}
	}

	usageMB := float64(sizeBytes) / (1024 * 1024)
	percentUsed := usageMB / DBLimitMB * 100

	return CapacitySnapshot{
		UsageMB:     round2(usageMB),
		PercentUsed: round2(percentUsed),
		Status:      capacityStatus(percentUsed),
	}
}

// CleanupOldMessages — фаза A: удаляет сообщения старше days дней.
func (s *CleanupService) CleanupOldMessages(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	deleted, err := s.messages.DeleteMessagesBefore(cutoff)
	if err != nil {
		log.Printf("Failed to delete old messages: %v", err)
		return 0, err
	}

	return deleted, nil
}

// KeepOnlyRecentMessages — фаза B: оставляет не больше keepCount
// последних сообщений, удаляя самые старые пачками по ID.
func (s *CleanupService) KeepOnlyRecentMessages(keepCount int) (deleted, remaining int64, err error) {
	total, err := s.messages.CountMessages()
	if err != nil {
		log.Printf("Failed to count messages: %v", err)
		return 0, 0, err
	}

	if total <= int64(keepCount) {
		return 0, total, nil
	}

	toDelete := total - int64(keepCount)

	ids, err := s.messages.OldestMessageIDs(int(toDelete))
	if err != nil {
		log.Printf("Failed to select messages for deletion: %v", err)
		return 0, total, err
	}

	for start := 0; start < len(ids); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		n, err := s.messages.DeleteMessagesByID(ids[start:end])
		if err != nil {
			log.Printf("Failed to delete message batch: %v", err)
			return deleted, total - deleted, err
		}
		deleted += n
	}

	return deleted, total - deleted, nil
}

// AutoCleanup запускает двухфазную чистку, если заполнение выше порога.
// Фазы не обёрнуты в общую транзакцию: уже выполненные удаления
// не откатываются, семантика best-effort.
func (s *CleanupService) AutoCleanup() CleanupResult {
	usage := s.CheckUsage()
	log.Printf("Cleanup check: %.2f MB (%.2f%%)", usage.UsageMB, usage.PercentUsed)

	if usage.PercentUsed < CleanupThreshold {
		return CleanupResult{Cleaned: false, Status: usage.Status}
	}

	var errMsg string

	oldDeleted, err := s.CleanupOldMessages(KeepDays)
	if err != nil {
		errMsg = err.Error()
	}
	log.Printf("Cleanup phase A: deleted %d old messages", oldDeleted)

	countDeleted, remaining, err := s.KeepOnlyRecentMessages(KeepMessages)
	if err != nil {
		errMsg = err.Error()
	}
	log.Printf("Cleanup phase B: deleted %d messages, %d remaining", countDeleted, remaining)

	final := s.CheckUsage()
	log.Printf("Cleanup done: %.2f MB (%.2f%%)", final.UsageMB, final.PercentUsed)

	return CleanupResult{
		Cleaned: true,
		Status:  final.Status,
		Deleted: oldDeleted + countDeleted,
		Err:     errMsg,
	}
}

// CheckAndCleanupIfNeeded — дебаунс вокруг AutoCleanup: не чаще
// CleanupInterval. Метка времени ставится до запуска чистки, чтобы
// дрожание таймера не породило повторный вход.
func (s *CleanupService) CheckAndCleanupIfNeeded() (bool, *CleanupResult) {
	s.mu.Lock()
	if time.Since(s.lastCleanup) < CleanupInterval {
		s.mu.Unlock()
		return false, nil
	}
	s.mu.Unlock()

	usage := s.CheckUsage()
	if usage.PercentUsed < CleanupThreshold {
		return false, nil
	}

	s.mu.Lock()
	if time.Since(s.lastCleanup) < CleanupInterval {
		s.mu.Unlock()
		return false, nil
	}
	s.lastCleanup = time.Now()
	s.mu.Unlock()

	result := s.AutoCleanup()
	return true, &result
}

// ManualCleanup сбрасывает дебаунс и чистит немедленно.
func (s *CleanupService) ManualCleanup() CleanupResult {
	s.mu.Lock()
	s.lastCleanup = time.Time{}
	s.mu.Unlock()

	return s.AutoCleanup()
}

// Start запускает фоновый опрос; возвращает функцию остановки.
// Единственная фоновая задача в системе, никого не блокирует.
func (s *CleanupService) Start(period time.Duration) func() {
	if period <= 0 {
		period = DefaultCheckPeriod
	}

	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				log.Println("Cleanup service stopped")
				return
			case <-ticker.C:
				s.CheckAndCleanupIfNeeded()
			}
		}
	}()

	return s.cancel
}

func capacityStatus(percentUsed float64) string {
	if percentUsed >= 100 {
		return CapacityCritical
	}
	if percentUsed >= 80 {
		return CapacityWarning
	}
	return CapacitySafe
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
