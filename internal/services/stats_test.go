package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotCachesInRedis(t *testing.T) {
	store := &fakeMessageStore{tableSize: 100 * mb}
	svc := NewStatsService(store, newFakeUserStore(), NewCleanupService(store), testRedis(t))

	first := svc.Snapshot()
	assert.Equal(t, CapacitySafe, first.Status)
	assert.Equal(t, float64(100), first.UsageMB)

	// Размер поменялся, но в пределах TTL отдаётся кэш
	store.tableSize = 190 * mb
	second := svc.Snapshot()
	assert.Equal(t, first, second)
}

func TestSnapshotErrorNotCached(t *testing.T) {
	store := &fakeMessageStore{tableSize: 100 * mb, sizeErr: assert.AnError}
	svc := NewStatsService(store, newFakeUserStore(), NewCleanupService(store), testRedis(t))

	snap := svc.Snapshot()
	assert.Equal(t, CapacityError, snap.Status)

	// После восстановления базы отдаётся свежий срез, а не ошибка
	store.sizeErr = nil
	snap = svc.Snapshot()
	assert.Equal(t, CapacitySafe, snap.Status)
}

func TestStatistics(t *testing.T) {
	store := &fakeMessageStore{tableSize: 50 * mb, total: 42}
	users := newFakeUserStore()
	svc := NewStatsService(store, users, NewCleanupService(store), nil)

	stats := svc.Statistics()

	assert.Equal(t, int64(42), stats.MessageCount)
	assert.Zero(t, stats.UserCount)
	assert.Equal(t, float64(50), stats.DBUsageMB)
	assert.Equal(t, float64(25), stats.PercentUsed)
}

func TestMonitorData(t *testing.T) {
	store := &fakeMessageStore{tableSize: 160 * mb}
	svc := NewStatsService(store, newFakeUserStore(), NewCleanupService(store), nil)

	data := svc.MonitorData()

	assert.Equal(t, float64(200), data.Database.LimitMB)
	assert.Equal(t, float64(90), data.Database.Threshold)
	assert.Equal(t, CapacityWarning, data.Database.Status)
	assert.NotNil(t, data.Stats)
}
