package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/shadow-chat/internal/services"
)

type CapacityHandler struct {
	stats   *services.StatsService
	cleanup *services.CleanupService
}

func NewCapacityHandler(stats *services.StatsService, cleanup *services.CleanupService) *CapacityHandler {
	return &CapacityHandler{stats: stats, cleanup: cleanup}
}

// GetCapacity возвращает данные мониторинга ёмкости
func (h *CapacityHandler) GetCapacity(c *gin.Context) {
	c.JSON(http.StatusOK, h.stats.MonitorData())
}

// TriggerCleanup — ручной запуск чистки в обход дебаунса
func (h *CapacityHandler) TriggerCleanup(c *gin.Context) {
	result := h.cleanup.ManualCleanup()

	status := http.StatusOK
	if result.Err != "" {
		status = http.StatusInternalServerError
	}

	c.JSON(status, result)
}
