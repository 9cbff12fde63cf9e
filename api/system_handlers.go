package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// handleSystemStatus 获取系统状态
func (s *Server) handleSystemStatus(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data: SystemStatusResponse{
			Motion:    s.sequencer.State(),
			Gestures:  len(s.gestures.List()),
			Uptime:    time.Since(s.startTime),
			Rosbridge: s.rosbridgeURL,
			JoyTopic:  s.joyTopic,
		},
	})
}

// handleHealthCheck 健康检查
func (s *Server) handleHealthCheck(c *gin.Context) {
	status := "healthy"

	if s.sequencer == nil || s.gestures == nil {
		status = "unhealthy"
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   s.version,
		Connected: s.topics != nil && s.topics.IsConnected(),
	}

	httpStatus := http.StatusOK
	if status != "healthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, ApiResponse{
		Status: "success",
		Data:   response,
	})
}
