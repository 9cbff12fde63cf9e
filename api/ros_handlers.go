package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleGetTopics 获取所有 ROS 话题及其类型
func (s *Server) handleGetTopics(c *gin.Context) {
	list, err := s.topics.GetTopics(c.Request.Context())
	if err != nil {
		log.Printf("❌ 获取话题失败: %v", err)
		c.JSON(http.StatusBadGateway, ApiResponse{
			Status: "error",
			Error:  "获取话题失败：" + err.Error(),
		})
		return
	}
	if len(list) == 0 {
		c.JSON(http.StatusOK, ApiResponse{
			Status:  "success",
			Message: "No topics found",
		})
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   newTopicsResponse(list),
	})
}

// handleGetJoy 订阅一条 Joy 消息
func (s *Server) handleGetJoy(c *gin.Context) {
	msg, err := s.joyReader.Latest(c.Request.Context())
	if err != nil {
		log.Printf("❌ 订阅 Joy 失败: %v", err)
		c.JSON(http.StatusBadGateway, ApiResponse{
			Status:  "error",
			Message: "No Joy data received",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   msg,
	})
}
