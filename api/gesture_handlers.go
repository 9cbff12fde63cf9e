package api

import (
	"errors"
	"joybot/joy"
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleGetGestures 获取固定动作列表
func (s *Server) handleGetGestures(c *gin.Context) {
	list := s.gestures.List()
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data: GestureListResponse{
			Gestures: list,
			Total:    len(list),
		},
	})
}

// handlePerformGesture 执行固定动作
func (s *Server) handlePerformGesture(c *gin.Context) {
	name := c.Param("name")

	text, err := s.gestures.Perform(name)
	var unknown *joy.ErrUnknownGesture
	if errors.As(err, &unknown) {
		c.JSON(http.StatusNotFound, ApiResponse{
			Status: "error",
			Error:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status:  "success",
		Message: text,
	})
}
