package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"joybot/motion"
	"log"
	"net/http"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gin-gonic/gin"
)

var motionKinds = []string{
	motion.Forward.String(),
	motion.Backward.String(),
	motion.TurnLeft.String(),
	motion.TurnRight.String(),
	motion.WalkInPlace.String(),
}

// handleMotion 执行动作，已有动作执行中时返回 409
func (s *Server) handleMotion(c *gin.Context) {
	name := c.Param("kind")
	kind, ok := motion.ParseKind(name)
	if !ok || kind == motion.Idle {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  fmt.Sprintf("无效的动作类型：%s，可用动作：%v", name, motionKinds),
		})
		return
	}

	var req MotionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "无效的动作请求：" + err.Error(),
		})
		return
	}

	text, err := s.sequencer.Start(kind, req.Param)
	if errors.Is(err, motion.ErrBusy) {
		c.JSON(http.StatusConflict, ApiResponse{
			Status:  "busy",
			Message: text,
			Data:    s.sequencer.State(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ApiResponse{
			Status: "error",
			Error:  fmt.Sprintf("启动动作失败：%v", err),
		})
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status:  "success",
		Message: text,
		Data:    s.sequencer.State(),
	})
}

// handleStop 停止踏步，无论当前状态如何都会执行
func (s *Server) handleStop(c *gin.Context) {
	text := s.sequencer.StopWalkInPlace()
	status := "success"
	if text != motion.StopSentText {
		status = "error"
	}
	c.JSON(http.StatusOK, ApiResponse{
		Status:  status,
		Message: text,
	})
}

// handleMotionStatus 获取动作状态
func (s *Server) handleMotionStatus(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data: MotionStatusResponse{
			State: s.sequencer.State(),
			Kinds: motionKinds,
		},
	})
}

// publishState 推送状态到事件流
func (s *Server) publishState(state motion.State) {
	data, err := json.Marshal(state)
	if err != nil {
		log.Printf("❌ 序列化动作状态失败: %v", err)
		return
	}
	s.events.SendMessage("/events/state", sse.SimpleMessage(string(data)))
}
