package api

import (
	"joybot/communication"
	"joybot/define"
	"joybot/joy"
	"joybot/motion"
	"time"
)

// ApiResponse 统一 API 响应格式
type ApiResponse = define.ApiResponse

// ===== 动作相关模型 =====

// MotionRequest 动作请求，param 为空时使用默认时长
type MotionRequest struct {
	Param string `json:"param"`
}

// MotionStatusResponse 动作状态响应
type MotionStatusResponse struct {
	motion.State
	Kinds []string `json:"kinds"`
}

// ===== 固定动作相关模型 =====

// GestureListResponse 固定动作列表响应
type GestureListResponse struct {
	Gestures []joy.Gesture `json:"gestures"`
	Total    int           `json:"total"`
}

// ===== ROS 相关模型 =====

// TopicsResponse 话题列表响应
type TopicsResponse struct {
	Topics []string `json:"topics"`
	Types  []string `json:"types"`
}

func newTopicsResponse(list []communication.TopicInfo) TopicsResponse {
	resp := TopicsResponse{
		Topics: make([]string, 0, len(list)),
		Types:  make([]string, 0, len(list)),
	}
	for _, t := range list {
		resp.Topics = append(resp.Topics, t.Name)
		resp.Types = append(resp.Types, t.Type)
	}
	return resp
}

// ===== 系统相关模型 =====

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Connected bool      `json:"connected"`
}

// SystemStatusResponse 系统状态响应
type SystemStatusResponse struct {
	Motion    motion.State  `json:"motion"`
	Gestures  int           `json:"gestures"`
	Uptime    time.Duration `json:"uptime"`
	Rosbridge string        `json:"rosbridge"`
	JoyTopic  string        `json:"joyTopic"`
}
