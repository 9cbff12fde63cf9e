package api

import (
	"context"
	"io"
	"joybot/communication"
	"joybot/joy"
	"joybot/motion"
	"log"
	"time"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gin-gonic/gin"
)

// JoyReader 读取当前的手柄消息
type JoyReader interface {
	Latest(ctx context.Context) (*joy.Message, error)
}

// TopicLister 列出 ROS 话题
type TopicLister interface {
	GetTopics(ctx context.Context) ([]communication.TopicInfo, error)
	IsConnected() bool
}

// Server API 服务器结构体
type Server struct {
	sequencer *motion.Sequencer
	gestures  *joy.GestureManager
	joyReader JoyReader
	topics    TopicLister
	events    *sse.Server

	rosbridgeURL string
	joyTopic     string
	startTime    time.Time
	version      string
}

// NewServer 创建 API 服务器，并把序列器状态变化推送到 /events/state
func NewServer(sequencer *motion.Sequencer, gestures *joy.GestureManager, joyReader JoyReader, topics TopicLister) *Server {
	s := &Server{
		sequencer: sequencer,
		gestures:  gestures,
		joyReader: joyReader,
		topics:    topics,
		events: sse.NewServer(&sse.Options{
			Logger: log.New(io.Discard, "", 0),
		}),
		startTime: time.Now(),
		version:   "1.0.0",
	}
	sequencer.SetObserver(s.publishState)
	return s
}

// SetEndpoints 记录连接信息，用于系统状态展示
func (s *Server) SetEndpoints(rosbridgeURL, joyTopic string) {
	s.rosbridgeURL = rosbridgeURL
	s.joyTopic = joyTopic
}

// SetupRoutes 设置 API 路由
func (s *Server) SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		// 动作路由
		motions := api.Group("/motion")
		{
			motions.GET("/status", s.handleMotionStatus) // 获取动作状态
			motions.POST("/stop", s.handleStop)          // 停止踏步
			motions.POST("/:kind", s.handleMotion)       // 前进、后退、左转、右转、原地踏步
		}

		// 固定动作路由
		gestures := api.Group("/gestures")
		{
			gestures.GET("", s.handleGetGestures)           // 获取固定动作列表
			gestures.POST("/:name", s.handlePerformGesture) // 执行固定动作
		}

		// ROS 路由
		api.GET("/topics", s.handleGetTopics) // 获取所有话题及其类型
		api.GET("/joy", s.handleGetJoy)       // 订阅一条 Joy 消息

		// 系统路由
		system := api.Group("/system")
		{
			system.GET("/status", s.handleSystemStatus) // 获取系统状态
			system.GET("/health", s.handleHealthCheck)  // 健康检查
		}
	}

	// 状态事件流
	r.GET("/events/state", gin.WrapH(s.events))
}

// Shutdown 关闭事件流
func (s *Server) Shutdown() {
	s.sequencer.SetObserver(nil)
	s.events.Shutdown()
}
