package define

import "time"

// 配置结构体
type Config struct {
	RosbridgeURL string        // rosbridge websocket 地址，例如 ws://127.0.0.1:9091
	JoyTopic     string        // 虚拟手柄话题
	WebPort      string        // Web 服务端口
	WalkButton   int           // 踏步开关按键（按一次开始，再按一次停止）
	StopButton   int           // 停止按键，必须与踏步按键不同
	Timeout      time.Duration // 与 rosbridge 通信的超时时间
}

// API 响应结构体
type ApiResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
