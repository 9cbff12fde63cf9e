package main

import (
	"fmt"
	"joybot/api"
	"joybot/cli"
	"joybot/communication"
	"joybot/config"
	"joybot/joy"
	"joybot/motion"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// 初始化服务
func initService() {
	log.Printf("🔧 服务配置：")
	log.Printf("   - rosbridge 地址: %s", config.Config.RosbridgeURL)
	log.Printf("   - 手柄话题: %s", config.Config.JoyTopic)
	log.Printf("   - Web 端口: %s", config.Config.WebPort)
	log.Printf("   - 踏步按键: %d, 停止按键: %d", config.Config.WalkButton, config.Config.StopButton)
	log.Printf("   - 通信超时: %s", config.Config.Timeout)

	log.Println("✅ 控制服务初始化完成")
}

func printUsage() {
	fmt.Println("Joy Motion Control Service")
	fmt.Println("Usage:")
	fmt.Println("  -rosbridge string    rosbridge 的 websocket 地址 (default: ws://127.0.0.1:9091)")
	fmt.Println("  -joy-topic string    虚拟手柄话题 (default: /joy)")
	fmt.Println("  -port string         Web 服务的端口 (default: 9099)")
	fmt.Println("  -walk-button int     踏步开关按键索引 (default: 4)")
	fmt.Println("  -stop-button int     停止按键索引 (default: 5)")
	fmt.Println("  -timeout duration    rosbridge 通信超时 (default: 5s)")
	fmt.Println("")
	fmt.Println("Environment Variables:")
	fmt.Println("  ROSBRIDGE_URL        rosbridge 的 websocket 地址")
	fmt.Println("  JOY_TOPIC            虚拟手柄话题")
	fmt.Println("  WEB_PORT             Web 服务的端口")
	fmt.Println("  WALK_BUTTON          踏步开关按键索引")
	fmt.Println("  STOP_BUTTON          停止按键索引")
	fmt.Println("  ROSBRIDGE_TIMEOUT    rosbridge 通信超时")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  ./joybot -rosbridge ws://192.168.1.20:9091")
	fmt.Println("  ROSBRIDGE_URL=ws://robot.local:9091 WEB_PORT=8080 ./joybot")
}

func main() {
	// 检查是否请求帮助
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		return
	}

	// 解析并验证配置
	config.Config = cli.ParseConfig()
	if err := config.Validate(config.Config); err != nil {
		log.Fatalf("❌ 配置无效: %v", err)
	}

	log.Printf("🚀 启动手柄动作控制服务")

	initService()

	comm := communication.NewRosbridgeClient(config.Config.RosbridgeURL, config.Config.Timeout)
	channel := joy.NewTopicChannel(comm, config.Config.JoyTopic, config.Config.Timeout)
	actions := joy.NewActions(channel, config.Config.WalkButton, config.Config.StopButton)

	server := api.NewServer(motion.NewSequencer(actions), joy.NewGestureManager(actions), channel, comm)
	server.SetEndpoints(config.Config.RosbridgeURL, config.Config.JoyTopic)
	defer server.Shutdown()

	// 设置 Gin 模式
	gin.SetMode(gin.ReleaseMode)

	// 创建 Gin 引擎
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // 允许的域，*表示允许所有
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 设置 API 路由
	server.SetupRoutes(r)

	// 启动服务器
	log.Printf("🌐 控制服务运行在 http://localhost:%s", config.Config.WebPort)
	log.Printf("📡 连接到 rosbridge: %s", config.Config.RosbridgeURL)
	log.Printf("🎮 手柄话题: %s", config.Config.JoyTopic)

	if err := r.Run(":" + config.Config.WebPort); err != nil {
		log.Fatalf("❌ 服务启动失败: %v", err)
	}
}
