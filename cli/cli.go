package cli

import (
	"flag"
	"joybot/define"
	"log"
	"os"
	"strconv"
	"time"
)

// 解析配置
func ParseConfig() *define.Config {
	// flag.CommandLine 出错时直接退出，不会返回错误
	cfg, _ := ParseConfigFrom(flag.CommandLine, os.Args[1:])
	return cfg
}

// ParseConfigFrom 使用给定的 FlagSet 解析参数，随后用环境变量覆盖
func ParseConfigFrom(fs *flag.FlagSet, args []string) (*define.Config, error) {
	cfg := &define.Config{}

	// 命令行参数
	fs.StringVar(&cfg.RosbridgeURL, "rosbridge", "ws://127.0.0.1:9091", "rosbridge 服务的 websocket 地址")
	fs.StringVar(&cfg.JoyTopic, "joy-topic", "/joy", "虚拟手柄话题")
	fs.StringVar(&cfg.WebPort, "port", "9099", "Web 服务的端口")
	fs.IntVar(&cfg.WalkButton, "walk-button", define.BUTTON_LB, "踏步开关按键索引")
	fs.IntVar(&cfg.StopButton, "stop-button", define.BUTTON_RB, "停止按键索引")
	fs.DurationVar(&cfg.Timeout, "timeout", 5*time.Second, "rosbridge 通信超时")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// 环境变量覆盖命令行参数
	if envURL := os.Getenv("ROSBRIDGE_URL"); envURL != "" {
		cfg.RosbridgeURL = envURL
	}
	if envTopic := os.Getenv("JOY_TOPIC"); envTopic != "" {
		cfg.JoyTopic = envTopic
	}
	if envPort := os.Getenv("WEB_PORT"); envPort != "" {
		cfg.WebPort = envPort
	}
	envInt("WALK_BUTTON", &cfg.WalkButton)
	envInt("STOP_BUTTON", &cfg.StopButton)
	if envTimeout := os.Getenv("ROSBRIDGE_TIMEOUT"); envTimeout != "" {
		if d, err := time.ParseDuration(envTimeout); err == nil {
			cfg.Timeout = d
		} else {
			log.Printf("⚠️ 无法解析 ROSBRIDGE_TIMEOUT=%q: %v，使用 %s", envTimeout, err, cfg.Timeout)
		}
	}

	return cfg, nil
}

func envInt(name string, dst *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ 无法解析 %s=%q: %v，使用 %d", name, v, err, *dst)
		return
	}
	*dst = n
}
