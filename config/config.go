package config

import (
	"fmt"
	"joybot/define"
)

// Config 当前生效的全局配置，由 main 在启动时设置
var Config *define.Config

// Validate 检查配置是否可用
func Validate(cfg *define.Config) error {
	if cfg.RosbridgeURL == "" {
		return fmt.Errorf("没有设置 rosbridge 地址")
	}
	if cfg.JoyTopic == "" {
		return fmt.Errorf("没有设置手柄话题")
	}
	if err := define.ValidateButton(cfg.WalkButton); err != nil {
		return fmt.Errorf("踏步按键无效：%w", err)
	}
	if err := define.ValidateButton(cfg.StopButton); err != nil {
		return fmt.Errorf("停止按键无效：%w", err)
	}
	if cfg.WalkButton == cfg.StopButton {
		return fmt.Errorf("踏步按键与停止按键不能相同 (%d)", cfg.WalkButton)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("超时时间必须为正数")
	}
	return nil
}
