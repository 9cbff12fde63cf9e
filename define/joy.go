package define

import "fmt"

// 虚拟手柄帧的固定长度
const (
	JOY_AXES_LEN    = 8
	JOY_BUTTONS_LEN = 11
)

// JOY_MSG_TYPE 虚拟手柄话题的消息类型
const JOY_MSG_TYPE = "sensor_msgs/Joy"

// 手柄按键索引（Xbox 布局）
const (
	BUTTON_A           = 0
	BUTTON_B           = 1
	BUTTON_X           = 2
	BUTTON_Y           = 3
	BUTTON_LB          = 4
	BUTTON_RB          = 5
	BUTTON_BACK        = 6
	BUTTON_START       = 7
	BUTTON_POWER       = 8
	BUTTON_LEFT_STICK  = 9
	BUTTON_RIGHT_STICK = 10
)

// 手柄摇杆索引
const (
	AXIS_LEFT_X  = 0
	AXIS_LEFT_Y  = 1 // 前后
	AXIS_LT      = 2
	AXIS_RIGHT_X = 3 // 左右转
	AXIS_RIGHT_Y = 4
	AXIS_RT      = 5
)

// ValidateButton 检查按键索引是否在手柄范围内
func ValidateButton(idx int) error {
	if idx < 0 || idx >= JOY_BUTTONS_LEN {
		return fmt.Errorf("按键索引 %d 超出范围 [0, %d)", idx, JOY_BUTTONS_LEN)
	}
	return nil
}
