package joy

import (
	"fmt"
	"joybot/define"
)

// Frame 一次虚拟手柄输入快照：8 个摇杆值，11 个按键值（0/1）
type Frame struct {
	Axes    [define.JOY_AXES_LEN]float64
	Buttons [define.JOY_BUTTONS_LEN]int
}

// Released 松开所有按键、摇杆归零
var Released = Frame{}

// FrameFrom 从切片构造帧，长度必须与手柄一致
func FrameFrom(axes []float64, buttons []int) (Frame, error) {
	var f Frame
	if len(axes) != define.JOY_AXES_LEN {
		return f, fmt.Errorf("摇杆数据长度 %d 无效，需要 %d", len(axes), define.JOY_AXES_LEN)
	}
	if len(buttons) != define.JOY_BUTTONS_LEN {
		return f, fmt.Errorf("按键数据长度 %d 无效，需要 %d", len(buttons), define.JOY_BUTTONS_LEN)
	}
	copy(f.Axes[:], axes)
	for i, b := range buttons {
		if b != 0 && b != 1 {
			return f, fmt.Errorf("按键 %d 的值 %d 无效，只能是 0 或 1", i, b)
		}
		f.Buttons[i] = b
	}
	return f, nil
}

// Press 返回按下 idx 号按键后的帧
func (f Frame) Press(idx int) Frame {
	f.Buttons[idx] = 1
	return f
}

// Tilt 返回把 idx 号摇杆推到 v 后的帧
func (f Frame) Tilt(idx int, v float64) Frame {
	f.Axes[idx] = v
	return f
}

func (f Frame) IsReleased() bool { return f == Released }

func (f Frame) String() string {
	return fmt.Sprintf("axes=%v buttons=%v", f.Axes, f.Buttons)
}
