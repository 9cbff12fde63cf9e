package joy

import (
	"log"
	"time"
)

// Actions 构造并发送单帧动作。所有方法都是无状态的，
// 每次发送后立即关闭通道（按次连接）。
type Actions struct {
	ch         Channel
	walkButton int
	stopButton int
	afterFunc  func(d time.Duration, f func()) *time.Timer
}

// NewActions walkButton 是踏步开关按键，stopButton 是停止按键
func NewActions(ch Channel, walkButton, stopButton int) *Actions {
	return &Actions{
		ch:         ch,
		walkButton: walkButton,
		stopButton: stopButton,
		afterFunc:  time.AfterFunc,
	}
}

// Send 发送一帧并关闭通道
func (a *Actions) Send(f Frame) error {
	err := a.ch.Publish(f.Axes[:], f.Buttons[:])
	if closeErr := a.ch.Close(); closeErr != nil {
		log.Printf("⚠️ 关闭手柄通道失败: %v", closeErr)
	}
	return err
}

// WalkToggleFrame 开始踏步与停止踏步是同一帧（设备内部切换状态）
func (a *Actions) WalkToggleFrame() Frame { return Released.Press(a.walkButton) }

func (a *Actions) FullStopFrame() Frame { return Released.Press(a.stopButton) }

// StartWalk 按下踏步开关
func (a *Actions) StartWalk() error { return a.Send(a.WalkToggleFrame()) }

// StopWalk 再次按下踏步开关，与 StartWalk 发送同一帧
func (a *Actions) StopWalk() error { return a.Send(a.WalkToggleFrame()) }

// FullStop 按下停止键
func (a *Actions) FullStop() error { return a.Send(a.FullStopFrame()) }

// ReleaseAll 松开所有按键并让摇杆归零
func (a *Actions) ReleaseAll() error { return a.Send(Released) }

// ReleaseAfter 在独立的定时器上延迟松开所有按键，不等待结果
func (a *Actions) ReleaseAfter(d time.Duration) {
	a.afterFunc(d, func() {
		if err := a.ReleaseAll(); err != nil {
			log.Printf("❌ 延迟松开按键失败: %v", err)
		}
	})
}
