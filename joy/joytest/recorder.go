// Package joytest 提供记录发送帧的 Channel 实现，供测试使用。
package joytest

import (
	"joybot/joy"
	"sync"
	"time"
)

// Sent 一次发送记录
type Sent struct {
	Frame joy.Frame
	At    time.Time
}

// Recorder 记录所有发送的帧
type Recorder struct {
	mx     sync.Mutex
	sent   []Sent
	closes int
	err    error
}

var _ joy.Channel = &Recorder{}

func NewRecorder() *Recorder { return &Recorder{} }

// Publish 校验并记录一帧，SetError 设置的错误优先返回
func (r *Recorder) Publish(axes []float64, buttons []int) error {
	f, err := joy.FrameFrom(axes, buttons)
	if err != nil {
		return err
	}
	r.mx.Lock()
	defer r.mx.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, Sent{Frame: f, At: time.Now()})
	return nil
}

func (r *Recorder) Close() error {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.closes++
	return nil
}

// SetError 让后续的 Publish 返回 err，传 nil 恢复
func (r *Recorder) SetError(err error) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.err = err
}

func (r *Recorder) Sent() []Sent {
	r.mx.Lock()
	defer r.mx.Unlock()
	return append([]Sent(nil), r.sent...)
}

// Frames 按发送顺序返回所有帧
func (r *Recorder) Frames() []joy.Frame {
	r.mx.Lock()
	defer r.mx.Unlock()
	frames := make([]joy.Frame, 0, len(r.sent))
	for _, s := range r.sent {
		frames = append(frames, s.Frame)
	}
	return frames
}

func (r *Recorder) Closes() int {
	r.mx.Lock()
	defer r.mx.Unlock()
	return r.closes
}
