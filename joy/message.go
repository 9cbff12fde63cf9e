package joy

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Stamp ROS 时间戳
type Stamp struct {
	Secs  int64 `json:"secs"`
	Nsecs int64 `json:"nsecs"`
}

// Header sensor_msgs/Joy 消息头
type Header struct {
	Stamp   Stamp  `json:"stamp"`
	FrameID string `json:"frame_id"`
}

// Message sensor_msgs/Joy 消息
type Message struct {
	Header  Header    `json:"header"`
	Axes    []float64 `json:"axes"`
	Buttons []int     `json:"buttons"`
}

// NewMessage 用帧和时间戳构造 Joy 消息
func NewMessage(f Frame, now time.Time) Message {
	return Message{
		Header: Header{
			Stamp: Stamp{Secs: now.Unix(), Nsecs: int64(now.Nanosecond())},
		},
		Axes:    append([]float64(nil), f.Axes[:]...),
		Buttons: append([]int(nil), f.Buttons[:]...),
	}
}

// DecodeMessage 把 rosbridge 返回的原始 map 解码为 Message
func DecodeMessage(raw map[string]any) (*Message, error) {
	var msg Message
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &msg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("解码 Joy 消息失败：%w", err)
	}
	return &msg, nil
}
