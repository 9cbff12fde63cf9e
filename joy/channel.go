package joy

import (
	"context"
	"fmt"
	"joybot/communication"
	"joybot/define"
	"time"
)

// Channel 向远端设备发送一帧手柄数据。
// Publish 返回 nil 即视为已确认。
type Channel interface {
	Publish(axes []float64, buttons []int) error
	Close() error
}

// TopicChannel 通过 rosbridge 的 Joy 话题实现 Channel
type TopicChannel struct {
	comm    communication.Communicator
	topic   string
	timeout time.Duration
}

var _ Channel = &TopicChannel{}

// NewTopicChannel 创建在 topic 上发布 Joy 消息的通道，timeout 约束每次发布和订阅
func NewTopicChannel(comm communication.Communicator, topic string, timeout time.Duration) *TopicChannel {
	return &TopicChannel{comm: comm, topic: topic, timeout: timeout}
}

func (c *TopicChannel) Topic() string { return c.topic }

// Publish 校验帧长度后发布一条 Joy 消息，返回 nil 表示已发送
func (c *TopicChannel) Publish(axes []float64, buttons []int) error {
	f, err := FrameFrom(axes, buttons)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	if err := c.comm.Publish(ctx, c.topic, define.JOY_MSG_TYPE, NewMessage(f, time.Now())); err != nil {
		return fmt.Errorf("发布 %s 失败：%w", c.topic, err)
	}
	return nil
}

// Close 关闭底层连接，下次发布时重新连接
func (c *TopicChannel) Close() error { return c.comm.Close() }

// Latest 订阅话题并返回当前的一条 Joy 消息
func (c *TopicChannel) Latest(ctx context.Context) (*Message, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	raw, err := c.comm.SubscribeOnce(ctx, c.topic, define.JOY_MSG_TYPE)
	if err != nil {
		return nil, err
	}
	return DecodeMessage(raw)
}
