package communication

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// TopicInfo 一个 ROS 话题及其消息类型
type TopicInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Communicator 定义了与 rosbridge 服务进行通信的接口
type Communicator interface {
	// Publish 在共享连接上发布一条消息，必要时先建立连接并 advertise 话题
	Publish(ctx context.Context, topic, msgType string, msg any) error

	// SubscribeOnce 订阅话题并返回收到的第一条消息
	SubscribeOnce(ctx context.Context, topic, msgType string) (map[string]any, error)

	// GetTopics 通过 rosapi 获取所有话题及其类型
	GetTopics(ctx context.Context) ([]TopicInfo, error)

	// SetServiceURL 设置 rosbridge 服务的地址，下次连接时生效
	SetServiceURL(url string)

	// IsConnected 共享连接是否已建立
	IsConnected() bool

	// Close 关闭共享连接，下次 Publish 时会重新连接
	Close() error
}

// RosbridgeClient 通过 websocket 实现 rosbridge v2 协议
type RosbridgeClient struct {
	dialer  *websocket.Dialer
	timeout time.Duration

	mx         sync.Mutex
	serviceURL string
	conn       *websocket.Conn
	advertised map[string]bool
}

// NewRosbridgeClient 创建 rosbridge 客户端，连接在第一次 Publish 时建立。
// timeout 不大于 0 时使用 5 秒。
func NewRosbridgeClient(serviceURL string, timeout time.Duration) *RosbridgeClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RosbridgeClient{
		serviceURL: serviceURL,
		timeout:    timeout,
		dialer: &websocket.Dialer{
			HandshakeTimeout: timeout,
		},
		advertised: make(map[string]bool),
	}
}

var _ Communicator = &RosbridgeClient{}

func (c *RosbridgeClient) dial(ctx context.Context, url string) (*websocket.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	conn, _, err := c.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("连接 rosbridge 失败：%w", err)
	}
	return conn, nil
}

func (c *RosbridgeClient) deadline(ctx context.Context) time.Time {
	d := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		return ctxDeadline
	}
	return d
}

// ensureConn 在持有 mx 时调用
func (c *RosbridgeClient) ensureConn(ctx context.Context) (*websocket.Conn, error) {
	if c.conn != nil {
		return c.conn, nil
	}
	conn, err := c.dial(ctx, c.serviceURL)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.advertised = make(map[string]bool)
	return conn, nil
}

// dropConn 在持有 mx 时调用
func (c *RosbridgeClient) dropConn() {
	if c.conn == nil {
		return
	}
	c.conn.Close()
	c.conn = nil
}

func (c *RosbridgeClient) write(ctx context.Context, conn *websocket.Conn, op outgoing) error {
	conn.SetWriteDeadline(c.deadline(ctx))
	if err := conn.WriteJSON(op); err != nil {
		return fmt.Errorf("发送 %s 失败：%w", op.Op, err)
	}
	return nil
}

// Publish 在共享连接上发布消息，话题在每条连接上只 advertise 一次。
// 写入失败时丢弃连接，下次调用重新连接。
func (c *RosbridgeClient) Publish(ctx context.Context, topic, msgType string, msg any) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	conn, err := c.ensureConn(ctx)
	if err != nil {
		return err
	}

	if !c.advertised[topic] {
		if err := c.write(ctx, conn, advertiseOp(topic, msgType)); err != nil {
			c.dropConn()
			return err
		}
		c.advertised[topic] = true
	}

	if err := c.write(ctx, conn, publishOp(topic, msg)); err != nil {
		c.dropConn()
		return err
	}
	return nil
}

// roundTrip 在一条独立连接上发送 op，并读取直到 match 返回 true。
// 独立连接不会阻塞共享连接上的发布。
func (c *RosbridgeClient) roundTrip(ctx context.Context, op outgoing, match func(*incoming) bool) (*incoming, error) {
	c.mx.Lock()
	url := c.serviceURL
	c.mx.Unlock()

	conn, err := c.dial(ctx, url)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := c.write(ctx, conn, op); err != nil {
		return nil, err
	}

	conn.SetReadDeadline(c.deadline(ctx))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("读取 rosbridge 响应失败：%w", err)
		}
		in, err := parseIncoming(data)
		if err != nil {
			if !errors.Is(err, errNotJSON) {
				log.Printf("⚠️ 无法解析 rosbridge 消息: %v", err)
			}
			continue
		}
		if in.Op == "status" && in.Level == "error" && (in.ID == "" || in.ID == op.ID) {
			return nil, &StatusError{Level: in.Level, Msg: statusText(in.Msg)}
		}
		if match(in) {
			if op.Op == "subscribe" {
				if err := c.write(ctx, conn, unsubscribeOp(op.ID, op.Topic)); err != nil {
					log.Printf("⚠️ 取消订阅 %s 失败: %v", op.Topic, err)
				}
			}
			return in, nil
		}
	}
}

// SubscribeOnce 在独立连接上订阅 topic，收到第一条消息后取消订阅并返回
func (c *RosbridgeClient) SubscribeOnce(ctx context.Context, topic, msgType string) (map[string]any, error) {
	op := subscribeOp(nextID("subscribe"), topic, msgType)
	in, err := c.roundTrip(ctx, op, func(in *incoming) bool {
		return in.Op == "publish" && in.Topic == topic
	})
	if err != nil {
		return nil, err
	}

	var msg map[string]any
	if err := json.Unmarshal(in.Msg, &msg); err != nil {
		return nil, fmt.Errorf("解析 %s 消息失败：%w", topic, err)
	}
	return msg, nil
}

type topicsResponse struct {
	Topics []string `json:"topics"`
	Types  []string `json:"types"`
}

// GetTopics 调用 /rosapi/topics 服务获取话题列表
func (c *RosbridgeClient) GetTopics(ctx context.Context) ([]TopicInfo, error) {
	op := callServiceOp(nextID("call_service"), "/rosapi/topics", map[string]any{})
	in, err := c.roundTrip(ctx, op, func(in *incoming) bool {
		return in.Op == "service_response" && in.ID == op.ID
	})
	if err != nil {
		return nil, err
	}
	if in.Result != nil && !*in.Result {
		return nil, fmt.Errorf("rosapi/topics 调用失败：%s", string(in.Values))
	}

	var resp topicsResponse
	if err := json.Unmarshal(in.Values, &resp); err != nil {
		return nil, fmt.Errorf("解析话题列表失败：%w", err)
	}

	topics := make([]TopicInfo, 0, len(resp.Topics))
	for i, name := range resp.Topics {
		info := TopicInfo{Name: name}
		if i < len(resp.Types) {
			info.Type = resp.Types[i]
		}
		topics = append(topics, info)
	}
	return topics, nil
}

// SetServiceURL 修改服务地址，地址变化时断开共享连接
func (c *RosbridgeClient) SetServiceURL(url string) {
	c.mx.Lock()
	defer c.mx.Unlock()
	if url == c.serviceURL {
		return
	}
	c.serviceURL = url
	c.dropConn()
}

func (c *RosbridgeClient) IsConnected() bool {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.conn != nil
}

// Close 发送关闭帧并断开共享连接，未连接时什么也不做
func (c *RosbridgeClient) Close() error {
	c.mx.Lock()
	defer c.mx.Unlock()
	if c.conn == nil {
		return nil
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	err := c.conn.Close()
	c.conn = nil
	return err
}
