package communication

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"sync/atomic"
)

var lastID int64

func nextID(prefix string) string {
	id := atomic.AddInt64(&lastID, 1)
	return prefix + "_" + strconv.FormatInt(id, 36)
}

// outgoing 是发往 rosbridge 的一条操作消息
type outgoing struct {
	Op      string `json:"op"`
	ID      string `json:"id,omitempty"`
	Topic   string `json:"topic,omitempty"`
	Type    string `json:"type,omitempty"`
	Msg     any    `json:"msg,omitempty"`
	Service string `json:"service,omitempty"`
	Args    any    `json:"args,omitempty"`
}

// incoming 是从 rosbridge 收到的消息，只解析需要的字段
type incoming struct {
	Op      string          `json:"op"`
	ID      string          `json:"id"`
	Topic   string          `json:"topic"`
	Service string          `json:"service"`
	Msg     json.RawMessage `json:"msg"`
	Values  json.RawMessage `json:"values"`
	Result  *bool           `json:"result"`
	Level   string          `json:"level"`
}

// StatusError rosbridge 通过 status 操作返回的错误
type StatusError struct {
	Level string
	Msg   string
}

func (e *StatusError) Error() string { return "rosbridge " + e.Level + ": " + e.Msg }

// statusText 取出 status 消息的文本，msg 不是字符串时保留原始 JSON
func statusText(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return string(raw)
	}
	return text
}

var errNotJSON = errors.New("not a json object")

func parseIncoming(data []byte) (*incoming, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return nil, errNotJSON
	}
	var in incoming
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	if in.Op == "" {
		return nil, errors.New("missing op: " + string(data))
	}
	return &in, nil
}

func advertiseOp(topic, msgType string) outgoing {
	return outgoing{Op: "advertise", ID: nextID("advertise"), Topic: topic, Type: msgType}
}

func publishOp(topic string, msg any) outgoing {
	return outgoing{Op: "publish", Topic: topic, Msg: msg}
}

func subscribeOp(id, topic, msgType string) outgoing {
	return outgoing{Op: "subscribe", ID: id, Topic: topic, Type: msgType}
}

func unsubscribeOp(id, topic string) outgoing {
	return outgoing{Op: "unsubscribe", ID: id, Topic: topic}
}

func callServiceOp(id, service string, args any) outgoing {
	return outgoing{Op: "call_service", ID: id, Service: service, Args: args}
}
