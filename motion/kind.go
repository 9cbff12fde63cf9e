package motion

import "fmt"

// Kind 当前动作类型，同一时刻只有一个
type Kind int

const (
	Idle        Kind = iota // 无动作
	Forward                 // 前进
	Backward                // 后退
	TurnLeft                // 左转
	TurnRight               // 右转
	WalkInPlace             // 原地踏步
)

var kindInfo = [...]struct {
	name, label, desc string
}{
	Idle:        {"idle", "Idle", "空闲"},
	Forward:     {"forward", "Forward", "前进"},
	Backward:    {"backward", "Backward", "后退"},
	TurnLeft:    {"turn_left", "Turn left", "左转"},
	TurnRight:   {"turn_right", "Turn right", "右转"},
	WalkInPlace: {"walk_in_place", "Walk in place", "原地踏步"},
}

func (k Kind) valid() bool { return k >= Idle && int(k) < len(kindInfo) }

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindInfo[k].name
}

// Label 用于返回给调用方的状态文本
func (k Kind) Label() string {
	if !k.valid() {
		return k.String()
	}
	return kindInfo[k].label
}

// Description 用于日志
func (k Kind) Description() string {
	if !k.valid() {
		return k.String()
	}
	return kindInfo[k].desc
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// ParseKind 把名称（如 "turn_left"）转换为 Kind
func ParseKind(name string) (Kind, bool) {
	for k := range kindInfo {
		if kindInfo[k].name == name {
			return Kind(k), true
		}
	}
	return Idle, false
}
