package joy

import (
	"fmt"
	"joybot/define"
	"log"
	"sort"
	"sync"
	"time"
)

// Gesture 一次性固定动作：发送一帧，随后延迟松开
type Gesture struct {
	Name         string        `json:"name"`
	Label        string        `json:"label"`
	Description  string        `json:"description"`
	Frame        Frame         `json:"-"`
	ReleaseAfter time.Duration `json:"releaseAfter"`

	// FailLabel 失败文本中使用的名称，为空时使用 Label
	FailLabel string `json:"-"`
}

func (g Gesture) failLabel() string {
	if g.FailLabel != "" {
		return g.FailLabel
	}
	return g.Label
}

// DefaultGestures 机器人支持的固定动作
func DefaultGestures() []Gesture {
	rt := Released.Tilt(define.AXIS_RT, -1.0)
	return []Gesture{
		{
			Name:         "stand_up",
			Label:        "Stand up",
			Description:  "站起来",
			Frame:        Released.Press(define.BUTTON_LEFT_STICK),
			ReleaseAfter: 100 * time.Millisecond,
			FailLabel:    "stand up",
		},
		{
			Name:         "turn_waist",
			Label:        "Turn waist",
			Description:  "扭腰",
			Frame:        rt.Press(define.BUTTON_A),
			ReleaseAfter: time.Second,
			FailLabel:    "turn waist",
		},
		{
			Name:         "split",
			Label:        "Split",
			Description:  "劈叉、一字马或分腿",
			Frame:        rt.Press(define.BUTTON_B),
			ReleaseAfter: time.Second,
		},
		{
			Name:         "balance",
			Label:        "Maintain balance",
			Description:  "左右摇摆或平衡",
			Frame:        rt.Press(define.BUTTON_X),
			ReleaseAfter: time.Second,
		},
		{
			Name:         "leg_stretch",
			Label:        "Leg stretches",
			Description:  "压腿或拉伸",
			Frame:        rt.Press(define.BUTTON_Y),
			ReleaseAfter: time.Second,
		},
	}
}

// GestureManager 管理固定动作。
// 固定动作不经过单次执行的动作序列器，可以与其它动作交错执行。
type GestureManager struct {
	actions  *Actions
	mx       sync.RWMutex
	gestures map[string]Gesture
}

// NewGestureManager 创建管理器并注册默认动作
func NewGestureManager(actions *Actions) *GestureManager {
	m := &GestureManager{
		actions:  actions,
		gestures: make(map[string]Gesture),
	}
	for _, g := range DefaultGestures() {
		m.Register(g)
	}
	return m
}

// Register 注册动作，同名动作会被覆盖
func (m *GestureManager) Register(g Gesture) {
	m.mx.Lock()
	defer m.mx.Unlock()
	if _, exists := m.gestures[g.Name]; exists {
		log.Printf("⚠️ 动作 %s 已注册，将被覆盖", g.Name)
	}
	m.gestures[g.Name] = g
}

// Get 按名称查找动作
func (m *GestureManager) Get(name string) (Gesture, bool) {
	m.mx.RLock()
	defer m.mx.RUnlock()
	g, ok := m.gestures[name]
	return g, ok
}

// List 按名称排序返回所有动作
func (m *GestureManager) List() []Gesture {
	m.mx.RLock()
	defer m.mx.RUnlock()
	list := make([]Gesture, 0, len(m.gestures))
	for _, g := range m.gestures {
		list = append(list, g)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// ErrUnknownGesture 请求了未注册的动作
type ErrUnknownGesture struct{ Name string }

func (e *ErrUnknownGesture) Error() string { return fmt.Sprintf("动作 %s 未注册", e.Name) }

// Perform 执行动作并返回状态文本。无论发送是否成功都会安排松开。
func (m *GestureManager) Perform(name string) (string, error) {
	g, ok := m.Get(name)
	if !ok {
		return "", &ErrUnknownGesture{Name: name}
	}

	err := m.actions.Send(g.Frame)
	m.actions.ReleaseAfter(g.ReleaseAfter)
	if err != nil {
		log.Printf("❌ 机器人 %s 发送失败: %v", g.Description, err)
		return fmt.Sprintf("Failed to send %s command", g.failLabel()), nil
	}
	log.Printf("🤖 机器人 %s", g.Description)
	return fmt.Sprintf("%s command sent", g.Label), nil
}
