package motion

import (
	"errors"
	"fmt"
	"joybot/define"
	"joybot/joy"
	"log"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"
)

// PhaseGap 按下与松开之间的间隔
const PhaseGap = 100 * time.Millisecond

// 方向帧的摇杆幅度
const (
	moveAxisValue = 0.8
	turnAxisValue = 0.6
)

// BusyText 已有动作在执行时返回给调用方的文本
const BusyText = "Previous command is still in progress. Please wait."

// 停止踏步的结果文本
const (
	StopSentText   = "Stop walk in place command sent"
	StopFailedText = "Failed to send stop walk in place command"
)

// ErrBusy 已有动作在执行
var ErrBusy = errors.New("previous command is still in progress")

// State 序列器状态快照
type State struct {
	Kind      Kind      `json:"kind"`
	Seconds   float64   `json:"seconds"`
	Running   bool      `json:"running"`
	StartedAt time.Time `json:"startedAt"`
}

// Request 一次已解析的动作请求，构造后不再修改
type Request struct {
	Kind      Kind    `json:"kind"`
	Raw       string  `json:"raw"`
	Seconds   float64 `json:"seconds"`
	Defaulted bool    `json:"defaulted"`

	whole bool // 时长按整数渲染
}

// NewRequest 解析参数并构造请求，Idle 与未知类型返回错误
func NewRequest(kind Kind, raw string) (Request, error) {
	if _, ok := ruleFor(kind); !ok {
		return Request{}, fmt.Errorf("无效的动作类型：%s", kind)
	}
	seconds, defaulted, whole := interpret(kind, raw)
	return Request{Kind: kind, Raw: raw, Seconds: seconds, Defaulted: defaulted, whole: whole}, nil
}

// task 只用作完成时的身份比较
type task struct {
	Request
}

// Sequencer 保证同一时刻只执行一个动作，并按固定时序向手柄通道发送帧。
//
// 每个被接受的动作在独立的 goroutine 中执行到结束，不能取消，也不能等待；
// 调用方唯一能观察到的控制就是在执行期间被拒绝。这是已知限制，不要在此之上扩展。
type Sequencer struct {
	actions *joy.Actions
	sleep   func(time.Duration)

	mx        sync.Mutex // 保护以下字段，检查与启动必须在同一临界区
	observer  func(State)
	current   Kind
	seconds   float64
	running   *task
	startedAt time.Time
}

// NewSequencer 创建空闲状态的序列器，默认时长为 1.5 秒
func NewSequencer(actions *joy.Actions) *Sequencer {
	return &Sequencer{
		actions: actions,
		sleep:   time.Sleep,
		current: Idle,
		seconds: DefaultMoveSeconds,
	}
}

// SetObserver 设置状态变化回调，在状态锁之外调用
func (s *Sequencer) SetObserver(fn func(State)) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.observer = fn
}

// State 返回当前状态
func (s *Sequencer) State() State {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.stateLocked()
}

// IsRunning 是否有动作正在执行
func (s *Sequencer) IsRunning() bool {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.running != nil
}

func (s *Sequencer) stateLocked() State {
	return State{
		Kind:      s.current,
		Seconds:   s.seconds,
		Running:   s.running != nil,
		StartedAt: s.startedAt,
	}
}

func (s *Sequencer) notify(state State, observer func(State)) {
	if observer != nil {
		observer(state)
	}
}

// Start 接受一个动作请求并立即返回。已有动作执行中时返回 BusyText 和 ErrBusy，状态不变。
func (s *Sequencer) Start(kind Kind, raw string) (string, error) {
	req, err := NewRequest(kind, raw)
	if err != nil {
		return "", err
	}

	s.mx.Lock()
	if s.running != nil {
		current := s.current
		s.mx.Unlock()
		log.Printf("⏳ 机器人 %s 尚未完成，拒绝 %s %q", current.Description(), kind.Description(), raw)
		return BusyText, ErrBusy
	}

	t := &task{Request: req}
	s.current = req.Kind
	s.seconds = req.Seconds
	s.running = t
	s.startedAt = time.Now()
	state := s.stateLocked()
	observer := s.observer
	s.mx.Unlock()

	if req.Defaulted && raw != "" {
		log.Printf("ℹ️ 无法解析参数 %q，%s 使用默认时长 %ss", raw, kind.Description(), req.formatSeconds())
	}
	s.notify(state, observer)
	go s.run(t)

	return fmt.Sprintf("%s %s command sent (delay: %ss)", kind.Label(), describeParam(raw), req.formatSeconds()), nil
}

// Forward 前进，distance 如 "3步"、"2米"，返回确认文本或忙碌文本
func (s *Sequencer) Forward(distance string) string { return s.text(Forward, distance) }

// Backward 后退，参数格式同 Forward
func (s *Sequencer) Backward(distance string) string { return s.text(Backward, distance) }

// TurnLeft 左转，angle 如 "90度"
func (s *Sequencer) TurnLeft(angle string) string { return s.text(TurnLeft, angle) }

// TurnRight 右转，参数格式同 TurnLeft
func (s *Sequencer) TurnRight(angle string) string { return s.text(TurnRight, angle) }

// WalkInPlace 原地踏步，duration 如 "5秒"，最长 15 秒
func (s *Sequencer) WalkInPlace(duration string) string { return s.text(WalkInPlace, duration) }

func (s *Sequencer) text(kind Kind, raw string) string {
	text, _ := s.Start(kind, raw)
	return text
}

// StopWalkInPlace 无条件发送踏步开关帧，随后延迟松开。
// 不修改序列器状态，执行中调用会让记录的状态与设备实际状态不一致。
func (s *Sequencer) StopWalkInPlace() string {
	err := s.actions.StopWalk()
	s.actions.ReleaseAfter(PhaseGap)
	if err != nil {
		log.Printf("❌ 机器人 停下 发送失败: %v", err)
		return StopFailedText
	}
	log.Printf("🛑 机器人 停下")
	return StopSentText
}

func (s *Sequencer) run(t *task) {
	defer s.finish(t)

	d := toDuration(t.Seconds)
	if d <= 0 {
		d = toDuration(DefaultMoveSeconds)
	}

	switch t.Kind {
	case WalkInPlace:
		s.walkInPlace(d)
	case Forward, Backward, TurnLeft, TurnRight:
		s.move(t.Kind, d)
	}
}

// step 发送一帧，失败只记录日志，序列继续按时执行
func (s *Sequencer) step(kind Kind, phase string, send func() error) {
	if err := send(); err != nil {
		log.Printf("⚠️ 机器人 %s 阶段 %s 发送失败: %v", kind.Description(), phase, err)
	}
}

// 踏步需要在按下后立即松开，否则设备无法响应下一次开关
func (s *Sequencer) walkInPlace(d time.Duration) {
	s.step(WalkInPlace, "start", s.actions.StartWalk)
	s.sleep(PhaseGap)
	s.step(WalkInPlace, "release", s.actions.ReleaseAll)
	log.Printf("🚶 机器人 原地踏步（%s）", d)
	s.sleep(d)
	s.step(WalkInPlace, "stop", s.actions.StopWalk)
	s.sleep(PhaseGap)
	s.step(WalkInPlace, "release", s.actions.ReleaseAll)
}

func (s *Sequencer) move(kind Kind, d time.Duration) {
	s.step(kind, "start", s.actions.StartWalk)
	s.sleep(PhaseGap)
	s.step(kind, "release", s.actions.ReleaseAll)

	dir := directionFrame(kind)
	log.Printf("🤖 机器人 %s（%s）", kind.Description(), d)
	s.step(kind, "direction", func() error { return s.actions.Send(dir) })
	s.sleep(d)
	s.step(kind, "release", s.actions.ReleaseAll)
	s.sleep(PhaseGap)
	s.step(kind, "full-stop", s.actions.FullStop)
	s.sleep(PhaseGap)
	s.step(kind, "release", s.actions.ReleaseAll)
}

func directionFrame(kind Kind) joy.Frame {
	switch kind {
	case Forward:
		return joy.Released.Tilt(define.AXIS_LEFT_Y, moveAxisValue)
	case Backward:
		return joy.Released.Tilt(define.AXIS_LEFT_Y, -moveAxisValue)
	case TurnLeft:
		return joy.Released.Tilt(define.AXIS_RIGHT_X, turnAxisValue)
	case TurnRight:
		return joy.Released.Tilt(define.AXIS_RIGHT_X, -turnAxisValue)
	}
	return joy.Released
}

// finish 只有当自己仍是记录中的任务时才回到空闲，避免旧任务覆盖新状态
func (s *Sequencer) finish(t *task) {
	s.mx.Lock()
	if s.running != t {
		s.mx.Unlock()
		log.Printf("ℹ️ 旧的 %s 任务退出，当前任务已被替换，不修改状态", t.Kind.Description())
		return
	}
	s.running = nil
	s.current = Idle
	state := s.stateLocked()
	observer := s.observer
	s.mx.Unlock()

	log.Printf("✅ 机器人 %s 完成", t.Kind.Description())
	s.notify(state, observer)
}

// maxSeconds 超过该值的时长无法用 time.Duration 表示
const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

// toDuration 把秒数转换为 time.Duration，过大的值取最大时长
func toDuration(seconds float64) time.Duration {
	if seconds >= maxSeconds {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds * float64(time.Second))
}

// formatSeconds 按米计算的时长渲染为整数（"6"），其余渲染为最短小数且至少带一位小数（"1.5"、"5.0"），
// 很大或很小的值使用指数形式（"5e+16"）。
func (r Request) formatSeconds() string {
	if r.whole {
		return strconv.FormatFloat(r.Seconds, 'f', 0, 64)
	}
	return formatFloat(r.Seconds)
}

func formatFloat(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if v != 0 && (exp < -4 || exp >= 16) {
		return sci
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// describeParam 未给出参数时渲染为 None
func describeParam(raw string) string {
	if raw == "" {
		return "None"
	}
	return raw
}
