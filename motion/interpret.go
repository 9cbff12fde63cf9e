package motion

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// MaxWalkInPlaceSeconds 原地踏步的最长时间。其它动作不设上限。
const MaxWalkInPlaceSeconds = 15.0

// 各动作未给出参数时的默认时长（秒）
const (
	DefaultMoveSeconds        = 1.5
	DefaultTurnSeconds        = 3.0
	DefaultWalkInPlaceSeconds = 5.0
)

type unitRule struct {
	pattern  *regexp.Regexp
	perUnit  map[string]float64 // 每单位对应的秒数
	whole    map[string]bool    // 按整数秒计算的单位
	fallback float64
	max      float64 // 0 表示不限制
}

// 数字接受任意 Unicode 十进制数字（如全角 ４），空白包括全角空格。
// 中文单位后不做限制，英文单位后不能紧跟字母。
func unitPattern(cjk, latin string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^(\p{Nd}+)[\s\v\x{85}\p{Z}]*(?:(` + cjk + `)|(` + latin + `)(?:[^a-z]|$))`)
}

var (
	moveRule = unitRule{
		pattern: unitPattern(`步|米`, `steps?|meters?|m`),
		perUnit: map[string]float64{
			"步": 0.5, "step": 0.5, "steps": 0.5,
			"米": 3.0, "m": 3.0, "meter": 3.0, "meters": 3.0,
		},
		whole:    map[string]bool{"米": true, "m": true, "meter": true, "meters": true},
		fallback: DefaultMoveSeconds,
	}
	turnRule = unitRule{
		pattern: unitPattern(`度|°`, `degrees?|deg`),
		perUnit: map[string]float64{
			"度": 3.0 / 90.0, "°": 3.0 / 90.0, "deg": 3.0 / 90.0, "degree": 3.0 / 90.0, "degrees": 3.0 / 90.0,
		},
		fallback: DefaultTurnSeconds,
	}
	walkRule = unitRule{
		pattern: unitPattern(`秒`, `seconds?|secs?|s`),
		perUnit: map[string]float64{
			"秒": 1, "s": 1, "sec": 1, "secs": 1, "second": 1, "seconds": 1,
		},
		fallback: DefaultWalkInPlaceSeconds,
		max:      MaxWalkInPlaceSeconds,
	}
)

func ruleFor(kind Kind) (unitRule, bool) {
	switch kind {
	case Forward, Backward:
		return moveRule, true
	case TurnLeft, TurnRight:
		return turnRule, true
	case WalkInPlace:
		return walkRule, true
	}
	return unitRule{}, false
}

// Interpret 把 "3步"、"2米"、"90度"、"5秒" 这样的参数转换为动作时长（秒）。
// 参数为空或不匹配时返回该动作的默认值，defaulted 为 true；不会返回错误。
func Interpret(kind Kind, raw string) (seconds float64, defaulted bool) {
	seconds, defaulted, _ = interpret(kind, raw)
	return seconds, defaulted
}

// interpret 额外返回时长是否为整数秒（按米计算的距离），用于渲染确认文本
func interpret(kind Kind, raw string) (seconds float64, defaulted, whole bool) {
	rule, ok := ruleFor(kind)
	if !ok {
		return DefaultMoveSeconds, true, false
	}

	m := rule.pattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return rule.fallback, true, false
	}
	value, err := strconv.ParseFloat(asciiDigits(m[1]), 64)
	if err != nil {
		return rule.fallback, true, false
	}
	unit := m[2]
	if unit == "" {
		unit = strings.ToLower(m[3])
	}
	perUnit, ok := rule.perUnit[unit]
	if !ok {
		return rule.fallback, true, false
	}

	if rule.max > 0 && value > rule.max {
		value = rule.max
	}
	return value * perUnit, false, rule.whole[unit]
}

// asciiDigits 把任意 Unicode 十进制数字转换为 ASCII 数字。
// 十进制数字在码表中按 0-9 连续排列，向前找到该段的起点即可得到数值。
func asciiDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		start := r
		for unicode.IsDigit(start - 1) {
			start--
		}
		b.WriteByte(byte('0' + (r-start)%10))
	}
	return b.String()
}
