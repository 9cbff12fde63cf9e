package joy_test

import (
	"joybot/define"
	"joybot/joy"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameFrom(t *testing.T) {
	_, err := joy.FrameFrom(make([]float64, 7), make([]int, 11))
	assert.Error(t, err)

	_, err = joy.FrameFrom(make([]float64, 8), make([]int, 10))
	assert.Error(t, err)

	buttons := make([]int, 11)
	buttons[2] = 2
	_, err = joy.FrameFrom(make([]float64, 8), buttons)
	assert.Error(t, err)

	axes := make([]float64, 8)
	axes[define.AXIS_LEFT_Y] = 0.8
	buttons[2] = 1
	f, err := joy.FrameFrom(axes, buttons)
	require.NoError(t, err)
	assert.Equal(t, 0.8, f.Axes[define.AXIS_LEFT_Y])
	assert.Equal(t, 1, f.Buttons[2])
	assert.False(t, f.IsReleased())
}

func TestFrame_PressTilt(t *testing.T) {
	f := joy.Released.Press(define.BUTTON_LB).Tilt(define.AXIS_RT, -1)

	assert.Equal(t, 1, f.Buttons[define.BUTTON_LB])
	assert.Equal(t, -1.0, f.Axes[define.AXIS_RT])
	assert.True(t, joy.Released.IsReleased(), "Released must not be mutated")
}
