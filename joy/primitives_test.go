package joy_test

import (
	"errors"
	"joybot/define"
	"joybot/joy"
	"joybot/joy/joytest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActions_WalkToggle(t *testing.T) {
	rec := joytest.NewRecorder()
	a := joy.NewActions(rec, define.BUTTON_LB, define.BUTTON_RB)

	require.NoError(t, a.StartWalk())
	require.NoError(t, a.StopWalk())
	require.NoError(t, a.FullStop())
	require.NoError(t, a.ReleaseAll())

	frames := rec.Frames()
	require.Len(t, frames, 4)
	assert.Equal(t, frames[0], frames[1], "start and stop walk are the same toggle")
	assert.Equal(t, joy.Released.Press(define.BUTTON_LB), frames[0])
	assert.Equal(t, joy.Released.Press(define.BUTTON_RB), frames[2])
	assert.NotEqual(t, frames[0], frames[2])
	assert.True(t, frames[3].IsReleased())

	// 每次发送后关闭通道
	assert.Equal(t, 4, rec.Closes())
}

func TestActions_SendError(t *testing.T) {
	rec := joytest.NewRecorder()
	rec.SetError(errors.New("boom"))
	a := joy.NewActions(rec, define.BUTTON_LB, define.BUTTON_RB)

	assert.Error(t, a.StartWalk())
	assert.Equal(t, 1, rec.Closes())
}

func TestActions_ReleaseAfter(t *testing.T) {
	rec := joytest.NewRecorder()
	a := joy.NewActions(rec, define.BUTTON_LB, define.BUTTON_RB)

	a.ReleaseAfter(20 * time.Millisecond)
	assert.Empty(t, rec.Frames())
	assert.Eventually(t, func() bool { return len(rec.Frames()) == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, rec.Frames()[0].IsReleased())
}
