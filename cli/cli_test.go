package cli

import (
	"flag"
	"io"
	"joybot/define"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigFrom_Defaults(t *testing.T) {
	cfg, err := ParseConfigFrom(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	require.NoError(t, err)

	assert.Equal(t, "ws://127.0.0.1:9091", cfg.RosbridgeURL)
	assert.Equal(t, "/joy", cfg.JoyTopic)
	assert.Equal(t, "9099", cfg.WebPort)
	assert.Equal(t, define.BUTTON_LB, cfg.WalkButton)
	assert.Equal(t, define.BUTTON_RB, cfg.StopButton)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestParseConfigFrom_FlagsAndEnv(t *testing.T) {
	t.Setenv("WEB_PORT", "8080")
	t.Setenv("STOP_BUTTON", "7")
	t.Setenv("WALK_BUTTON", "not-a-number")
	t.Setenv("ROSBRIDGE_TIMEOUT", "2s")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfigFrom(fs, []string{"-rosbridge", "ws://robot:9091", "-port", "7000", "-walk-button", "3", "forward"})

	require.NoError(t, err)
	assert.Equal(t, "ws://robot:9091", cfg.RosbridgeURL)
	assert.Equal(t, "8080", cfg.WebPort) // 环境变量优先
	assert.Equal(t, 3, cfg.WalkButton)   // 无法解析时保留命令行值
	assert.Equal(t, 7, cfg.StopButton)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"forward"}, fs.Args())
}

func TestParseConfigFrom_BadFlag(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	_, err := ParseConfigFrom(fs, []string{"-walk-button", "LB"})
	assert.Error(t, err)
}
