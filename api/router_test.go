package api

import (
	"context"
	"encoding/json"
	"errors"
	"joybot/communication"
	"joybot/define"
	"joybot/joy"
	"joybot/joy/joytest"
	"joybot/motion"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeROS struct {
	topics []communication.TopicInfo
	msg    *joy.Message
	err    error
}

func (f *fakeROS) GetTopics(ctx context.Context) ([]communication.TopicInfo, error) {
	return f.topics, f.err
}

func (f *fakeROS) IsConnected() bool { return f.err == nil }

func (f *fakeROS) Latest(ctx context.Context) (*joy.Message, error) {
	return f.msg, f.err
}

func newTestServer(t *testing.T, ros *fakeROS) (*gin.Engine, *joytest.Recorder, *motion.Sequencer) {
	gin.SetMode(gin.TestMode)
	rec := joytest.NewRecorder()
	actions := joy.NewActions(rec, define.BUTTON_LB, define.BUTTON_RB)
	seq := motion.NewSequencer(actions)
	s := NewServer(seq, joy.NewGestureManager(actions), ros, ros)
	t.Cleanup(s.Shutdown)

	r := gin.New()
	s.SetupRoutes(r)
	return r, rec, seq
}

func do(r http.Handler, method, path, body string) (*httptest.ResponseRecorder, ApiResponse) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp ApiResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestHandleMotion_AcceptAndBusy(t *testing.T) {
	r, _, seq := newTestServer(t, &fakeROS{})

	w, resp := do(r, http.MethodPost, "/api/motion/forward", `{"param":"3步"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Forward 3步 command sent (delay: 1.5s)", resp.Message)
	assert.True(t, seq.IsRunning())

	w, resp = do(r, http.MethodPost, "/api/motion/turn_left", `{"param":"90度"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "busy", resp.Status)
	assert.Equal(t, motion.BusyText, resp.Message)
	assert.Equal(t, motion.Forward, seq.State().Kind)
}

func TestHandleMotion_EmptyBody(t *testing.T) {
	r, _, _ := newTestServer(t, &fakeROS{})

	w, resp := do(r, http.MethodPost, "/api/motion/walk_in_place", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Walk in place None command sent (delay: 5.0s)", resp.Message)
}

func TestHandleMotion_BadRequests(t *testing.T) {
	r, _, seq := newTestServer(t, &fakeROS{})

	w, resp := do(r, http.MethodPost, "/api/motion/moonwalk", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", resp.Status)

	w, _ = do(r, http.MethodPost, "/api/motion/idle", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(r, http.MethodPost, "/api/motion/forward", `{"param":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.False(t, seq.IsRunning())
}

func TestHandleStop(t *testing.T) {
	r, rec, seq := newTestServer(t, &fakeROS{})

	w, resp := do(r, http.MethodPost, "/api/motion/stop", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, motion.StopSentText, resp.Message)
	assert.False(t, seq.IsRunning())

	rec.SetError(errors.New("offline"))
	_, resp = do(r, http.MethodPost, "/api/motion/stop", "")
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, motion.StopFailedText, resp.Message)
}

func TestHandleMotionStatus(t *testing.T) {
	r, _, _ := newTestServer(t, &fakeROS{})

	w, resp := do(r, http.MethodGet, "/api/motion/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "idle", data["kind"])
	assert.Equal(t, false, data["running"])
	assert.Len(t, data["kinds"], 5)
}

func TestHandleGestures(t *testing.T) {
	r, rec, _ := newTestServer(t, &fakeROS{})

	w, resp := do(r, http.MethodGet, "/api/gestures", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), resp.Data.(map[string]any)["total"])

	w, resp = do(r, http.MethodPost, "/api/gestures/stand_up", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Stand up command sent", resp.Message)
	require.NotEmpty(t, rec.Frames())
	assert.Equal(t, 1, rec.Frames()[0].Buttons[define.BUTTON_LEFT_STICK])

	w, _ = do(r, http.MethodPost, "/api/gestures/backflip", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetTopics(t *testing.T) {
	ros := &fakeROS{topics: []communication.TopicInfo{{Name: "/joy", Type: "sensor_msgs/Joy"}}}
	r, _, _ := newTestServer(t, ros)

	w, resp := do(r, http.MethodGet, "/api/topics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, []any{"/joy"}, data["topics"])
	assert.Equal(t, []any{"sensor_msgs/Joy"}, data["types"])

	ros.topics = nil
	_, resp = do(r, http.MethodGet, "/api/topics", "")
	assert.Equal(t, "No topics found", resp.Message)

	ros.err = errors.New("down")
	w, _ = do(r, http.MethodGet, "/api/topics", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHandleGetJoy(t *testing.T) {
	ros := &fakeROS{msg: &joy.Message{Axes: []float64{0, 0.8}, Buttons: []int{0, 1}}}
	r, _, _ := newTestServer(t, ros)

	w, resp := do(r, http.MethodGet, "/api/joy", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{0.0, 0.8}, resp.Data.(map[string]any)["axes"])

	ros.err = errors.New("timeout")
	w, resp = do(r, http.MethodGet, "/api/joy", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "No Joy data received", resp.Message)
}

func TestHandleHealthCheck(t *testing.T) {
	r, _, _ := newTestServer(t, &fakeROS{})

	w, resp := do(r, http.MethodGet, "/api/system/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, true, data["connected"])
}
