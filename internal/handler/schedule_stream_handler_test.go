package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-schedule-editor/internal/dto"
	"github.com/noah-isme/sma-schedule-editor/internal/service"
	"github.com/noah-isme/sma-schedule-editor/pkg/realtime"
)

func newStreamServer(t *testing.T, hub *realtime.Hub, origins []string) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/workspaces/:workspace/schedule/stream", NewScheduleStreamHandler(hub, origins, nil).Stream)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestScheduleStreamDeliversWorkspaceEvents(t *testing.T) {
	hub := realtime.NewHub(8, nil)
	base := newStreamServer(t, hub, nil)

	conn, _, err := websocket.DefaultDialer.Dial(base+"/workspaces/ws-1/schedule/stream", nil)
	require.NoError(t, err)
	defer conn.Close()

	topic := service.ScheduleTopic("ws-1")
	require.Eventually(t, func() bool { return hub.Subscribers(topic) == 1 }, time.Second, 5*time.Millisecond)

	updated := time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)
	require.NoError(t, hub.Publish(service.ScheduleTopic("ws-2"), dto.ScheduleEvent{Type: dto.ScheduleEventUpdated, WorkspaceID: "ws-2"}))
	require.NoError(t, hub.Publish(topic, dto.ScheduleEvent{Type: dto.ScheduleEventUpdated, WorkspaceID: "ws-1", UpdatedAt: updated}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var event dto.ScheduleEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "ws-1", event.WorkspaceID)
	assert.Equal(t, dto.ScheduleEventUpdated, event.Type)
	assert.True(t, updated.Equal(event.UpdatedAt))

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Subscribers(topic) == 0 }, time.Second, 5*time.Millisecond)
}

func TestScheduleStreamRejectsForeignOrigin(t *testing.T) {
	hub := realtime.NewHub(8, nil)
	base := newStreamServer(t, hub, []string{"http://editor.test"})

	header := http.Header{"Origin": []string{"http://evil.test"}}
	_, resp, err := websocket.DefaultDialer.Dial(base+"/workspaces/ws-1/schedule/stream", header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, hub.Subscribers(service.ScheduleTopic("ws-1")))

	header = http.Header{"Origin": []string{"http://editor.test"}}
	conn, _, err := websocket.DefaultDialer.Dial(base+"/workspaces/ws-1/schedule/stream", header)
	require.NoError(t, err)
	conn.Close()
}
