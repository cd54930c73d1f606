package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/noah-isme/sma-schedule-editor/internal/service"
)

const unmatchedRoute = "unmatched"

// Metrics observes every request under its route template. Unknown paths share one label so raw
// workspace ids never become series. Websocket upgrades are skipped; their duration is the
// lifetime of the stream.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || websocket.IsWebSocketUpgrade(c.Request) {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
