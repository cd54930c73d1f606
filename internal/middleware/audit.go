package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
	"github.com/noah-isme/sma-schedule-editor/pkg/middleware/requestid"
)

// Audit logs successful schedule mutations with the acting user.
func Audit(logger *zap.Logger, action string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		userID := "anonymous"
		if value, ok := c.Get(ContextUserKey); ok {
			if claims, ok := value.(*models.JWTClaims); ok {
				userID = claims.UserID
			}
		}

		logger.Info("audit",
			zap.String("action", action),
			zap.String("workspace", c.Param("workspace")),
			zap.String("user_id", userID),
			zap.String("request_id", requestid.Value(c)),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
