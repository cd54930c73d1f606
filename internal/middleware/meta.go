package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
)

const (
	responseMetaKey  = "response_meta"
	requestStartKey  = "response_meta_start"
	cacheHitKey      = "cache_hit"
	weekIDKey        = "week_id"
	scopeKey         = "scope"
	readOnlyKey      = "read_only"
	processingTimeMS = "processing_time_ms"
)

// WithResponseMeta starts the per-request meta map rendered in the envelope.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
	}
}

// SetMeta stores one meta entry for the current response.
func SetMeta(c *gin.Context, key string, value interface{}) {
	ensureMeta(c)[key] = value
}

// SetCacheHit records whether the payload was served from the cache.
func SetCacheHit(c *gin.Context, hit bool) {
	SetMeta(c, cacheHitKey, hit)
}

// SetEditContext exposes the resolved week, scope and read-only flag so clients can tell which
// schedule they were served.
func SetEditContext(c *gin.Context, ec models.EditContext) {
	meta := ensureMeta(c)
	meta[weekIDKey] = ec.WeekID
	meta[scopeKey] = string(ec.Scope)
	meta[readOnlyKey] = ec.ReadOnly
}

// ExtractMeta returns the meta map with the elapsed processing time, or nil when nothing was
// recorded.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	value, exists := c.Get(responseMetaKey)
	if !exists {
		return nil
	}
	meta, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	if start, ok := c.Get(requestStartKey); ok {
		if started, ok := start.(time.Time); ok {
			meta[processingTimeMS] = time.Since(started).Milliseconds()
		}
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if value, exists := c.Get(responseMetaKey); exists {
		if meta, ok := value.(map[string]interface{}); ok {
			return meta
		}
	}
	meta := make(map[string]interface{})
	c.Set(responseMetaKey, meta)
	return meta
}
