package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// OriginPolicy decides which browser origins may call the API. An empty list allows every origin.
type OriginPolicy struct {
	origins map[string]struct{}
}

// NewOriginPolicy normalises the configured origins.
func NewOriginPolicy(allowedOrigins []string) OriginPolicy {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin = strings.TrimRight(strings.TrimSpace(origin), "/"); origin != "" {
			origins[origin] = struct{}{}
		}
	}
	return OriginPolicy{origins: origins}
}

// AllowAll reports whether no origin restriction is configured.
func (p OriginPolicy) AllowAll() bool {
	return len(p.origins) == 0
}

// Allows reports whether origin may call the API.
func (p OriginPolicy) Allows(origin string) bool {
	if p.AllowAll() {
		return true
	}
	_, ok := p.origins[strings.TrimRight(origin, "/")]
	return ok
}

// New returns the CORS middleware for the editor API.
func New(allowedOrigins []string) gin.HandlerFunc {
	policy := NewOriginPolicy(allowedOrigins)

	return func(c *gin.Context) {
		header := c.Writer.Header()
		origin := c.GetHeader("Origin")
		switch {
		case origin != "" && policy.Allows(origin):
			header.Set("Access-Control-Allow-Origin", origin)
		case origin == "" && policy.AllowAll():
			header.Set("Access-Control-Allow-Origin", "*")
		}

		header.Set("Vary", "Origin")
		header.Set("Access-Control-Allow-Credentials", "true")
		header.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		header.Set("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")
		header.Set("Access-Control-Max-Age", "600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
