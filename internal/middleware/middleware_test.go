package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
	"github.com/noah-isme/sma-schedule-editor/internal/service"
)

type tokenValidatorStub struct {
	claims *models.JWTClaims
}

func (s tokenValidatorStub) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return s.claims, nil
}

func claimsHandler(c *gin.Context) {
	if value, ok := c.Get(ContextUserKey); ok {
		c.String(http.StatusOK, value.(*models.JWTClaims).UserID)
		return
	}
	c.String(http.StatusOK, "anonymous")
}

func serve(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTRequiresValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", JWT(tokenValidatorStub{claims: &models.JWTClaims{UserID: "u1"}}), claimsHandler)

	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/", "bad").Code)

	w := serve(router, http.MethodGet, "/", "good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}

func TestJWTAcceptsQueryTokenOnWebsocketUpgrade(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", JWT(tokenValidatorStub{claims: &models.JWTClaims{UserID: "u1"}}), claimsHandler)

	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/?access_token=good", "").Code)

	req := httptest.NewRequest(http.MethodGet, "/?access_token=good", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}

func TestOptionalJWTNeverBlocks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", OptionalJWT(tokenValidatorStub{claims: &models.JWTClaims{UserID: "u1"}}), claimsHandler)

	assert.Equal(t, "anonymous", serve(router, http.MethodGet, "/", "").Body.String())
	assert.Equal(t, "anonymous", serve(router, http.MethodGet, "/", "bad").Body.String())
	assert.Equal(t, "u1", serve(router, http.MethodGet, "/", "good").Body.String())
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	build := func(role models.UserRole) *gin.Engine {
		router := gin.New()
		router.GET("/", JWT(tokenValidatorStub{claims: &models.JWTClaims{UserID: "u1", Role: role}}), RequireRoles(models.RoleAdmin), claimsHandler)
		return router
	}

	assert.Equal(t, http.StatusOK, serve(build(models.RoleAdmin), http.MethodGet, "/", "good").Code)
	assert.Equal(t, http.StatusForbidden, serve(build(models.RoleEditor), http.MethodGet, "/", "good").Code)

	anonymous := gin.New()
	anonymous.GET("/", RequireRoles(models.RoleAdmin), claimsHandler)
	assert.Equal(t, http.StatusUnauthorized, serve(anonymous, http.MethodGet, "/", "").Code)
}

func TestAuditLogsSuccessfulMutationsOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.POST("/workspaces/:workspace/ok", Audit(zap.New(core), "schedule.drop"), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/workspaces/:workspace/fail", Audit(zap.New(core), "schedule.drop"), func(c *gin.Context) { c.Status(http.StatusForbidden) })

	serve(router, http.MethodPost, "/workspaces/ws-1/fail", "")
	assert.Zero(t, logs.Len())

	serve(router, http.MethodPost, "/workspaces/ws-1/ok", "")
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "schedule.drop", fields["action"])
	assert.Equal(t, "ws-1", fields["workspace"])
	assert.Equal(t, "anonymous", fields["user_id"])
}

func TestMetricsMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	router := gin.New()
	router.Use(Metrics(metrics))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(router, http.MethodGet, "/ping", "")
	serve(router, http.MethodGet, "/missing", "")
	assert.EqualValues(t, 2, metrics.Snapshot().RequestsTotal)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	router.ServeHTTP(httptest.NewRecorder(), req)
	assert.EqualValues(t, 2, metrics.Snapshot().RequestsTotal, "streams are not observed")
}

func TestResponseMetaCarriesCacheHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(WithResponseMeta())
	var meta map[string]interface{}
	router.GET("/", func(c *gin.Context) {
		SetCacheHit(c, true)
		meta = ExtractMeta(c)
		c.Status(http.StatusOK)
	})

	serve(router, http.MethodGet, "/", "")
	assert.Equal(t, true, meta["cache_hit"])
	assert.Contains(t, meta, "processing_time_ms")
}
