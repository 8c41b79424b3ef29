package http

import (
	"time"

	"Rephraser/internal/config"
	"Rephraser/internal/middleware/requestid"
	"Rephraser/internal/modules/rephrase/application/service"
	rephraseHandler "Rephraser/internal/modules/rephrase/interface/http"
	rephraseWS "Rephraser/internal/modules/rephrase/interface/websocket"
	"Rephraser/pkg/metrics"
	"Rephraser/pkg/ssl"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EngineDeps 构建路由所需的依赖
type EngineDeps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Service  service.RephraseService
	Provider string
	Model    string
	Version  string
}

// NewEngine 创建 gin 引擎并注册全部路由
func NewEngine(deps EngineDeps) *gin.Engine {
	conf := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ge := gin.New()
	ge.Use(gin.Recovery())
	ge.Use(requestid.RequestID())
	ge.Use(accessLog(logger))
	ge.Use(metrics.Middleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = conf.SecurityConfig.AllowOrigins
	if len(corsConfig.AllowOrigins) == 0 || containsWildcard(corsConfig.AllowOrigins) {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", requestid.HeaderName}
	corsConfig.ExposeHeaders = []string{requestid.HeaderName}
	ge.Use(cors.New(corsConfig))
	ge.Use(ssl.TlsHandler(conf.MainConfig.Host, conf.MainConfig.Port, conf.SecurityConfig.SSLRedirect))

	ge.SetHTMLTemplate(rephraseHandler.Templates())

	formH := rephraseHandler.NewFormHandler(deps.Service, conf.MainConfig.AppName+" App", logger)
	apiH := rephraseHandler.NewRephraseHandler(deps.Service, logger)
	wsH := rephraseWS.NewRephraseWSHandler(deps.Service, conf.SecurityConfig.AllowOrigins, logger)

	ge.GET("/", formH.Index)
	ge.POST("/", formH.Submit)
	ge.GET("/health", rephraseHandler.Health(deps.Provider, deps.Model, deps.Version))
	ge.GET("/metrics", metrics.Handler())

	api := ge.Group("/api")
	api.GET("/styles", apiH.Styles)
	api.POST("/rephrase", apiH.Rephrase)
	api.GET("/rephrase/ws", wsH.Rephrase)

	return ge
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// accessLog 请求日志
func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("request_id", requestid.Get(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()))
	}
}
