package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 改写结果
const (
	OutcomeSuccess      = "success"
	OutcomeRejected     = "rejected"
	OutcomeInvocation   = "invocation_error"
	OutcomeParseFailure = "parse_error"
)

var (
	// RequestsTotal HTTP 请求数，按方法、路由、状态码
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rephraser_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// RephraseTotal 改写次数，按风格和结果
	RephraseTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rephraser_rephrase_total",
		Help: "Rephrase attempts by style and outcome.",
	}, []string{"style", "outcome"})

	// LLMDuration 单次模型调用耗时
	LLMDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rephraser_llm_duration_seconds",
		Help:    "Time spent waiting for the completion endpoint.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"style"})

	// InputChars 输入长度分布（summary + answer，按字符）
	InputChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rephraser_input_chars",
		Help:    "Number of characters in rephrase input text.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})
)

// Middleware 统计请求数，path 使用路由模板避免高基数
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler GET /metrics
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
