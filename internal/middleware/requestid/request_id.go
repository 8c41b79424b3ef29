package requestid

import (
	"strings"

	"Rephraser/pkg/back"
	"Rephraser/pkg/util"

	"github.com/gin-gonic/gin"
)

const (
	HeaderName = "X-Request-ID"
	ContextKey = back.RequestIDKey
)

// RequestID 为每个请求分配 ID，客户端已携带时沿用
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderName))
		if id == "" || len(id) > 64 {
			id = util.GenerateShortUUID()
		}

		c.Set(ContextKey, id)
		c.Header(HeaderName, id)
		c.Next()
	}
}

// Get 读取当前请求 ID
func Get(c *gin.Context) string {
	return c.GetString(ContextKey)
}
