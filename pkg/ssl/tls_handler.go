package ssl

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

// TlsHandler 安全响应头中间件
//
// sslRedirect 为 true 时将 HTTP 请求重定向到 host:port 的 HTTPS 地址。
func TlsHandler(host string, port int, sslRedirect bool) gin.HandlerFunc {
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect:        sslRedirect,
		SSLHost:            host + ":" + strconv.Itoa(port),
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "same-origin",
	})

	return func(c *gin.Context) {
		// Process 出错时已经写入了响应（重定向），终止后续处理
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}

		c.Next()
	}
}
