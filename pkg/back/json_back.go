package back

import (
	"net/http"

	"Rephraser/pkg/xerr"

	"github.com/gin-gonic/gin"
)

// RequestIDKey gin 上下文中请求 ID 的键，与 requestid 中间件保持一致
const RequestIDKey = "request_id"

const successMessage = "Success"

// Response 统一响应结构
//
// HTTP 状态码固定为 200，业务码放在 Code 字段。
type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Result 按 err 选择成功或失败响应；非 CodeError 一律视为 500
func Result(c *gin.Context, data interface{}, err error) {
	if err == nil {
		write(c, xerr.OK, successMessage, data)
		return
	}
	if e, ok := xerr.As(err); ok {
		write(c, e.Code, e.Message, nil)
		return
	}
	write(c, xerr.ErrServerError.Code, xerr.ErrServerError.Message, nil)
}

func Success(c *gin.Context, data interface{}) {
	write(c, xerr.OK, successMessage, data)
}

func Error(c *gin.Context, code int, message string) {
	write(c, code, message, nil)
}

func write(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:      code,
		Message:   message,
		Data:      data,
		RequestID: c.GetString(RequestIDKey),
	})
}
