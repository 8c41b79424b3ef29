package xerr

import (
	"errors"
	"fmt"
)

// CodeError 自定义错误结构
type CodeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"` // 原始错误，不对外输出
}

// Error 实现 error 接口
func (e *CodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Code: %d, Message: %s, Cause: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

func (e *CodeError) Unwrap() error {
	return e.Cause
}

// New 创建新的 CodeError
func New(code int, msg string) *CodeError {
	return &CodeError{Code: code, Message: msg}
}

// Wrap 创建携带原始错误的 CodeError
func Wrap(code int, msg string, cause error) *CodeError {
	return &CodeError{Code: code, Message: msg, Cause: cause}
}

// As 从错误链中取出 CodeError
func As(err error) (*CodeError, bool) {
	var ce *CodeError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// 常用通用错误码
const (
	OK                  = 200
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
	BadGateway          = 502
)

// 常用预定义错误
var (
	ErrServerError = New(InternalServerError, "Something went wrong, please try again.")
	ErrParam       = New(BadRequest, "Invalid request parameters.")
)
