package rephrase

import "errors"

// ResultKey 模型返回 JSON 中唯一约定的字段
const ResultKey = "rephrased_text"

// Request 一次改写请求，只在单次调用内存在
type Request struct {
	Style   Style
	Summary string // 必填
	Answer  string // 可选，类比/举例风格使用
}

// Result 一次改写的结果
type Result struct {
	Style         Style
	RephrasedText string
	TokensUsed    int
	LatencyMs     int64
}

// 错误分类
var (
	ErrInvalidStyle         = errors.New("invalid style")
	ErrSummaryRequired      = errors.New("summary is required")
	ErrInvocation           = errors.New("llm invocation failed")
	ErrParseFailure         = errors.New("could not parse model output")
	ErrMissingRephrasedText = errors.New("rephrased_text missing from model output")
)

// ErrInputTooLong 输入超过配置的长度上限
var ErrInputTooLong = errors.New("input too long")
