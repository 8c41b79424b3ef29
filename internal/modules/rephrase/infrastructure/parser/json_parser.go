package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoJSONFound 输出中没有 JSON 对象的起始 '{'
	ErrNoJSONFound = errors.New("no valid JSON content found in the response")
	// ErrMalformedJSON 找到了片段但无法解码
	ErrMalformedJSON = errors.New("malformed JSON content in the response")
)

// MalformedJSONError 携带无法解码的片段和解码器错误，便于排查
type MalformedJSONError struct {
	Content string
	Err     error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("error decoding JSON response: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() []error {
	return []error{ErrMalformedJSON, e.Err}
}

// ExtractJSON 截取第一个 '{' 到最后一个 '}'（含）之间的内容
//
// 注意：该截取不做括号配对。输出中出现多个 JSON 对象、正文中夹杂花括号时，
// 截出的片段通常无法解码，由 ParseResponse 报告 ErrMalformedJSON。
// 有 '{' 但其后没有 '}' 时返回从 '{' 开始的剩余内容和 false（被截断的对象）。
func ExtractJSON(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	if start == -1 {
		return "", false
	}
	end := strings.LastIndex(raw, "}")
	if end < start {
		return raw[start:], false
	}
	return raw[start : end+1], true
}

// ParseResponse 从模型原始输出中解析 JSON 对象
//
// 模型经常在 JSON 前后包裹说明文字或代码块标记，这里取最外层花括号片段，
// 去掉换行后按标准 JSON 解码。
//   - 没有 '{'：ErrNoJSONFound
//   - 对象没有闭合或解码失败：*MalformedJSONError
func ParseResponse(raw string) (map[string]any, error) {
	content, ok := ExtractJSON(raw)
	if !ok && content == "" {
		return nil, ErrNoJSONFound
	}

	content = strings.ReplaceAll(content, "\n", "")
	if !ok {
		return nil, &MalformedJSONError{Content: content, Err: errors.New("unterminated JSON object")}
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, &MalformedJSONError{Content: content, Err: err}
	}
	return out, nil
}
