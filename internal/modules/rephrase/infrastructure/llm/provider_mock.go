package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// MockCall 一次调用的记录
type MockCall struct {
	Input       []*schema.Message
	Temperature *float32
	Model       *string
}

// MockChatModel 可编程的补全模型，用于本地联调和测试
type MockChatModel struct {
	Reply func(input []*schema.Message) (string, error)

	mu    sync.Mutex
	calls []MockCall
}

func NewMockChatModel(reply func(input []*schema.Message) (string, error)) *MockChatModel {
	return &MockChatModel{Reply: reply}
}

// StaticReply 总是返回固定内容
func StaticReply(content string) func([]*schema.Message) (string, error) {
	return func([]*schema.Message) (string, error) {
		return content, nil
	}
}

// FailingReply 总是返回错误
func FailingReply(err error) func([]*schema.Message) (string, error) {
	return func([]*schema.Message) (string, error) {
		return "", err
	}
}

// MockEchoReply 返回一个合法的 rephrased_text 对象，内容描述收到的 Prompt
func MockEchoReply(input []*schema.Message) (string, error) {
	size := 0
	for _, m := range input {
		size += len(m.Content)
	}
	out, err := json.Marshal(map[string]string{
		"rephrased_text": fmt.Sprintf("[mock] received a %d character prompt", size),
	})
	if err != nil {
		return "", err
	}
	return "Here is the result:\n" + string(out), nil
}

func (m *MockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := model.GetCommonOptions(&model.Options{}, opts...)
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Input: input, Temperature: o.Temperature, Model: o.Model})
	m.mu.Unlock()

	content, err := m.Reply(input)
	if err != nil {
		return nil, err
	}
	return schema.AssistantMessage(content, nil), nil
}

func (m *MockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

// Calls 返回调用记录的副本
func (m *MockChatModel) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// 确保实现接口
var _ model.BaseChatModel = (*MockChatModel)(nil)
