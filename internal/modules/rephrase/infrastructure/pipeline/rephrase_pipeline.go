package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Rephraser/internal/modules/rephrase/domain/rephrase"
	"Rephraser/internal/modules/rephrase/infrastructure/parser"
	"Rephraser/internal/modules/rephrase/infrastructure/prompt"
	"Rephraser/pkg/metrics"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"
)

// RephrasePipeline 改写 Pipeline
//
// 流程：构建 Prompt -> 单轮调用 LLM -> 解析 JSON -> 取 rephrased_text。
// 不缓存、不重试，每次调用互相独立。
type RephrasePipeline struct {
	chatModel    model.BaseChatModel
	modelName    string
	temperatures map[rephrase.Style]float32
	logger       *zap.Logger
}

// Option 可选配置
type Option func(*RephrasePipeline)

// WithTemperature 覆盖某个风格的采样温度
func WithTemperature(style rephrase.Style, t float32) Option {
	return func(p *RephrasePipeline) {
		p.temperatures[style] = t
	}
}

// NewRephrasePipeline 创建 Pipeline
//
// 参数：
//   - chatModel: 补全模型（必须）
//   - modelName: 每次调用显式指定的模型名，空字符串表示沿用模型自身配置
//   - logger: 日志（nil 时不输出）
func NewRephrasePipeline(chatModel model.BaseChatModel, modelName string, logger *zap.Logger, opts ...Option) *RephrasePipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &RephrasePipeline{
		chatModel: chatModel,
		modelName: modelName,
		temperatures: map[rephrase.Style]float32{
			rephrase.StylePlain:   rephrase.StylePlain.DefaultTemperature(),
			rephrase.StyleAnalogy: rephrase.StyleAnalogy.DefaultTemperature(),
			rephrase.StyleExample: rephrase.StyleExample.DefaultTemperature(),
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Temperature 返回风格实际使用的温度
func (p *RephrasePipeline) Temperature(style rephrase.Style) float32 {
	if t, ok := p.temperatures[style]; ok {
		return t
	}
	return style.DefaultTemperature()
}

// Execute 执行一次改写
//
// 返回的错误可用 errors.Is 判断：
//   - rephrase.ErrInvalidStyle
//   - rephrase.ErrInvocation：调用 LLM 失败
//   - rephrase.ErrParseFailure：输出无法解析或缺少 rephrased_text
func (p *RephrasePipeline) Execute(ctx context.Context, req rephrase.Request) (*rephrase.Result, error) {
	startTime := time.Now()
	log := p.logger.With(zap.String("style", req.Style.String()))

	if !req.Style.Valid() {
		return nil, rephrase.ErrInvalidStyle
	}

	promptText := prompt.Build(req.Style, req.Summary, req.Answer)
	temperature := p.Temperature(req.Style)

	opts := []model.Option{model.WithTemperature(temperature)}
	if p.modelName != "" {
		opts = append(opts, model.WithModel(p.modelName))
	}

	llmStart := time.Now()
	llmResp, err := p.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(promptText)}, opts...)
	llmElapsed := time.Since(llmStart)
	llmMs := llmElapsed.Milliseconds()
	metrics.LLMDuration.WithLabelValues(req.Style.String()).Observe(llmElapsed.Seconds())
	if err != nil {
		metrics.RephraseTotal.WithLabelValues(req.Style.String(), metrics.OutcomeInvocation).Inc()
		log.Error("Error with invocation",
			zap.Error(err),
			zap.Float32("temperature", temperature),
			zap.Int64("llm_latency_ms", llmMs))
		return nil, fmt.Errorf("%w: %w", rephrase.ErrInvocation, err)
	}
	if llmResp == nil {
		metrics.RephraseTotal.WithLabelValues(req.Style.String(), metrics.OutcomeInvocation).Inc()
		log.Error("Error with invocation: empty response")
		return nil, fmt.Errorf("%w: empty response", rephrase.ErrInvocation)
	}

	text, err := p.extract(log, llmResp.Content)
	if err != nil {
		metrics.RephraseTotal.WithLabelValues(req.Style.String(), metrics.OutcomeParseFailure).Inc()
		return nil, err
	}

	result := &rephrase.Result{
		Style:         req.Style,
		RephrasedText: text,
		LatencyMs:     time.Since(startTime).Milliseconds(),
	}
	if llmResp.ResponseMeta != nil && llmResp.ResponseMeta.Usage != nil {
		result.TokensUsed = llmResp.ResponseMeta.Usage.TotalTokens
	}

	metrics.RephraseTotal.WithLabelValues(req.Style.String(), metrics.OutcomeSuccess).Inc()
	log.Info("rephrase execute done",
		zap.Int64("total_latency_ms", result.LatencyMs),
		zap.Int64("llm_latency_ms", llmMs),
		zap.Int("tokens", result.TokensUsed),
		zap.Float32("temperature", temperature))

	return result, nil
}

// extract 解析模型输出并取出 rephrased_text，失败时记录原始内容
func (p *RephrasePipeline) extract(log *zap.Logger, raw string) (string, error) {
	parsed, err := parser.ParseResponse(raw)
	if err != nil {
		var mErr *parser.MalformedJSONError
		switch {
		case errors.As(err, &mErr):
			log.Error("Error decoding JSON response", zap.Error(mErr.Err))
			log.Debug("Actual Content", zap.String("content", mErr.Content))
		default:
			log.Warn("No valid JSON content found in the response.")
			log.Debug("Actual Content", zap.String("content", raw))
		}
		return "", fmt.Errorf("%w: %w", rephrase.ErrParseFailure, err)
	}

	value, ok := parsed[rephrase.ResultKey]
	if !ok {
		log.Error("Error with PARSING: COULD NOT PARSE THE MODEL OUTPUT", zap.Error(rephrase.ErrMissingRephrasedText))
		log.Debug("Actual Content", zap.String("content", raw))
		return "", fmt.Errorf("%w: %w", rephrase.ErrParseFailure, rephrase.ErrMissingRephrasedText)
	}
	text, ok := value.(string)
	if !ok {
		log.Error("Error with PARSING: rephrased_text is not a string", zap.Any("value", value))
		return "", fmt.Errorf("%w: rephrased_text has type %T", rephrase.ErrParseFailure, value)
	}
	return text, nil
}
