package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"Rephraser/internal/modules/rephrase/application/dto/request"
	"Rephraser/internal/modules/rephrase/application/dto/respond"
	"Rephraser/internal/modules/rephrase/domain/rephrase"
	"Rephraser/internal/modules/rephrase/infrastructure/pipeline"
	"Rephraser/pkg/metrics"
	"Rephraser/pkg/xerr"

	"go.uber.org/zap"
)

// 面向用户的提示语
const (
	MsgInvalidStyle     = "Invalid style selected."
	MsgSummaryRequired  = "Summary is required!"
	MsgParseFailure     = "Could not read a rephrased text from the model output."
	MsgInvocationFailed = "The language model could not be reached."
)

// RephraseService 改写服务
type RephraseService interface {
	// GetRephrasedContent 表单唯一入口：风格标签 + 摘要 + 可选答案 -> 改写文本
	GetRephrasedContent(ctx context.Context, styleLabel, summary, answer string) (string, error)
	// Rephrase 接口层使用，额外返回耗时等信息
	Rephrase(ctx context.Context, req request.RephraseRequest) (*respond.RephraseRespond, error)
	// Styles 可选风格标签
	Styles() []string
}

type rephraseServiceImpl struct {
	pipeline      *pipeline.RephrasePipeline
	maxInputChars int
	logger        *zap.Logger
}

// NewRephraseService 创建改写服务，maxInputChars <= 0 表示不限制长度
func NewRephraseService(p *pipeline.RephrasePipeline, maxInputChars int, logger *zap.Logger) RephraseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &rephraseServiceImpl{
		pipeline:      p,
		maxInputChars: maxInputChars,
		logger:        logger,
	}
}

func (s *rephraseServiceImpl) GetRephrasedContent(ctx context.Context, styleLabel, summary, answer string) (string, error) {
	res, err := s.Rephrase(ctx, request.RephraseRequest{
		Style:   styleLabel,
		Summary: summary,
		Answer:  answer,
	})
	if err != nil {
		return "", err
	}
	return res.RephrasedText, nil
}

func (s *rephraseServiceImpl) Rephrase(ctx context.Context, req request.RephraseRequest) (*respond.RephraseRespond, error) {
	metrics.InputChars.Observe(float64(utf8.RuneCountInString(req.Summary) + utf8.RuneCountInString(req.Answer)))

	domainReq, err := s.validate(req)
	if err != nil {
		style, _ := rephrase.ParseStyle(req.Style)
		metrics.RephraseTotal.WithLabelValues(style.String(), metrics.OutcomeRejected).Inc()
		s.logger.Warn("rephrase request rejected",
			zap.Error(err),
			zap.String("style_label", req.Style),
			zap.Int("summary_len", len(req.Summary)))
		return nil, toCodeError(err)
	}

	res, err := s.pipeline.Execute(ctx, domainReq)
	if err != nil {
		return nil, toCodeError(err)
	}

	return &respond.RephraseRespond{
		RephrasedText: res.RephrasedText,
		Style:         res.Style.Label(),
		TokensUsed:    res.TokensUsed,
		LatencyMs:     res.LatencyMs,
	}, nil
}

func (s *rephraseServiceImpl) Styles() []string {
	return rephrase.Labels()
}

// validate 在调用 LLM 之前完成全部校验
func (s *rephraseServiceImpl) validate(req request.RephraseRequest) (rephrase.Request, error) {
	style, ok := rephrase.ParseStyle(req.Style)
	if !ok {
		return rephrase.Request{}, fmt.Errorf("%w: %q", rephrase.ErrInvalidStyle, req.Style)
	}
	if strings.TrimSpace(req.Summary) == "" {
		return rephrase.Request{}, rephrase.ErrSummaryRequired
	}
	if s.maxInputChars > 0 {
		if n := utf8.RuneCountInString(req.Summary) + utf8.RuneCountInString(req.Answer); n > s.maxInputChars {
			return rephrase.Request{}, fmt.Errorf("%w: %d characters (max %d)", rephrase.ErrInputTooLong, n, s.maxInputChars)
		}
	}
	return rephrase.Request{
		Style:   style,
		Summary: req.Summary,
		Answer:  req.Answer,
	}, nil
}

// toCodeError 将领域错误转换为接口层错误码，原始错误保留在 Cause 中
func toCodeError(err error) error {
	switch {
	case errors.Is(err, rephrase.ErrInvalidStyle):
		return xerr.Wrap(xerr.BadRequest, MsgInvalidStyle, err)
	case errors.Is(err, rephrase.ErrSummaryRequired):
		return xerr.Wrap(xerr.BadRequest, MsgSummaryRequired, err)
	case errors.Is(err, rephrase.ErrInputTooLong):
		return xerr.Wrap(xerr.BadRequest, err.Error(), err)
	case errors.Is(err, rephrase.ErrParseFailure):
		return xerr.Wrap(xerr.BadGateway, MsgParseFailure, err)
	case errors.Is(err, rephrase.ErrInvocation):
		return xerr.Wrap(xerr.BadGateway, MsgInvocationFailed, err)
	default:
		return xerr.Wrap(xerr.InternalServerError, xerr.ErrServerError.Message, err)
	}
}
