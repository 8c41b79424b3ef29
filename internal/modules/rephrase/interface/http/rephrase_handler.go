package http

import (
	"Rephraser/internal/middleware/requestid"
	"Rephraser/internal/modules/rephrase/application/dto/request"
	"Rephraser/internal/modules/rephrase/application/dto/respond"
	"Rephraser/internal/modules/rephrase/application/service"
	"Rephraser/pkg/back"
	"Rephraser/pkg/xerr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RephraseHandler 改写 JSON 接口
//
// Handler 只做接口适配：参数绑定、调用 Service、统一响应格式。
type RephraseHandler struct {
	svc    service.RephraseService
	logger *zap.Logger
}

func NewRephraseHandler(svc service.RephraseService, logger *zap.Logger) *RephraseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RephraseHandler{svc: svc, logger: logger}
}

// Rephrase 文本改写
//
// HTTP API:
//
//	POST /api/rephrase
//	Content-Type: application/json
//
// Request Body:
//
//	{
//	  "style": "Include Analogy",
//	  "summary": "Photosynthesis converts light into chemical energy.",
//	  "answer": "Plants use sunlight to make food."
//	}
//
// Response:
//
//	{
//	  "code": 200,
//	  "message": "Success",
//	  "data": {
//	    "rephrased_text": "...",
//	    "style": "Include Analogy",
//	    "tokens_used": 120,
//	    "latency_ms": 1830
//	  }
//	}
func (h *RephraseHandler) Rephrase(c *gin.Context) {
	var req request.RephraseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("rephrase bind json failed",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	resp, err := h.svc.Rephrase(c.Request.Context(), req)
	if err != nil {
		if ce, ok := xerr.As(err); !ok || ce.Code != xerr.BadRequest {
			h.logger.Error("rephrase service failed",
				zap.Error(err),
				zap.String("request_id", requestid.Get(c)))
		}
		back.Result(c, nil, err)
		return
	}

	back.Result(c, resp, nil)
}

// Styles 返回可选风格
//
//	GET /api/styles
func (h *RephraseHandler) Styles(c *gin.Context) {
	back.Success(c, respond.StylesRespond{Styles: h.svc.Styles()})
}
