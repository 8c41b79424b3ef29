package http

import (
	"embed"
	"html/template"
	"net/http"

	"Rephraser/internal/middleware/requestid"
	"Rephraser/internal/modules/rephrase/application/dto/request"
	"Rephraser/internal/modules/rephrase/application/service"
	"Rephraser/pkg/xerr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates 表单页模板，由 gin.Engine.SetHTMLTemplate 加载
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
}

type formPage struct {
	Title     string
	Styles    []string
	Style     string
	Summary   string
	Answer    string
	Result    string
	Error     string
	Submitted bool
}

// FormHandler 表单页面
//
// GET / 展示表单，POST / 提交后在同一页面展示结果。
type FormHandler struct {
	svc    service.RephraseService
	title  string
	logger *zap.Logger
}

func NewFormHandler(svc service.RephraseService, title string, logger *zap.Logger) *FormHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormHandler{svc: svc, title: title, logger: logger}
}

func (h *FormHandler) page() formPage {
	styles := h.svc.Styles()
	p := formPage{Title: h.title, Styles: styles}
	if len(styles) > 0 {
		p.Style = styles[0]
	}
	return p
}

// Index 展示空表单
func (h *FormHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.tmpl", h.page())
}

// Submit 处理表单提交
func (h *FormHandler) Submit(c *gin.Context) {
	var req request.RephraseRequest
	page := h.page()

	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("form bind failed", zap.Error(err))
		page.Error = xerr.ErrParam.Message
		c.HTML(http.StatusBadRequest, "index.tmpl", page)
		return
	}

	page.Style = req.Style
	page.Summary = req.Summary
	page.Answer = req.Answer
	page.Submitted = true

	text, err := h.svc.GetRephrasedContent(c.Request.Context(), req.Style, req.Summary, req.Answer)
	if err != nil {
		status := http.StatusBadGateway
		page.Error = xerr.ErrServerError.Message
		if ce, ok := xerr.As(err); ok {
			page.Error = ce.Message
			if ce.Code == xerr.BadRequest {
				status = http.StatusBadRequest
				page.Submitted = false
			}
		}
		if status != http.StatusBadRequest {
			h.logger.Error("form rephrase failed",
				zap.Error(err),
				zap.String("request_id", requestid.Get(c)))
		}
		c.HTML(status, "index.tmpl", page)
		return
	}

	page.Result = text
	c.HTML(http.StatusOK, "index.tmpl", page)
}
