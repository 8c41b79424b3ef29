package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"Rephraser/internal/middleware/requestid"
	"Rephraser/internal/modules/rephrase/application/service"
	"Rephraser/internal/modules/rephrase/infrastructure/llm"
	"Rephraser/internal/modules/rephrase/infrastructure/pipeline"
	"Rephraser/pkg/back"
	"Rephraser/pkg/xerr"

	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestEngine(reply func([]*schema.Message) (string, error)) (*gin.Engine, *llm.MockChatModel) {
	gin.SetMode(gin.TestMode)

	cm := llm.NewMockChatModel(reply)
	svc := service.NewRephraseService(pipeline.NewRephrasePipeline(cm, "gpt-4", zap.NewNop()), 0, zap.NewNop())

	r := gin.New()
	r.SetHTMLTemplate(Templates())
	r.Use(requestid.RequestID())

	form := NewFormHandler(svc, "Rephraser App", zap.NewNop())
	api := NewRephraseHandler(svc, zap.NewNop())
	r.GET("/", form.Index)
	r.POST("/", form.Submit)
	r.POST("/api/rephrase", api.Rephrase)
	r.GET("/api/styles", api.Styles)
	r.GET("/health", Health("mock", "gpt-4", "test"))
	return r, cm
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data interface{}) back.Response {
	t.Helper()
	var raw struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return back.Response{Code: raw.Code, Message: raw.Message}
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRephraseAPISuccess(t *testing.T) {
	r, cm := newTestEngine(llm.StaticReply(`Sure: {"rephrased_text":"Plants turn light into energy."}`))

	w := postJSON(r, "/api/rephrase", `{"style":"Simple/less technical terms","summary":"Photosynthesis converts light into chemical energy.","answer":""}`)

	var data struct {
		RephrasedText string `json:"rephrased_text"`
		Style         string `json:"style"`
	}
	resp := decodeEnvelope(t, w, &data)
	if resp.Code != xerr.OK {
		t.Fatalf("code: got %d, want %d (%s)", resp.Code, xerr.OK, resp.Message)
	}
	if data.RephrasedText != "Plants turn light into energy." {
		t.Errorf("text: got %q", data.RephrasedText)
	}
	if data.Style != "Simple/less technical terms" {
		t.Errorf("style: got %q", data.Style)
	}
	if len(cm.Calls()) != 1 {
		t.Errorf("calls: got %d, want 1", len(cm.Calls()))
	}
	if w.Header().Get(requestid.HeaderName) == "" {
		t.Error("request id header missing")
	}
}

func TestRephraseAPIErrors(t *testing.T) {
	tests := []struct {
		name      string
		reply     func([]*schema.Message) (string, error)
		body      string
		wantCode  int
		wantMsg   string
		wantCalls int
	}{
		{"invalid json", llm.StaticReply("{}"), `{"style":`, xerr.BadRequest, xerr.ErrParam.Message, 0},
		{"invalid style", llm.StaticReply("{}"), `{"style":"Poem","summary":"S"}`, xerr.BadRequest, service.MsgInvalidStyle, 0},
		{"missing summary", llm.StaticReply("{}"), `{"style":"Include Analogy","answer":"A"}`, xerr.BadRequest, service.MsgSummaryRequired, 0},
		{"parse failure", llm.StaticReply("no braces here"), `{"style":"Include Analogy","summary":"S"}`, xerr.BadGateway, service.MsgParseFailure, 1},
		{"invocation failure", llm.FailingReply(errors.New("dial tcp: timeout")), `{"style":"Include Examples","summary":"S"}`, xerr.BadGateway, service.MsgInvocationFailed, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, cm := newTestEngine(tt.reply)

			w := postJSON(r, "/api/rephrase", tt.body)
			resp := decodeEnvelope(t, w, nil)

			if resp.Code != tt.wantCode {
				t.Errorf("code: got %d, want %d", resp.Code, tt.wantCode)
			}
			if resp.Message != tt.wantMsg {
				t.Errorf("message: got %q, want %q", resp.Message, tt.wantMsg)
			}
			if len(cm.Calls()) != tt.wantCalls {
				t.Errorf("calls: got %d, want %d", len(cm.Calls()), tt.wantCalls)
			}
		})
	}
}

func TestStylesAPI(t *testing.T) {
	r, _ := newTestEngine(llm.StaticReply("{}"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/styles", nil))

	var data struct {
		Styles []string `json:"styles"`
	}
	decodeEnvelope(t, w, &data)
	want := []string{"Simple/less technical terms", "Include Analogy", "Include Examples"}
	if strings.Join(data.Styles, "|") != strings.Join(want, "|") {
		t.Errorf("got %v, want %v", data.Styles, want)
	}
}

func TestHealth(t *testing.T) {
	r, cm := newTestEngine(llm.StaticReply("{}"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var data healthRespond
	decodeEnvelope(t, w, &data)
	if data.Status != "ok" || data.Model != "gpt-4" {
		t.Errorf("got %+v", data)
	}
	if len(cm.Calls()) != 0 {
		t.Error("health check must not call the model")
	}
}

func TestFormIndex(t *testing.T) {
	r, _ := newTestEngine(llm.StaticReply("{}"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Rephraser App", `name="summary"`, `name="answer"`, "Include Analogy", "Include Examples"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, "Rephrased Text:") {
		t.Error("empty form should not show the output box")
	}
}

func postForm(r *gin.Engine, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFormSubmit(t *testing.T) {
	r, _ := newTestEngine(llm.StaticReply(`{"rephrased_text":"S \nIt is like a solar-powered kitchen."}`))

	w := postForm(r, url.Values{
		"style":   {"Include Analogy"},
		"summary": {"S"},
		"answer":  {"Plants make food from light."},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	body := html.UnescapeString(w.Body.String())
	if !strings.Contains(body, "It is like a solar-powered kitchen.") {
		t.Error("result not rendered")
	}
	if !strings.Contains(body, `<option value="Include Analogy" selected>`) {
		t.Error("selected style not preserved")
	}
	if !strings.Contains(body, "Plants make food from light.") {
		t.Error("answer not preserved")
	}
}

func TestFormSubmitSummaryRequired(t *testing.T) {
	r, cm := newTestEngine(llm.StaticReply(`{"rephrased_text":"X"}`))

	w := postForm(r, url.Values{"style": {"Simple/less technical terms"}, "summary": {""}})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Summary is required!") {
		t.Error("missing summary message")
	}
	if len(cm.Calls()) != 0 {
		t.Error("model must not be called")
	}
}

func TestFormSubmitParseFailure(t *testing.T) {
	r, _ := newTestEngine(llm.StaticReply(`{"a":1}{"rephrased_text":"Y"}`))

	w := postForm(r, url.Values{"style": {"Include Examples"}, "summary": {"S"}, "answer": {"A"}})

	if w.Code != http.StatusBadGateway {
		t.Errorf("status: got %d, want 502", w.Code)
	}
	if !strings.Contains(w.Body.String(), service.MsgParseFailure) {
		t.Error("parse failure message not rendered")
	}
}
