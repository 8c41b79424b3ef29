package websocket

import (
	"net/http"

	"Rephraser/internal/middleware/requestid"
	"Rephraser/internal/modules/rephrase/application/dto/request"
	"Rephraser/internal/modules/rephrase/application/service"
	"Rephraser/pkg/xerr"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const actionRephrase = "rephrase"

// Event 服务端推送的消息
type Event struct {
	Event string      `json:"event"` // done / error
	Data  interface{} `json:"data"`
}

type errorData struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

type inboundMessage struct {
	Action string                  `json:"action"`
	Data   request.RephraseRequest `json:"data"`
}

// RephraseWSHandler 改写 WebSocket 接口
//
// 每条客户端消息对应一次改写，按顺序处理，上一条完成后才读取下一条。
type RephraseWSHandler struct {
	svc      service.RephraseService
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewRephraseWSHandler allowOrigins 为空或包含 "*" 时不校验 Origin
func NewRephraseWSHandler(svc service.RephraseService, allowOrigins []string, logger *zap.Logger) *RephraseWSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RephraseWSHandler{
		svc: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowOrigins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(allowOrigins))
	for _, o := range allowOrigins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[o] = struct{}{}
	}
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

// Rephrase WebSocket 改写接口
//
// WebSocket URL:
//
//	ws://localhost:8000/api/rephrase/ws
//
// 客户端发送消息格式：
//
//	{"action": "rephrase", "data": {"style": "Include Examples", "summary": "...", "answer": "..."}}
//
// 服务端响应格式：
//
//	{"event": "done", "data": {"rephrased_text": "...", "style": "...", "tokens_used": 0, "latency_ms": 900}}
//	{"event": "error", "data": {"code": 400, "error": "Summary is required!"}}
func (h *RephraseWSHandler) Rephrase(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := h.logger.With(
		zap.String("request_id", requestid.Get(c)),
		zap.String("remote_addr", c.Request.RemoteAddr))
	log.Info("websocket connected")

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read error", zap.Error(err))
			}
			break
		}

		if msg.Action != actionRephrase {
			if err := conn.WriteJSON(Event{Event: "error", Data: errorData{
				Code:  xerr.BadRequest,
				Error: "unsupported action: " + msg.Action,
			}}); err != nil {
				break
			}
			continue
		}

		var event Event
		resp, err := h.svc.Rephrase(c.Request.Context(), msg.Data)
		if err != nil {
			data := errorData{Code: xerr.ErrServerError.Code, Error: xerr.ErrServerError.Message}
			if ce, ok := xerr.As(err); ok {
				data = errorData{Code: ce.Code, Error: ce.Message}
			}
			if data.Code != xerr.BadRequest {
				log.Error("websocket rephrase failed", zap.Error(err))
			}
			event = Event{Event: "error", Data: data}
		} else {
			event = Event{Event: "done", Data: resp}
		}

		if err := conn.WriteJSON(event); err != nil {
			log.Warn("websocket write failed", zap.Error(err))
			break
		}
	}

	log.Info("websocket disconnected")
}
