package deeplink

import (
	"context"
	"net/http"

	"go-timely/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Service is the ingestion surface the handler drives.
type Service interface {
	ColdStart(ctx context.Context, initialURL string) Result
	WarmStart(ctx context.Context, raw string) Result
	NotificationTap(ctx context.Context, payload NotificationTapRequest) Result
	QuickAction(ctx context.Context, raw string) Result
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func bindURL(c *gin.Context) (string, bool) {
	var req URLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return "", false
	}
	return req.URL, true
}

// Triggers are always accepted; the disposition tells the caller what
// happened. Only malformed bodies are errors.
func writeResult(c *gin.Context, res Result) {
	status := http.StatusOK
	if res.Disposition == DispositionScheduled {
		status = http.StatusAccepted
	}
	response.Success(c, status, res, nil)
}

func (h *Handler) Initial(c *gin.Context) {
	raw, ok := bindURL(c)
	if !ok {
		return
	}
	writeResult(c, h.service.ColdStart(c.Request.Context(), raw))
}

func (h *Handler) Open(c *gin.Context) {
	raw, ok := bindURL(c)
	if !ok {
		return
	}
	writeResult(c, h.service.WarmStart(c.Request.Context(), raw))
}

func (h *Handler) QuickAction(c *gin.Context) {
	raw, ok := bindURL(c)
	if !ok {
		return
	}
	writeResult(c, h.service.QuickAction(c.Request.Context(), raw))
}

func (h *Handler) NotificationTap(c *gin.Context) {
	var req NotificationTapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}
	writeResult(c, h.service.NotificationTap(c.Request.Context(), req))
}
