package geofence

import (
	"context"
	"errors"
	"io"
	"net/http"

	geofenceerrors "go-timely/internal/geofence/errors"
	"go-timely/internal/location"
	"go-timely/internal/shared/apperror"
	"go-timely/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Service is the coordinator surface the handler drives.
type Service interface {
	Available() bool
	StartMonitoring(ctx context.Context) bool
	StopMonitoring(ctx context.Context) bool
	RequestPermission(ctx context.Context) bool
	ReportPermission(ctx context.Context, state location.PermissionState) error
	SetRadius(ctx context.Context, meters int) error
	Status(ctx context.Context) Status
	Handle(ctx context.Context, kind Kind, ev Event) Outcome
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Start(c *gin.Context) {
	ctx := c.Request.Context()
	started := h.service.StartMonitoring(ctx)
	response.Success(c, http.StatusOK, StartResponse{Started: started, Status: h.service.Status(ctx)}, nil)
}

func (h *Handler) Stop(c *gin.Context) {
	response.Success(c, http.StatusOK, StopResponse{Stopped: h.service.StopMonitoring(c.Request.Context())}, nil)
}

func (h *Handler) Status(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Status(c.Request.Context()), nil)
}

// UpdateRadius stores the radius and re-arms the region when it is being
// monitored so the new radius takes effect.
func (h *Handler) UpdateRadius(c *gin.Context) {
	var req RadiusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.service.SetRadius(ctx, req.Radius); err != nil {
		response.Fail(c, err)
		return
	}
	if h.service.Status(ctx).Monitoring {
		h.service.StartMonitoring(ctx)
	}
	response.Success(c, http.StatusOK, h.service.Status(ctx), nil)
}

func (h *Handler) Permission(c *gin.Context) {
	var req PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Invalid(c, err)
		return
	}

	ctx := c.Request.Context()
	if req.Status != "" {
		if err := h.service.ReportPermission(ctx, location.ParsePermission(req.Status)); err != nil {
			response.Fail(c, apperror.Wrap(err, apperror.CodeInternalError, "failed to record permission", http.StatusInternalServerError))
			return
		}
	}
	response.Success(c, http.StatusOK, PermissionResponse{Granted: h.service.RequestPermission(ctx)}, nil)
}

func (h *Handler) Event(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}
	if !req.Kind.Valid() {
		response.Fail(c, geofenceerrors.ErrInvalidKind)
		return
	}
	if !h.service.Available() {
		response.Fail(c, geofenceerrors.ErrUnavailable)
		return
	}

	outcome := h.service.Handle(c.Request.Context(), req.Kind, req.Event())
	response.Success(c, http.StatusOK, EventResponse{Outcome: outcome}, nil)
}
