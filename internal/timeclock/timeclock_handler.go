package timeclock

import (
	"errors"
	"io"
	"net/http"

	"go-timely/internal/middleware"
	"go-timely/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ClockNow(c *gin.Context) {
	defer middleware.Release(c)

	var req ClockNowRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Invalid(c, err)
		return
	}

	ev, err := h.service.ClockNow(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	middleware.Remember(c, ev)
	response.Success(c, http.StatusCreated, ev, nil)
}

func (h *Handler) Status(c *gin.Context) {
	response.Success(c, http.StatusOK, StatusResponse{IsClocking: h.service.IsClocking()}, nil)
}

func (h *Handler) LastEvent(c *gin.Context) {
	resp, err := h.service.LastEvent(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Confirm(c *gin.Context) {
	ev, err := h.service.ConfirmEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, ev, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}

	ev, err := h.service.UpdateEvent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, ev, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")}, nil)
}
