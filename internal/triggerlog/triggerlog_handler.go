package triggerlog

import (
	"net/http"

	"go-timely/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var params ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Invalid(c, err)
		return
	}

	page, pageSize := response.PageParams(c)

	rows, total, err := h.service.List(c.Request.Context(), params, page, pageSize)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, rows, response.NewPage(total, page, pageSize))
}
