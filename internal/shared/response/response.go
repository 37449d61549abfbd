package response

import (
	"strconv"

	"go-timely/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type Page struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPage(total int64, page, pageSize int) *Page {
	p := &Page{Total: total, Page: page, PageSize: pageSize}
	if pageSize > 0 {
		p.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return p
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Envelope wraps every JSON body the agent returns.
type Envelope struct {
	Ok    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Meta  *Page      `json:"meta,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data any, meta *Page) {
	c.JSON(status, Envelope{Ok: true, Data: data, Meta: meta})
}

// Fail writes err through apperror.ToHTTP so unknown errors never leak.
func Fail(c *gin.Context, err error) {
	h := apperror.ToHTTP(err)
	c.JSON(h.Status, Envelope{Error: &ErrorBody{Code: h.Code, Message: h.Message, Details: h.Details}})
}

// Invalid reports a binding or validation failure.
func Invalid(c *gin.Context, err error) {
	Fail(c, apperror.MapValidationError(err))
}

// Abort is Fail for middleware: the rest of the chain is skipped.
func Abort(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}

// PageParams reads page and page_size, clamping page_size to 1..100.
func PageParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	page = max(page, 1)
	pageSize, _ = strconv.Atoi(c.Query("page_size"))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return page, min(pageSize, maxPageSize)
}
