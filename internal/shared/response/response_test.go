package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-timely/internal/shared/apperror"
	"go-timely/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(path string, h gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestFail(t *testing.T) {
	t.Run("app error keeps its code", func(t *testing.T) {
		w := serve("/x", func(c *gin.Context) { response.Fail(c, apperror.ErrRateLimited) })

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		var env response.Envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Ok)
		if assert.NotNil(t, env.Error) {
			assert.Equal(t, apperror.CodeRateLimited, env.Error.Code)
		}
	})

	t.Run("plain error is hidden", func(t *testing.T) {
		w := serve("/x", func(c *gin.Context) { response.Fail(c, errors.New("pq: relation missing")) })

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "relation")
	})
}

func TestAbort_StopsChain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reached := false
	r.GET("/x", func(c *gin.Context) { response.Abort(c, apperror.ErrUnauthorized) }, func(c *gin.Context) { reached = true })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
}

func TestPageParams(t *testing.T) {
	cases := []struct {
		query      string
		page, size int
	}{
		{"", 1, 10},
		{"?page=3&page_size=25", 3, 25},
		{"?page=-1&page_size=0", 1, 10},
		{"?page_size=500", 1, 100},
		{"?page=abc", 1, 10},
	}
	for _, tc := range cases {
		var page, size int
		serve("/x"+tc.query, func(c *gin.Context) { page, size = response.PageParams(c) })
		assert.Equal(t, tc.page, page, tc.query)
		assert.Equal(t, tc.size, size, tc.query)
	}
}

func TestNewPage(t *testing.T) {
	p := response.NewPage(21, 3, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.Zero(t, response.NewPage(5, 1, 0).TotalPages)
}
