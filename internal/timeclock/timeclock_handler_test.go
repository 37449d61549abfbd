package timeclock_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-timely/internal/clockapi"
	clockapierrors "go-timely/internal/clockapi/errors"
	"go-timely/internal/domain"
	"go-timely/internal/timeclock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	clockNowFn func(ctx context.Context, req timeclock.ClockNowRequest) (*domain.ClockEvent, error)
	updateFn   func(ctx context.Context, id string, req timeclock.UpdateEventRequest) (*domain.ClockEvent, error)
	deleteFn   func(ctx context.Context, id string) error
	clocking   bool
}

func (f *fakeService) Clock(ctx context.Context, req clockapi.ClockRequest, action domain.ClockAction) (*domain.ClockEvent, error) {
	return nil, nil
}
func (f *fakeService) Submit(ctx context.Context, req clockapi.ClockRequest, action domain.ClockAction, source domain.TriggerSource) (*domain.ClockEvent, error) {
	return nil, nil
}
func (f *fakeService) ClockNow(ctx context.Context, req timeclock.ClockNowRequest) (*domain.ClockEvent, error) {
	return f.clockNowFn(ctx, req)
}
func (f *fakeService) IsClocking() bool { return f.clocking }
func (f *fakeService) LastEvent(ctx context.Context) (timeclock.LastEventResponse, error) {
	return timeclock.LastEventResponse{NextAction: domain.ActionClockIn}, nil
}
func (f *fakeService) ConfirmEvent(ctx context.Context, id string) (*domain.ClockEvent, error) {
	return &domain.ClockEvent{ID: id}, nil
}
func (f *fakeService) UpdateEvent(ctx context.Context, id string, req timeclock.UpdateEventRequest) (*domain.ClockEvent, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakeService) DeleteEvent(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

func TestHandler_ClockNow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("created", func(t *testing.T) {
		var got timeclock.ClockNowRequest
		h := timeclock.NewHandler(&fakeService{clockNowFn: func(ctx context.Context, req timeclock.ClockNowRequest) (*domain.ClockEvent, error) {
			got = req
			return &domain.ClockEvent{ID: "ev-1", Action: domain.ActionClockOut}, nil
		}})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/clock", strings.NewReader(`{"action":"clock-out","notes":"done"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.ClockNow(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "clock-out", got.Action)
		assert.Equal(t, "done", *got.Notes)
		assert.Contains(t, w.Body.String(), `"ev-1"`)
	})

	t.Run("empty body infers action", func(t *testing.T) {
		h := timeclock.NewHandler(&fakeService{clockNowFn: func(ctx context.Context, req timeclock.ClockNowRequest) (*domain.ClockEvent, error) {
			assert.Empty(t, req.Action)
			return &domain.ClockEvent{ID: "ev-2"}, nil
		}})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/clock", http.NoBody)
		h.ClockNow(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("invalid action", func(t *testing.T) {
		h := timeclock.NewHandler(&fakeService{})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/clock", strings.NewReader(`{"action":"lunch"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.ClockNow(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("upstream failure surfaces", func(t *testing.T) {
		h := timeclock.NewHandler(&fakeService{clockNowFn: func(ctx context.Context, req timeclock.ClockNowRequest) (*domain.ClockEvent, error) {
			return nil, clockapierrors.Upstream(http.StatusInternalServerError, "down")
		}})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/clock", http.NoBody)
		h.ClockNow(c)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "UPSTREAM_ERROR")
	})
}

func TestHandler_StatusAndLastEvent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := timeclock.NewHandler(&fakeService{clocking: true})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/clock/status", nil)
	h.Status(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isClocking":true`)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/clock/last-event", nil)
	h.LastEvent(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), `"nextAction":"clock-in"`)
}

func TestHandler_UpdateAndDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var deleted string
	h := timeclock.NewHandler(&fakeService{
		updateFn: func(ctx context.Context, id string, req timeclock.UpdateEventRequest) (*domain.ClockEvent, error) {
			return &domain.ClockEvent{ID: id, Hour: req.Hour}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "ev-7"}}
	c.Request = httptest.NewRequest(http.MethodPut, "/clock/events/ev-7", strings.NewReader(`{"hour":"2024-01-01T08:00:00Z"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Update(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2024-01-01T08:00:00Z")

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Params = gin.Params{{Key: "id", Value: "ev-7"}}
	c2.Request = httptest.NewRequest(http.MethodPut, "/clock/events/ev-7", strings.NewReader(`{}`))
	c2.Request.Header.Set("Content-Type", "application/json")
	h.Update(c2)
	assert.Equal(t, http.StatusBadRequest, w2.Code)

	w3 := httptest.NewRecorder()
	c3, _ := gin.CreateTestContext(w3)
	c3.Params = gin.Params{{Key: "id", Value: "ev-7"}}
	c3.Request = httptest.NewRequest(http.MethodDelete, "/clock/events/ev-7", nil)
	h.Delete(c3)
	assert.Equal(t, http.StatusOK, w3.Code)
	assert.Equal(t, "ev-7", deleted)
}
