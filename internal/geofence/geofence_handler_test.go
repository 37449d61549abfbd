package geofence_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-timely/internal/geofence"
	"go-timely/internal/location"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakeGeofenceService struct {
	available    bool
	status       geofence.Status
	StartFn      func(ctx context.Context) bool
	StopFn       func(ctx context.Context) bool
	RequestFn    func(ctx context.Context) bool
	ReportFn     func(ctx context.Context, state location.PermissionState) error
	SetRadiusFn  func(ctx context.Context, meters int) error
	HandleFn     func(ctx context.Context, kind geofence.Kind, ev geofence.Event) geofence.Outcome
	startedCalls int
}

func (f *fakeGeofenceService) Available() bool { return f.available }
func (f *fakeGeofenceService) StartMonitoring(ctx context.Context) bool {
	f.startedCalls++
	return f.StartFn(ctx)
}
func (f *fakeGeofenceService) StopMonitoring(ctx context.Context) bool    { return f.StopFn(ctx) }
func (f *fakeGeofenceService) RequestPermission(ctx context.Context) bool { return f.RequestFn(ctx) }
func (f *fakeGeofenceService) ReportPermission(ctx context.Context, state location.PermissionState) error {
	return f.ReportFn(ctx, state)
}
func (f *fakeGeofenceService) SetRadius(ctx context.Context, meters int) error {
	return f.SetRadiusFn(ctx, meters)
}
func (f *fakeGeofenceService) Status(ctx context.Context) geofence.Status { return f.status }
func (f *fakeGeofenceService) Handle(ctx context.Context, kind geofence.Kind, ev geofence.Event) geofence.Outcome {
	return f.HandleFn(ctx, kind, ev)
}

func newRouter(svc geofence.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	geofence.RegisterRoutes(r.Group("/api/v1"), geofence.NewHandler(svc))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestGeofenceHandler_StartStopStatus(t *testing.T) {
	svc := &fakeGeofenceService{
		available: true,
		status:    geofence.Status{Available: true, Monitoring: true, Radius: 100},
		StartFn:   func(ctx context.Context) bool { return true },
		StopFn:    func(ctx context.Context) bool { return false },
	}
	r := newRouter(svc)

	w := do(r, http.MethodPost, "/api/v1/geofence/start", "")
	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	var started geofence.StartResponse
	assert.NoError(t, json.Unmarshal(env.Data, &started))
	assert.True(t, started.Started)
	assert.Equal(t, 100, started.Status.Radius)

	w = do(r, http.MethodPost, "/api/v1/geofence/stop", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stopped":false`)

	w = do(r, http.MethodGet, "/api/v1/geofence/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"monitoring":true`)
}

func TestGeofenceHandler_UpdateRadius(t *testing.T) {
	t.Run("re-arms when monitoring", func(t *testing.T) {
		var got int
		svc := &fakeGeofenceService{
			status:      geofence.Status{Monitoring: true, Radius: 150},
			SetRadiusFn: func(ctx context.Context, meters int) error { got = meters; return nil },
			StartFn:     func(ctx context.Context) bool { return true },
		}
		w := do(newRouter(svc), http.MethodPut, "/api/v1/geofence/radius", `{"radius":150}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 150, got)
		assert.Equal(t, 1, svc.startedCalls)
	})

	t.Run("idle region is not armed", func(t *testing.T) {
		svc := &fakeGeofenceService{
			SetRadiusFn: func(ctx context.Context, meters int) error { return nil },
		}
		w := do(newRouter(svc), http.MethodPut, "/api/v1/geofence/radius", `{"radius":80}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, svc.startedCalls)
	})

	t.Run("invalid body", func(t *testing.T) {
		svc := &fakeGeofenceService{}
		w := do(newRouter(svc), http.MethodPut, "/api/v1/geofence/radius", `{"radius":0}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})
}

func TestGeofenceHandler_Permission(t *testing.T) {
	var reported []location.PermissionState
	svc := &fakeGeofenceService{
		ReportFn: func(ctx context.Context, state location.PermissionState) error {
			reported = append(reported, state)
			return nil
		},
		RequestFn: func(ctx context.Context) bool {
			return len(reported) > 0 && reported[len(reported)-1] == location.PermissionGranted
		},
	}
	r := newRouter(svc)

	w := do(r, http.MethodPost, "/api/v1/geofence/permission", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"granted":false`)
	assert.Empty(t, reported)

	w = do(r, http.MethodPost, "/api/v1/geofence/permission", `{"status":"granted"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"granted":true`)

	w = do(r, http.MethodPost, "/api/v1/geofence/permission", `{"status":"whenInUse"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.ReportFn = func(ctx context.Context, state location.PermissionState) error { return errors.New("redis down") }
	w = do(r, http.MethodPost, "/api/v1/geofence/permission", `{"status":"denied"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGeofenceHandler_Event(t *testing.T) {
	var gotKind geofence.Kind
	var gotEvent geofence.Event
	svc := &fakeGeofenceService{
		available: true,
		HandleFn: func(ctx context.Context, kind geofence.Kind, ev geofence.Event) geofence.Outcome {
			gotKind, gotEvent = kind, ev
			return geofence.OutcomeDrafted
		},
	}
	r := newRouter(svc)

	w := do(r, http.MethodPost, "/api/v1/geofence/events",
		`{"kind":"exit","identifier":"workplace","latitude":40.4,"longitude":-3.7,"timestamp":1709539200}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"outcome":"drafted"`)
	assert.Equal(t, geofence.KindExit, gotKind)
	assert.Equal(t, int64(1709539200), gotEvent.Timestamp.Unix())

	w = do(r, http.MethodPost, "/api/v1/geofence/events", `{"kind":"dwell"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.available = false
	w = do(r, http.MethodPost, "/api/v1/geofence/events", `{"kind":"enter"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	if assert.NotNil(t, env.Error) {
		assert.Equal(t, "SERVICE_UNAVAILABLE", env.Error.Code)
	}
}
