package clockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	clockapierrors "go-timely/internal/clockapi/errors"
	"go-timely/internal/domain"
	"go-timely/internal/kvstore"
	"go-timely/internal/shared/apperror"

	"go.uber.org/zap"
)

const DefaultTimeout = 10 * time.Second

// Client is the remote time-tracking service. Submissions are not idempotent;
// callers must not retry them blindly.
//
//go:generate mockgen -source=clockapi_client.go -destination=mock/clockapi_client_mock.go -package=mock
type Client interface {
	ClockIn(ctx context.Context, req ClockRequest) (*domain.ClockEvent, error)
	ClockOut(ctx context.Context, req ClockRequest) (*domain.ClockEvent, error)
	Clock(ctx context.Context, req ClockRequest, action domain.ClockAction) (*domain.ClockEvent, error)
	ClockInDraft(ctx context.Context, req DraftRequest) (*domain.ClockEvent, error)
	ClockOutDraft(ctx context.Context, req DraftRequest) (*domain.ClockEvent, error)
	GetClockHistory(ctx context.Context, params HistoryParams) (*HistoryResponse, error)
	GetUserSettings(ctx context.Context) (*UserSettings, error)
	ConfirmClockEvent(ctx context.Context, id string) (*domain.ClockEvent, error)
	UpdateClockEvent(ctx context.Context, id string, req UpdateClockEventRequest) (*domain.ClockEvent, error)
	DeleteClockEvent(ctx context.Context, id string) error
}

type httpClient struct {
	baseURL string
	store   kvstore.Store
	http    *http.Client
	logger  *zap.Logger
}

// NewHTTPClient reads the bearer token from store on every request, so a
// login performed elsewhere takes effect without a restart.
func NewHTTPClient(baseURL string, timeout time.Duration, store kvstore.Store, logger ...*zap.Logger) Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	l := zap.L().Named("clockapi.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("clockapi.client")
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		http:    &http.Client{Timeout: timeout},
		logger:  l,
	}
}

func (c *httpClient) ClockIn(ctx context.Context, req ClockRequest) (*domain.ClockEvent, error) {
	req.Action = domain.ActionClockIn
	return c.submit(ctx, "/clockin", req)
}

func (c *httpClient) ClockOut(ctx context.Context, req ClockRequest) (*domain.ClockEvent, error) {
	req.Action = domain.ActionClockOut
	return c.submit(ctx, "/clockin", req)
}

func (c *httpClient) Clock(ctx context.Context, req ClockRequest, action domain.ClockAction) (*domain.ClockEvent, error) {
	if action == domain.ActionClockIn {
		return c.ClockIn(ctx, req)
	}
	return c.ClockOut(ctx, req)
}

func (c *httpClient) ClockInDraft(ctx context.Context, req DraftRequest) (*domain.ClockEvent, error) {
	req.Action = domain.ActionClockIn
	return c.submit(ctx, "/clockin/draft", req)
}

func (c *httpClient) ClockOutDraft(ctx context.Context, req DraftRequest) (*domain.ClockEvent, error) {
	req.Action = domain.ActionClockOut
	return c.submit(ctx, "/clockin/draft", req)
}

func (c *httpClient) submit(ctx context.Context, path string, body any) (*domain.ClockEvent, error) {
	var ev domain.ClockEvent
	if err := c.do(ctx, http.MethodPost, path, nil, body, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (c *httpClient) GetClockHistory(ctx context.Context, params HistoryParams) (*HistoryResponse, error) {
	q := url.Values{}
	q.Set("startDate", params.StartDate)
	q.Set("endDate", params.EndDate)
	if params.Timezone != "" {
		q.Set("timezone", params.Timezone)
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/clockin/history", q, nil, &raw); err != nil {
		return nil, err
	}
	return decodeHistory(raw)
}

// decodeHistory accepts the plain {data, summary} body and the wrapped
// {status, url, data: {data, summary}} form some deployments return.
func decodeHistory(raw json.RawMessage) (*HistoryResponse, error) {
	var probe struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}

	body := raw
	if trimmed := bytes.TrimSpace(probe.Data); len(trimmed) > 0 && trimmed[0] == '{' {
		body = trimmed
	}

	var out HistoryResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return &out, nil
}

func (c *httpClient) GetUserSettings(ctx context.Context) (*UserSettings, error) {
	var out UserSettings
	if err := c.do(ctx, http.MethodGet, "/users/settings", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) ConfirmClockEvent(ctx context.Context, id string) (*domain.ClockEvent, error) {
	if strings.TrimSpace(id) == "" {
		return nil, clockapierrors.ErrInvalidEventID
	}
	var ev domain.ClockEvent
	if err := c.do(ctx, http.MethodPost, "/clockin/"+url.PathEscape(id)+"/confirm", nil, nil, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (c *httpClient) UpdateClockEvent(ctx context.Context, id string, req UpdateClockEventRequest) (*domain.ClockEvent, error) {
	if strings.TrimSpace(id) == "" {
		return nil, clockapierrors.ErrInvalidEventID
	}
	var ev domain.ClockEvent
	if err := c.do(ctx, http.MethodPut, "/clockin/"+url.PathEscape(id), nil, req, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (c *httpClient) DeleteClockEvent(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return clockapierrors.ErrInvalidEventID
	}
	return c.do(ctx, http.MethodDelete, "/clockin/"+url.PathEscape(id), nil, nil, nil)
}

func (c *httpClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	token, ok, err := c.store.Get(ctx, kvstore.KeyToken)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "Failed to read session token", http.StatusInternalServerError)
	}
	if !ok || token == "" {
		return clockapierrors.ErrMissingToken
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("clock api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return apperror.Wrap(err, clockapierrors.ErrUnreachable.Code, clockapierrors.ErrUnreachable.Message, clockapierrors.ErrUnreachable.HTTPStatus)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("clock api returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return clockapierrors.Upstream(resp.StatusCode, string(raw))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
