package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  json.RawMessage `json:"meta"`
	Error *apiError       `json:"error"`
}

type agentClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func newAgentClient(opts *rootOptions) *agentClient {
	return &agentClient{
		baseURL: strings.TrimRight(opts.agentURL, "/"),
		token:   opts.token,
		http:    &http.Client{Timeout: opts.timeout},
	}
}

func (c *agentClient) do(ctx context.Context, method, path string, body any) (envelope, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return envelope{}, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return envelope{}, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return envelope{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return envelope{}, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return envelope{}, fmt.Errorf("agent returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if !env.Ok {
		if env.Error != nil {
			return env, fmt.Errorf("agent returned %d: %s: %s", resp.StatusCode, env.Error.Code, env.Error.Message)
		}
		return env, fmt.Errorf("agent returned %d", resp.StatusCode)
	}
	return env, nil
}
