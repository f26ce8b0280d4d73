package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client — HTTP-клиент к API сервера. Вся аутентификация живёт в транспорте
// (цепочка интерсепторов), сам клиент про токены ничего не знает.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт клиента с заданным транспортом. timeout <= 0 — без таймаута.
func NewClient(baseURL string, transport http.RoundTripper, timeout time.Duration) *Client {
	hc := &http.Client{Transport: transport}
	if timeout > 0 {
		hc.Timeout = timeout
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// BaseURL returns the server URL the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// PostJSON sends payload as a JSON POST to path.
func (c *Client) PostJSON(ctx context.Context, path string, payload any) (*http.Response, []byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(b))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// GetJSON sends a GET to path expecting a JSON body.
func (c *Client) GetJSON(ctx context.Context, path string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// do выполняет запрос и вычитывает тело целиком; тело ответа закрыто.
func (c *Client) do(req *http.Request) (*http.Response, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, fmt.Errorf("read body: %w", err)
	}
	return resp, bytes.TrimSpace(body), nil
}
