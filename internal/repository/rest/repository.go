package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

type repo struct {
	baseURL string
	client  *http.Client
}

// NewRepo returns a client for the party backend rooted at baseURL. Requests
// carry no timeout of their own; the caller's context bounds them.
func NewRepo(baseURL string, client *http.Client) *repo {
	if client == nil {
		client = http.DefaultClient
	}

	return &repo{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (r *repo) endpoint(segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}

	return r.baseURL + "/" + strings.Join(escaped, "/")
}

func (r *repo) getJSON(ctx context.Context, endpoint string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return r.do(req, dst)
}

func (r *repo) postJSON(ctx context.Context, endpoint string, body any, dst any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return r.do(req, dst)
}

func (r *repo) do(req *http.Request, dst any) error {
	funcName := "rest.do"
	slog.DebugContext(req.Context(), funcName, "method", req.Method, "url", req.URL.String())

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		slog.DebugContext(req.Context(), funcName, "status", resp.StatusCode)
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if dst == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return nil
}
