package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// TokenProvider returns the current access token, or "" when the session is
// anonymous.
type TokenProvider func() string

// Client talks to the platform's REST API. Next-page links returned inside
// pagination envelopes are absolute URLs and are passed back verbatim.
type Client struct {
	http    *http.Client
	baseURL string
	token   TokenProvider
	log     zerolog.Logger
}

func New(baseURL string, timeout time.Duration, token TokenProvider, log zerolog.Logger) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		log:     log,
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) resolve(pathOrURL string) string {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL
	}
	return c.baseURL + pathOrURL
}

func (c *Client) do(ctx context.Context, method, pathOrURL string, body io.Reader, contentType string, v any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(pathOrURL), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if access := c.token(); access != "" {
		req.Header.Set("Authorization", "JWT "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := parseAPIError(resp)
		c.log.Warn().
			Str("method", method).
			Str("url", req.URL.String()).
			Int("status", resp.StatusCode).
			Msg("request failed")
		return apiErr
	}

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, req.URL.Path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, pathOrURL string, params url.Values, v any) error {
	if len(params) > 0 {
		pathOrURL += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, pathOrURL, nil, "application/json", v)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), "application/json", v)
}

func (c *Client) patchJSON(ctx context.Context, path string, payload, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, bytes.NewReader(body), "application/json", v)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "application/json", nil)
}

// sendForm encodes fields and file uploads as multipart form data and sends
// them with the given method.
func (c *Client) sendForm(ctx context.Context, method, path string, fields map[string]string, files map[string]string, v any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return err
		}
	}
	for name, filePath := range files {
		f, err := os.Open(filePath)
		if err != nil {
			return err
		}
		part, err := w.CreateFormFile(name, filepath.Base(filePath))
		if err != nil {
			f.Close()
			return err
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return err
		}
		f.Close()
	}
	if err := w.Close(); err != nil {
		return err
	}

	return c.do(ctx, method, path, &buf, w.FormDataContentType(), v)
}
