package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/apierror"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

const maxResponseBytes = 4 << 20

// Client talks to the upstream HRMS REST API. Every failure it returns is an
// *apierror.Error.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// errorBody is the error payload the API sends with a non-2xx status.
type errorBody struct {
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return apierror.Local(fmt.Errorf("invalid request url: %w", err))
	}
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apierror.Local(fmt.Errorf("failed to encode request body: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return apierror.Local(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reqID := chiMiddleware.GetReqID(ctx); reqID != "" {
		req.Header.Set(chiMiddleware.RequestIDHeader, reqID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "upstream request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)
		return apierror.Network()
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.logger.WarnContext(ctx, "failed to read upstream response",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.Any("error", err),
		)
		return apierror.Network()
	}

	attrs := []any{
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp.StatusCode, data)
		c.logger.WarnContext(ctx, "upstream returned an error", append(attrs,
			slog.String("message", apiErr.Message),
			slog.Any("errors", apiErr.AllMessages()),
		)...)
		return apiErr
	}
	c.logger.DebugContext(ctx, "upstream request", attrs...)

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apierror.Local(fmt.Errorf("failed to decode %s %s response: %w", method, path, err))
	}
	return nil
}

// decodeError reads the error payload leniently: a body that is not the
// expected shape still yields the status and the generic message.
func decodeError(status int, data []byte) *apierror.Error {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return apierror.Response(status, "", nil)
	}

	var fields apierror.FieldErrors
	if len(body.Errors) > 0 && !bytes.Equal(body.Errors, []byte("null")) {
		if err := json.Unmarshal(body.Errors, &fields); err != nil {
			fields = nil
		}
	}
	return apierror.Response(status, body.Message, fields)
}

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	return q
}

func idPath(id int64) string {
	return strconv.FormatInt(id, 10)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var apiErr *apierror.Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
