// Package client is a typed HTTP client for the Craftly Living API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/craftly-living/backend/errs"
	"github.com/craftly-living/backend/matching"
	"github.com/craftly-living/backend/models"
	"github.com/rs/zerolog/log"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 10 << 20

// Error is a non-2xx API response.
type Error struct {
	StatusCode int
	Message    string
	Details    []errs.FieldError
}

func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+" "+d.Message)
	}
	return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, strings.Join(parts, "; "))
}

// Field returns the message reported for field, or "".
func (e *Error) Field(field string) string {
	for _, d := range e.Details {
		if d.Field == field {
			return d.Message
		}
	}
	return ""
}

// IsStatus reports whether err is an *Error with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New creates a client for the API at baseURL. A nil httpClient gets a
// default with a 30 second timeout.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.ParseRequestURI(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 15 * time.Second,
				}).DialContext,
				MaxIdleConns:          10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		}
	}
	return &Client{baseURL: u, http: httpClient}, nil
}

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) CreateRenovationProject(ctx context.Context, input models.RenovationProjectInput) (*models.RenovationProject, error) {
	var project models.RenovationProject
	if err := c.do(ctx, http.MethodPost, "/api/renovation-projects", nil, input, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) ListRenovationProjects(ctx context.Context) ([]models.RenovationProject, error) {
	projects := []models.RenovationProject{}
	if err := c.do(ctx, http.MethodGet, "/api/renovation-projects", nil, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) UserRenovationProjects(ctx context.Context, userID int64) ([]models.RenovationProject, error) {
	projects := []models.RenovationProject{}
	path := "/api/renovation-projects/user/" + strconv.FormatInt(userID, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) Dashboard(ctx context.Context, userID int64) ([]matching.ProjectView, error) {
	views := []matching.ProjectView{}
	path := "/api/dashboard/user/" + strconv.FormatInt(userID, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *Client) CreateBuilder(ctx context.Context, input models.BuilderInput) (*models.Builder, error) {
	var builder models.Builder
	if err := c.do(ctx, http.MethodPost, "/api/builders", nil, input, &builder); err != nil {
		return nil, err
	}
	return &builder, nil
}

func (c *Client) ListBuilders(ctx context.Context) ([]models.Builder, error) {
	builders := []models.Builder{}
	if err := c.do(ctx, http.MethodGet, "/api/builders", nil, nil, &builders); err != nil {
		return nil, err
	}
	return builders, nil
}

// FindBuilderByEmail returns nil and no error when no builder uses email.
func (c *Client) FindBuilderByEmail(ctx context.Context, email string) (*models.Builder, error) {
	builders := []models.Builder{}
	if err := c.do(ctx, http.MethodGet, "/api/builders", url.Values{"email": {email}}, nil, &builders); err != nil {
		return nil, err
	}
	if len(builders) == 0 {
		return nil, nil
	}
	return &builders[0], nil
}

func (c *Client) GetBuilder(ctx context.Context, id int64) (*models.Builder, error) {
	var builder models.Builder
	if err := c.do(ctx, http.MethodGet, "/api/builders/"+strconv.FormatInt(id, 10), nil, nil, &builder); err != nil {
		return nil, err
	}
	return &builder, nil
}

// Health returns nil when the server answers /health with 200.
func (c *Client) Health(ctx context.Context) error {
	var body map[string]any
	return c.do(ctx, http.MethodGet, "/health", nil, nil, &body)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var decoded struct {
			Error   string            `json:"error"`
			Details []errs.FieldError `json:"details"`
		}
		if json.Unmarshal(raw, &decoded) == nil && decoded.Error != "" {
			apiErr.Message = decoded.Error
			apiErr.Details = decoded.Details
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
