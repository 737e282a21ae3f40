// Package dealscout is the typed client for the DealScout backend REST API.
// All coercion of loose wire shapes happens here, once, at the boundary;
// downstream code only ever sees parsed entities.
package dealscout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"github.com/junipr-dev/dealscout/internal/domain"
	"github.com/junipr-dev/dealscout/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, dest)
}

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, dest)
}

func (c *Client) put(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, dest)
}

func (c *Client) delete(ctx context.Context, path string, dest any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, dest)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader = http.NoBody

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.WrapError(err, errcodes.TimeoutExceeded, "backend request timed out")
		}
		return domain.WrapError(err, errcodes.BackendUnavailable, "backend unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return statusError(resp)
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return domain.WrapError(err, errcodes.BackendError, "malformed backend response")
	}

	return nil
}

// statusError maps a non-2xx backend reply to a domain error. The backend
// reports problems as {"detail": "..."}.
func statusError(resp *http.Response) error {
	var payload struct {
		Detail string `json:"detail"`
	}

	_ = json.NewDecoder(resp.Body).Decode(&payload)

	message := payload.Detail
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return domain.NewError(errcodes.NotFound, message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		// The backend flags platforms it cannot list to automatically with a
		// free-text detail; that outcome is expected, not a validation bug.
		if strings.Contains(strings.ToLower(message), "manual listing") {
			return domain.NewError(errcodes.ManualListingRequired, message)
		}
		return domain.NewError(errcodes.ValidationError, message)
	default:
		return domain.NewError(errcodes.BackendError, message)
	}
}

// remapNotFound narrows a generic 404 to a resource-specific code.
func remapNotFound(err error, code failure.ErrorCode, message string) error {
	if err == nil {
		return nil
	}

	if got, ok := domain.GetCode(err); ok && got == errcodes.NotFound {
		return domain.NewError(code, message)
	}

	return err
}
