package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ovasilenko/breedbook/internal/client/models"
	"github.com/ovasilenko/breedbook/internal/common"
	"github.com/ovasilenko/breedbook/internal/logging"
)

// HTTPClient is the concrete Client over the two REST APIs.
//
// Catalog endpoints carry the service x-api-key header; the user bearer
// credential is attached by the authTransport on every request that has one.
type HTTPClient struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	hc      *http.Client
	tr      *authTransport
	log     logging.Logger
}

// NewHTTPClient builds a client for the API rooted at baseURL. The token
// source is bound later via SetTokenSource, during bootstrap, because the
// session manager that provides it is itself constructed on top of the
// client.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, log logging.Logger) *HTTPClient {
	tr := &authTransport{}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		hc:      &http.Client{Transport: tr},
		tr:      tr,
		log:     log,
	}
}

// SetTokenSource binds the bearer credential source. Must be called during
// bootstrap, before the first request is issued.
func (c *HTTPClient) SetTokenSource(ts TokenSource) {
	c.tr.ts = ts
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) ListBreeds(ctx context.Context) ([]models.Breed, error) {
	var dtos []breedDTO
	if err := c.get(ctx, "/cats/breeds", nil, true, &dtos); err != nil {
		return nil, err
	}
	return toBreeds(dtos), nil
}

func (c *HTTPClient) SearchBreeds(ctx context.Context, req models.SearchRequest) ([]models.Breed, error) {
	params := url.Values{}
	if req.Query != "" {
		params.Set("q", req.Query)
	}
	if req.Limit > 0 {
		params.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Page > 0 {
		params.Set("page", strconv.Itoa(req.Page))
	}
	if req.Order != "" {
		params.Set("order", string(req.Order))
	}

	var dtos []breedDTO
	if err := c.get(ctx, "/cats/breeds/search", params, true, &dtos); err != nil {
		return nil, err
	}
	return toBreeds(dtos), nil
}

func (c *HTTPClient) BreedImages(ctx context.Context, breedID string, limit int) ([]models.BreedImage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var dtos []imageDTO
	if err := c.get(ctx, "/imagesbybreedid/"+url.PathEscape(breedID), params, true, &dtos); err != nil {
		return nil, err
	}
	return toImages(dtos), nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (models.User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var u models.User
	if err := c.post(ctx, "/users/register", body, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.User, error) {
	body := map[string]string{"email": email, "password": password}
	var u models.User
	if err := c.post(ctx, "/users/login", body, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (c *HTTPClient) Me(ctx context.Context) (models.User, error) {
	var u models.User
	if err := c.get(ctx, "/users/me", nil, false, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (c *HTTPClient) CheckEmail(ctx context.Context, email string) (bool, error) {
	body := map[string]string{"email": email}
	var resp struct {
		Available bool `json:"available"`
	}
	if err := c.post(ctx, "/users/check-email", body, &resp); err != nil {
		return false, err
	}
	return resp.Available, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, withAPIKey bool, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if withAPIKey {
		req.Header.Set(common.APIKeyHeaderName, c.apiKey)
	}
	return c.do(req, out)
}

func (c *HTTPClient) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	ctx := req.Context()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		return c.mapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		c.log.Warn(ctx, "unexpected status", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)
		return c.mapStatus(resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	c.log.Debug(ctx, "request ok", "method", req.Method, "path", req.URL.Path)
	return nil
}

func (c *HTTPClient) mapStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrUnauthorized
	case code >= 500:
		return ErrUnavailable
	default:
		return fmt.Errorf("unexpected status %d", code)
	}
}

func (c *HTTPClient) mapError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		if uerr.Timeout() {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, uerr.Err)
	}
	return err
}
