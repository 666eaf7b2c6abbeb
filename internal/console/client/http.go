package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/wmsconsole/internal/common"
	"github.com/dmitrijs2005/wmsconsole/internal/console/credentials"
	"github.com/dmitrijs2005/wmsconsole/internal/console/messages"
	"github.com/dmitrijs2005/wmsconsole/internal/logging"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

type Config struct {
	BaseURL string
	// Timeout applies per request; 0 leaves it to the transport.
	Timeout      time.Duration
	MirrorCookie bool
	Locale       string
	// HTTP defaults to a fresh http.Client.
	HTTP *http.Client
}

type HTTPClient struct {
	baseURL      *url.URL
	http         *http.Client
	store        credentials.Store
	nav          Navigator
	log          logging.Logger
	timeout      time.Duration
	mirrorCookie bool
	locale       string
}

func NewHTTPClient(cfg Config, store credentials.Store, nav Navigator, log logging.Logger) (*HTTPClient, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", cfg.BaseURL)
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	if log == nil {
		log = logging.Nop()
	}

	return &HTTPClient{
		baseURL:      base,
		http:         httpClient,
		store:        store,
		nav:          nav,
		log:          log,
		timeout:      cfg.Timeout,
		mirrorCookie: cfg.MirrorCookie,
		locale:       cfg.Locale,
	}, nil
}

func (c *HTTPClient) Do(ctx context.Context, req Request, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	requestID := uuid.NewString()
	log := c.log.With("request_id", requestID, "method", req.Method, "path", req.Path)

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return err
	}
	httpReq.Header.Set(common.RequestIDHeaderName, requestID)
	c.authorize(ctx, httpReq)

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		log.Warn(ctx, "request failed", "error", err)
		return &APIError{
			Message: c.fallback(req.Op),
			Err:     fmt.Errorf("%w: %w", ErrUnavailable, err),
		}
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return decodeBody(resp.Body, out)
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := backendMessage(body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		log.Info(ctx, "session rejected by backend, signing out")
		if err := c.store.Clear(ctx); err != nil {
			log.Error(ctx, "failed to clear credentials", "error", err)
		}
		c.nav.Navigate(common.LoginView)
		if message == "" {
			message = c.fallback(messages.SessionExpired)
		}
		return &APIError{Status: resp.StatusCode, Message: message, Err: ErrSessionExpired}
	case http.StatusForbidden:
		if message == "" {
			message = c.fallback(messages.Forbidden)
		}
		return &APIError{Status: resp.StatusCode, Message: message, Err: ErrForbidden}
	}

	if message == "" {
		message = c.fallback(req.Op)
	}
	log.Warn(ctx, "backend error", "status", resp.StatusCode)
	return &APIError{Status: resp.StatusCode, Message: message}
}

func (c *HTTPClient) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	u := c.baseURL.JoinPath(req.Path)
	// JoinPath drops a trailing slash that some backend routes need.
	if strings.HasSuffix(req.Path, "/") && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.File != nil:
		buf, ct, err := multipartBody(req.File)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case req.Body != nil:
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", req.Method, req.Path, err)
		}
		body, contentType = bytes.NewReader(raw), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", req.Method, req.Path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	return httpReq, nil
}

// authorize attaches the stored token. A store failure sends the request
// anonymously; the backend answers 401 and the session is reset.
func (c *HTTPClient) authorize(ctx context.Context, req *http.Request) {
	creds, err := c.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, credentials.ErrNoCredentials) {
			c.log.Warn(ctx, "failed to read credentials", "error", err)
		}
		return
	}
	req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+creds.Token)
	if c.mirrorCookie {
		req.AddCookie(&http.Cookie{Name: common.AuthCookieName, Value: creds.Token})
	}
}

func (c *HTTPClient) fallback(op messages.Key) string {
	if op == "" {
		op = messages.Generic
	}
	return messages.Lookup(c.locale, op)
}

func multipartBody(f *File) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile(f.Field, f.Name)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(f.Content); err != nil {
		return nil, "", fmt.Errorf("write form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func decodeBody(r io.Reader, out any) error {
	if out == nil {
		_, _ = io.Copy(io.Discard, r)
		return nil
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// backendMessage extracts "message" or "error" from a JSON error body.
func backendMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"message", "error"} {
		if v := gjson.GetBytes(body, path); v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
			return strings.TrimSpace(v.Str)
		}
	}
	return ""
}
