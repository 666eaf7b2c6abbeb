package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/wmsconsole/internal/common"
	"github.com/dmitrijs2005/wmsconsole/internal/console/credentials"
	"github.com/dmitrijs2005/wmsconsole/internal/console/messages"
	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNavigator struct {
	mu    sync.Mutex
	views []string
}

func (n *recordingNavigator) Navigate(view string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.views = append(n.views, view)
}

type captured struct {
	method      string
	path        string
	query       url.Values
	auth        string
	cookie      string
	requestID   string
	contentType string
	body        []byte
}

func newServer(t *testing.T, status int, respBody string) (*httptest.Server, *captured) {
	t.Helper()
	c := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.method = r.Method
		c.path = r.URL.Path
		c.query = r.URL.Query()
		c.auth = r.Header.Get(common.AuthorizationHeaderName)
		c.requestID = r.Header.Get(common.RequestIDHeaderName)
		c.contentType = r.Header.Get("Content-Type")
		if ck, err := r.Cookie(common.AuthCookieName); err == nil {
			c.cookie = ck.Value
		}
		c.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, respBody)
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

func newTestClient(t *testing.T, baseURL string, store credentials.Store, cfg Config) (*HTTPClient, *recordingNavigator) {
	t.Helper()
	nav := &recordingNavigator{}
	cfg.BaseURL = baseURL + "/api/v1"
	if cfg.Locale == "" {
		cfg.Locale = "en"
	}
	c, err := NewHTTPClient(cfg, store, nav, nil)
	require.NoError(t, err)
	return c, nav
}

func signedInStore(t *testing.T, token string) credentials.Store {
	t.Helper()
	s := credentials.NewMemoryStore()
	require.NoError(t, s.Set(context.Background(), token, models.User{ID: 1, Email: "a@b.com"}))
	return s
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient(Config{BaseURL: "localhost:8090"}, credentials.NewMemoryStore(), nil, nil)
	require.Error(t, err)

	_, err = NewHTTPClient(Config{BaseURL: "://bad"}, credentials.NewMemoryStore(), nil, nil)
	require.Error(t, err)
}

func TestDo_AttachesBearerAndDecodes(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `[{"id":1,"number":"A-1","amount":"10.50"}]`)
	c, nav := newTestClient(t, srv.URL, signedInStore(t, "t1"), Config{})

	var orders []models.Order
	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/orders", Op: messages.LoadOrders}, &orders)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/orders", got.path)
	assert.Equal(t, "Bearer t1", got.auth)
	assert.NotEmpty(t, got.requestID)
	assert.Empty(t, got.cookie)
	require.Len(t, orders, 1)
	assert.Equal(t, "A-1", orders[0].Number)
	assert.Empty(t, nav.views)
}

func TestDo_NoTokenSendsAnonymous(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{}`)
	c, _ := newTestClient(t, srv.URL, credentials.NewMemoryStore(), Config{})

	require.NoError(t, c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/users/signin", Body: map[string]string{"email": "a@b.com"}}, nil))
	assert.Empty(t, got.auth)
	assert.Equal(t, "application/json", got.contentType)
	assert.JSONEq(t, `{"email":"a@b.com"}`, string(got.body))
}

func TestDo_MirrorsCookie(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, ``)
	store := signedInStore(t, "tok-42")
	c, _ := newTestClient(t, srv.URL, store, Config{MirrorCookie: true})

	require.NoError(t, c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/user/profile"}, nil))

	creds, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, creds.Token, got.cookie)
	assert.Equal(t, "Bearer "+creds.Token, got.auth)
}

func TestDo_QueryAndTrailingSlash(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{}`)
	c, _ := newTestClient(t, srv.URL, signedInStore(t, "t"), Config{})

	q := url.Values{"id": {"17"}}
	require.NoError(t, c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/order/find/id/", Query: q}, nil))

	assert.Equal(t, "/api/v1/order/find/id/", got.path)
	assert.Equal(t, "17", got.query.Get("id"))
}

func TestDo_UnauthorizedClearsStoreAndNavigates(t *testing.T) {
	srv, _ := newServer(t, http.StatusUnauthorized, `{"message":"token expired"}`)
	store := signedInStore(t, "t1")
	c, nav := newTestClient(t, srv.URL, store, Config{})

	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/orders", Op: messages.LoadOrders}, nil)
	require.ErrorIs(t, err, ErrSessionExpired)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "token expired", UserMessage(err))

	_, err = store.Get(context.Background())
	require.ErrorIs(t, err, credentials.ErrNoCredentials)
	assert.Equal(t, []string{common.LoginView}, nav.views)
}

func TestDo_UnauthorizedWithoutBodyUsesFallback(t *testing.T) {
	srv, _ := newServer(t, http.StatusUnauthorized, ``)
	c, _ := newTestClient(t, srv.URL, signedInStore(t, "t1"), Config{})

	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/reports"}, nil)
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, messages.Lookup("en", messages.SessionExpired), UserMessage(err))
}

func TestDo_ForbiddenKeepsSession(t *testing.T) {
	srv, _ := newServer(t, http.StatusForbidden, `{"error":"admins only"}`)
	store := signedInStore(t, "t1")
	c, nav := newTestClient(t, srv.URL, store, Config{})

	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/users"}, nil)
	require.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "admins only", UserMessage(err))

	creds, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "t1", creds.Token)
	assert.Empty(t, nav.views)
}

func TestDo_ServerErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"order is locked"}`, "order is locked"},
		{"error field", `{"error":"bad date"}`, "bad date"},
		{"blank message", `{"message":"   "}`, "Failed to update order"},
		{"non json", `<html>oops</html>`, "Failed to update order"},
		{"non string", `{"message":42}`, "Failed to update order"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, http.StatusInternalServerError, tt.body)
			c, nav := newTestClient(t, srv.URL, signedInStore(t, "t"), Config{})

			err := c.Do(context.Background(), Request{Method: http.MethodPut, Path: "/orders/1", Op: messages.UpdateOrder}, nil)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
			assert.Equal(t, tt.want, apiErr.Message)
			assert.Empty(t, nav.views)
		})
	}
}

func TestDo_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	store := signedInStore(t, "t1")
	c, nav := newTestClient(t, base, store, Config{Locale: "ru"})

	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/orders", Op: messages.LoadOrders}, nil)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "Не удалось загрузить заказы", UserMessage(err))

	_, err = store.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, nav.views)
}

func TestDo_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c, _ := newTestClient(t, srv.URL, credentials.NewMemoryStore(), Config{Timeout: 50 * time.Millisecond})

	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/orders"}, nil)
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDo_CancelledContextIsNotUnavailable(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{}`)
	c, _ := newTestClient(t, srv.URL, credentials.NewMemoryStore(), Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/orders"}, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, errors.Is(err, ErrUnavailable))
}

func TestDo_Multipart(t *testing.T) {
	var (
		field, name string
		content     []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, hdr, err := r.FormFile("avatar")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		field, name = "avatar", hdr.Filename
		content, _ = io.ReadAll(file)
		_ = json.NewEncoder(w).Encode(map[string]string{"avatarUrl": "/static/a.png"})
	}))
	t.Cleanup(srv.Close)

	c, _ := newTestClient(t, srv.URL, signedInStore(t, "t"), Config{})

	var resp models.AvatarResponse
	err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/users/1/avatar/upload",
		File:   &File{Field: "avatar", Name: "a.png", Content: []byte("\x89PNG")},
	}, &resp)
	require.NoError(t, err)

	assert.Equal(t, "avatar", field)
	assert.Equal(t, "a.png", name)
	assert.Equal(t, []byte("\x89PNG"), content)
	assert.Equal(t, "/static/a.png", resp.AvatarURL)
}

func TestDo_BadJSONResponse(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"id":`)
	c, _ := newTestClient(t, srv.URL, signedInStore(t, "t"), Config{})

	var u models.User
	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/user/profile"}, &u)
	require.ErrorContains(t, err, "decode response")
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "boom (HTTP 500)", (&APIError{Status: 500, Message: "boom"}).Error())
	assert.Equal(t, "down: server unavailable", (&APIError{Message: "down", Err: ErrUnavailable}).Error())
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}
