// Package backendtest runs an in-process fake of the warehouse REST backend
// for tests. It keeps its data in memory, issues HS256 tokens on sign-in and
// records what each request carried so tests can assert on it.
package backendtest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// BasePath is where the API is mounted.
const BasePath = "/api/v1"

type account struct {
	user models.User
	hash []byte
}

type override struct {
	status int
	body   string
}

type Backend struct {
	// FixedToken, when set, is issued on every sign-in instead of a JWT.
	FixedToken string

	server *httptest.Server
	secret []byte

	mu        sync.Mutex
	nextID    int64
	accounts  map[int64]*account
	sessions  map[string]int64
	orders    []models.Order
	details   map[int64]models.OrderDetails
	assembly  []models.AssemblyOrder
	completed []models.AssemblyOrder
	reports   []models.Report
	overrides map[string]override
	holds     map[string]chan struct{}

	lastAuth   map[string]string
	lastCookie map[string]string
	lastQuery  map[string]url.Values
	lastBody   map[string][]byte
	hits       map[string]int
}

// New starts a backend that is shut down when the test ends.
func New(t testing.TB) *Backend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &Backend{
		secret:     []byte("backendtest-secret"),
		nextID:     1,
		accounts:   make(map[int64]*account),
		sessions:   make(map[string]int64),
		details:    make(map[int64]models.OrderDetails),
		overrides:  make(map[string]override),
		holds:      make(map[string]chan struct{}),
		lastAuth:   make(map[string]string),
		lastCookie: make(map[string]string),
		lastQuery:  make(map[string]url.Values),
		lastBody:   make(map[string][]byte),
		hits:       make(map[string]int),
	}
	b.server = httptest.NewServer(b.router())
	t.Cleanup(func() {
		b.releaseAll()
		b.server.Close()
	})
	return b
}

// URL is the API base URL, including BasePath.
func (b *Backend) URL() string {
	return b.server.URL + BasePath
}

// AddUser creates an account. An empty password makes sign-in impossible.
func (b *Backend) AddUser(u models.User, password string) models.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addUserLocked(u, password)
}

func (b *Backend) addUserLocked(u models.User, password string) models.User {
	u.ID = b.nextID
	b.nextID++
	acc := &account{user: u}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		acc.hash = hash
	}
	b.accounts[u.ID] = acc
	return u
}

// User returns the backend's current copy of an account.
func (b *Backend) User(id int64) (models.User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[id]
	if !ok {
		return models.User{}, false
	}
	return acc.user, true
}

// PasswordMatches reports whether password is the account's password.
func (b *Backend) PasswordMatches(id int64, password string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[id]
	if !ok || acc.hash == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) == nil
}

func (b *Backend) SetOrders(orders ...models.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = orders
}

func (b *Backend) SetOrderDetails(d models.OrderDetails) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.details[d.ID] = d
}

func (b *Backend) SetAssemblyOrders(orders ...models.AssemblyOrder) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.assembly = orders
}

func (b *Backend) SetCompletedOrders(orders ...models.AssemblyOrder) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.completed = orders
}

func (b *Backend) SetReports(reports ...models.Report) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reports = reports
}

// Respond makes every request to path answer status with body.
// The path is relative to BasePath, e.g. "/orders".
func (b *Backend) Respond(path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overrides[path] = override{status: status, body: body}
}

// RevokeTokens invalidates every issued token; the next authenticated call
// gets 401.
func (b *Backend) RevokeTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions = make(map[string]int64)
}

// Hold blocks requests to path until the returned func is called or the
// client goes away.
func (b *Backend) Hold(path string) (release func()) {
	ch := make(chan struct{})
	b.mu.Lock()
	b.holds[path] = ch
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.holds[path] == ch {
				delete(b.holds, path)
				close(ch)
			}
		})
	}
}

func (b *Backend) releaseAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for path, ch := range b.holds {
		close(ch)
		delete(b.holds, path)
	}
}

// LastAuthorization is the Authorization header of the last request to path.
func (b *Backend) LastAuthorization(path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastAuth[path]
}

// LastCookie is the Auth cookie of the last request to path.
func (b *Backend) LastCookie(path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastCookie[path]
}

func (b *Backend) LastQuery(path string) url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastQuery[path]
}

func (b *Backend) LastBody(path string) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastBody[path]
}

// Hits counts requests to path.
func (b *Backend) Hits(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

// TotalHits counts every request the backend received.
func (b *Backend) TotalHits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, v := range b.hits {
		n += v
	}
	return n
}

// record stores what the request carried and applies Respond and Hold.
func (b *Backend) record(c *gin.Context) {
	path := strings.TrimPrefix(c.Request.URL.Path, BasePath)

	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}

	cookie := ""
	if ck, err := c.Request.Cookie("Auth"); err == nil {
		cookie = ck.Value
	}

	b.mu.Lock()
	b.hits[path]++
	b.lastAuth[path] = c.GetHeader("Authorization")
	b.lastCookie[path] = cookie
	b.lastQuery[path] = c.Request.URL.Query()
	b.lastBody[path] = body
	ov, hasOverride := b.overrides[path]
	hold := b.holds[path]
	b.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-c.Request.Context().Done():
			c.Abort()
			return
		}
	}

	if hasOverride {
		c.Data(ov.status, "application/json", []byte(ov.body))
		c.Abort()
		return
	}
	c.Next()
}

const tokenTTL = time.Hour

func (b *Backend) issue(userID int64) (string, error) {
	token := b.FixedToken
	if token == "" {
		var err error
		if token, err = issueToken(userID, b.secret, tokenTTL); err != nil {
			return "", err
		}
	}
	b.sessions[token] = userID
	return token, nil
}

func (b *Backend) router() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), b.record)

	api := r.Group(BasePath)
	api.POST("/users/signin", b.signIn)
	api.POST("/users", b.createUser)

	authed := api.Group("", b.authenticate)
	authed.POST("/user/signout", b.signOut)
	authed.GET("/user/profile", b.getProfile)
	authed.PUT("/user/profile", b.updateProfile)
	authed.POST("/user/update/pass", b.changePassword)

	authed.GET("/orders", b.listOrders)
	authed.GET("/order/find/id/", b.orderDetails)
	authed.PUT("/orders/:id", b.updateOrder)
	authed.DELETE("/orders/:id", b.deleteOrder)
	authed.GET("/assembly-orders", b.listAssembly)
	authed.GET("/completed-orders", b.listCompleted)
	authed.GET("/reports", b.listReports)

	authed.POST("/users/:id/avatar/upload", b.selfOrAdmin, b.uploadAvatar)
	authed.POST("/users/:id/avatar/delete", b.selfOrAdmin, b.deleteAvatar)

	admin := authed.Group("", b.requireAdmin)
	admin.GET("/users", b.listUsers)
	admin.PUT("/users/:id", b.updateUser)
	admin.POST("/users/:id/delete", b.deleteUser)
	admin.POST("/users/:id/block", b.blockUser)

	return r
}
