package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/wmsconsole/internal/common"
	"github.com/dmitrijs2005/wmsconsole/internal/console/backendtest"
	"github.com/dmitrijs2005/wmsconsole/internal/console/client"
	"github.com/dmitrijs2005/wmsconsole/internal/console/credentials"
	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/dmitrijs2005/wmsconsole/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type env struct {
	backend *backendtest.Backend
	store   credentials.Store
	gw      *client.HTTPClient
	views   *[]string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	b := backendtest.New(t)
	store := credentials.NewMemoryStore()
	views := &[]string{}
	gw, err := client.NewHTTPClient(
		client.Config{BaseURL: b.URL(), Locale: "en"},
		store,
		client.NavigatorFunc(func(v string) { *views = append(*views, v) }),
		nil,
	)
	require.NoError(t, err)
	return &env{backend: b, store: store, gw: gw, views: views}
}

func (e *env) signIn(t *testing.T, email, password string) models.User {
	t.Helper()
	u, err := NewAuthService(e.gw, e.store).SignIn(context.Background(), models.SignInForm{Email: email, Password: password})
	require.NoError(t, err)
	return u
}

func mustDate(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse(models.DateLayout, s)
	require.NoError(t, err)
	return &d
}

func TestSignIn_StoresCredentialsAndAuthorizesNextCall(t *testing.T) {
	e := newEnv(t)
	e.backend.FixedToken = "t1"
	e.backend.AddUser(models.User{Email: "a@b.com", Firstname: "Ann"}, "x")

	u := e.signIn(t, "a@b.com", "x")
	assert.Equal(t, "Ann", u.Firstname)

	creds, err := e.store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "t1", creds.Token)
	require.NotNil(t, creds.User)
	assert.Equal(t, "a@b.com", creds.User.Email)

	_, err = NewOrderService(e.gw).List(context.Background(), models.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer t1", e.backend.LastAuthorization("/orders"))
}

func TestSignIn_WrongPasswordKeepsStoreEmpty(t *testing.T) {
	e := newEnv(t)
	e.backend.AddUser(models.User{Email: "a@b.com"}, "secret1")

	_, err := NewAuthService(e.gw, e.store).SignIn(context.Background(), models.SignInForm{Email: "a@b.com", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", client.UserMessage(err))

	_, err = e.store.Get(context.Background())
	require.ErrorIs(t, err, credentials.ErrNoCredentials)
}

func TestSignIn_InvalidEmailMakesNoCall(t *testing.T) {
	e := newEnv(t)

	_, err := NewAuthService(e.gw, e.store).SignIn(context.Background(), models.SignInForm{Email: "not-an-email", Password: "x"})
	require.ErrorIs(t, err, validation.ErrValidation)
	assert.Zero(t, e.backend.TotalHits())
}

func TestSignIn_EmptyTokenIsRejected(t *testing.T) {
	e := newEnv(t)
	e.backend.Respond("/users/signin", http.StatusOK, `{"token":"","email":"a@b.com"}`)

	_, err := NewAuthService(e.gw, e.store).SignIn(context.Background(), models.SignInForm{Email: "a@b.com", Password: "x"})
	require.ErrorIs(t, err, ErrNoToken)
	_, err = e.store.Get(context.Background())
	require.ErrorIs(t, err, credentials.ErrNoCredentials)
}

func TestRegister(t *testing.T) {
	e := newEnv(t)
	auth := NewAuthService(e.gw, e.store)

	err := auth.Register(context.Background(), models.RegisterForm{
		Firstname: "New", INN: "1234567890", Email: "n@b.com", Password: "secret1",
	})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(e.backend.LastBody("/users"), &body))
	assert.Equal(t, "secret1", body["pass"])

	e.signIn(t, "n@b.com", "secret1")
}

func TestRegister_InvalidINNMakesNoCall(t *testing.T) {
	e := newEnv(t)

	err := NewAuthService(e.gw, e.store).Register(context.Background(), models.RegisterForm{
		Firstname: "New", INN: "123", Email: "n@b.com", Password: "secret1",
	})
	var verr validation.Errors
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "inn")
	assert.Zero(t, e.backend.TotalHits())
}

func TestAnyUnauthorizedClearsSession(t *testing.T) {
	e := newEnv(t)
	e.backend.AddUser(models.User{Email: "a@b.com"}, "secret1")
	e.signIn(t, "a@b.com", "secret1")

	e.backend.RevokeTokens()

	_, err := NewReportService(e.gw).List(context.Background())
	require.ErrorIs(t, err, client.ErrSessionExpired)

	_, err = e.store.Get(context.Background())
	require.ErrorIs(t, err, credentials.ErrNoCredentials)
	assert.Equal(t, []string{common.LoginView}, *e.views)

	// the next call goes out anonymously
	_, err = NewOrderService(e.gw).List(context.Background(), models.DateRange{})
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Empty(t, e.backend.LastAuthorization("/orders"))
}

func TestSignOut_BestEffort(t *testing.T) {
	e := newEnv(t)
	e.backend.AddUser(models.User{Email: "a@b.com"}, "secret1")
	e.signIn(t, "a@b.com", "secret1")

	require.NoError(t, NewAuthService(e.gw, e.store).SignOut(context.Background()))
	assert.Equal(t, 1, e.backend.Hits("/user/signout"))

	// the old token is dead on the backend now
	_, err := NewProfileService(e.gw).Get(context.Background())
	require.ErrorIs(t, err, client.ErrSessionExpired)
}

func TestProfile(t *testing.T) {
	e := newEnv(t)
	e.backend.AddUser(models.User{Email: "a@b.com", Firstname: "Ann", INN: "1234567890", Phone: "+79990000000"}, "secret1")
	e.signIn(t, "a@b.com", "secret1")

	profiles := NewProfileService(e.gw)
	u, err := profiles.Get(context.Background())
	require.NoError(t, err)

	form := models.ProfileFormFrom(u)
	form.Lastname = "Lee"
	updated, err := profiles.Update(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "Lee", updated.Lastname)

	// the cached record is the sign-in snapshot
	creds, err := e.store.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, creds.User.Lastname)
}

func TestProfile_InvalidPhoneMakesNoCall(t *testing.T) {
	e := newEnv(t)

	_, err := NewProfileService(e.gw).Update(context.Background(), models.ProfileForm{
		Email: "a@b.com", Firstname: "Ann", INN: "1234567890", Phone: "89990000000",
	})
	var verr validation.Errors
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "phone")
	assert.Zero(t, e.backend.TotalHits())
}

func TestOrders(t *testing.T) {
	e := newEnv(t)
	e.backend.AddUser(models.User{Email: "a@b.com"}, "secret1")
	e.backend.SetOrders(
		models.Order{ID: 1, Number: "A-1", Date: "2026-10-01", Amount: decimal.RequireFromString("100.50")},
		models.Order{ID: 2, Number: "A-2", Date: "2026-10-20"},
	)
	e.backend.SetOrderDetails(models.OrderDetails{ID: 1, ClientName: "ACME", Lines: []models.OrderLine{{Articul: "X1", Qty: 2}}})
	e.signIn(t, "a@b.com", "secret1")

	orders := NewOrderService(e.gw)
	ctx := context.Background()

	all, err := orders.List(ctx, models.DateRange{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Empty(t, e.backend.LastQuery("/orders"))

	filtered, err := orders.List(ctx, models.DateRange{Start: mustDate(t, "2026-10-01"), End: mustDate(t, "2026-10-14")})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.True(t, filtered[0].Amount.Equal(decimal.RequireFromString("100.5")))
	assert.Equal(t, "2026-10-01", e.backend.LastQuery("/orders").Get("startDate"))
	assert.Equal(t, "2026-10-14", e.backend.LastQuery("/orders").Get("endDate"))

	d, err := orders.Details(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "ACME", d.ClientName)
	require.Len(t, d.Lines, 1)

	_, err = orders.Details(ctx, 99)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	require.NoError(t, orders.Update(ctx, 2, models.Order{Number: "A-2b"}))
	require.NoError(t, orders.Delete(ctx, 1))

	all, err = orders.List(ctx, models.DateRange{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "A-2b", all[0].Number)
}

func TestOrders_IncompleteRangeMakesNoCall(t *testing.T) {
	e := newEnv(t)
	orders := NewOrderService(e.gw)

	_, err := orders.List(context.Background(), models.DateRange{Start: mustDate(t, "2026-10-01")})
	require.ErrorIs(t, err, validation.ErrValidation)

	_, err = orders.List(context.Background(), models.DateRange{Start: mustDate(t, "2026-10-02"), End: mustDate(t, "2026-10-01")})
	require.ErrorIs(t, err, validation.ErrValidation)

	_, err = orders.Details(context.Background(), 0)
	require.ErrorIs(t, err, common.ErrorInvalidID)

	assert.Zero(t, e.backend.TotalHits())
}

func TestAssembly(t *testing.T) {
	e := newEnv(t)
	e.backend.AddUser(models.User{Email: "a@b.com"}, "secret1")
	e.backend.SetAssemblyOrders(
		models.AssemblyOrder{ID: 1, DateDoc: "2026-10-01T08:00:00Z", StatusID: 2},
		models.AssemblyOrder{ID: 2, DateDoc: "2026-09-01T08:00:00Z", StatusID: 1},
	)
	e.backend.SetCompletedOrders(models.AssemblyOrder{ID: 3, StatusID: 3})
	e.signIn(t, "a@b.com", "secret1")

	svc := NewAssemblyService(e.gw)
	got, err := svc.List(context.Background(), models.DateRange{Start: mustDate(t, "2026-10-01"), End: mustDate(t, "2026-10-31")})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.AssemblyInProgress, got[0].Status())

	done, err := svc.Completed(context.Background())
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, models.AssemblyCompleted, done[0].Status())
}

func TestReports(t *testing.T) {
	e := newEnv(t)
	e.backend.AddUser(models.User{Email: "a@b.com"}, "secret1")
	e.signIn(t, "a@b.com", "secret1")
	reports := NewReportService(e.gw)

	got, err := reports.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultReports, got)

	e.backend.SetReports(models.Report{ID: 10, Name: "Custom"})
	got, err = reports.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Report{{ID: 10, Name: "Custom"}}, got)
}

func TestReports_Prepare(t *testing.T) {
	reports := NewReportService(nil)

	form := models.ReportForm{ReportID: 2, Format: "PDF"}
	got, err := reports.Prepare(form)
	require.NoError(t, err)
	assert.Equal(t, form, got)

	_, err = reports.Prepare(models.ReportForm{ReportID: 2, Format: "DOCX"})
	require.ErrorIs(t, err, validation.ErrValidation)

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	_, err = reports.Prepare(models.ReportForm{ReportID: 2, Format: "CSV", Period: models.DateRange{Start: &start}})
	require.ErrorIs(t, err, validation.ErrValidation)
}

func TestEmployees(t *testing.T) {
	e := newEnv(t)
	e.backend.AddUser(models.User{Email: "admin@b.com", IsAdmin: true}, "admin1")
	e.signIn(t, "admin@b.com", "admin1")

	svc := NewEmployeeService(e.gw)
	ctx := context.Background()

	form := models.EmployeeForm{Email: "w@b.com", Firstname: "Worker", Phone: "+79991112233", INN: "123456789012"}
	added, err := svc.Add(ctx, form)
	require.NoError(t, err)
	require.NotZero(t, added.ID)

	form.Lastname = "Smith"
	updated, err := svc.Update(ctx, added.ID, form)
	require.NoError(t, err)
	assert.Equal(t, "Smith", updated.Lastname)

	require.NoError(t, svc.SetBlocked(ctx, added.ID, true))
	u, ok := e.backend.User(added.ID)
	require.True(t, ok)
	assert.True(t, u.Blocked)
	assert.JSONEq(t, `{"blocked":true}`, string(e.backend.LastBody("/users/2/block")))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.Delete(ctx, added.ID))
	_, ok = e.backend.User(added.ID)
	assert.False(t, ok)
}

func TestEmployees_ForbiddenKeepsSession(t *testing.T) {
	e := newEnv(t)
	e.backend.AddUser(models.User{Email: "clerk@b.com"}, "clerk1")
	e.signIn(t, "clerk@b.com", "clerk1")

	_, err := NewEmployeeService(e.gw).List(context.Background())
	require.ErrorIs(t, err, client.ErrForbidden)

	creds, err := e.store.Get(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, creds.Token)
	assert.Empty(t, *e.views)
}

func TestChangePassword(t *testing.T) {
	e := newEnv(t)
	u := e.backend.AddUser(models.User{Email: "a@b.com"}, "secret1")
	e.signIn(t, "a@b.com", "secret1")

	err := NewPasswordService(e.gw).Change(context.Background(), models.PasswordForm{
		ID: u.ID, NewPassword: "secret2", ConfirmPassword: "secret2",
	})
	require.NoError(t, err)
	assert.True(t, e.backend.PasswordMatches(u.ID, "secret2"))
	assert.JSONEq(t, `{"id":1,"password":"secret2"}`, string(e.backend.LastBody("/user/update/pass")))
}

func TestChangePassword_MismatchMakesNoCall(t *testing.T) {
	e := newEnv(t)
	svc := NewPasswordService(e.gw)

	err := svc.Change(context.Background(), models.PasswordForm{ID: 1, NewPassword: "secret1", ConfirmPassword: "secret2"})
	var verr validation.Errors
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "passwords do not match", verr["ConfirmPassword"])

	err = svc.Change(context.Background(), models.PasswordForm{ID: 1, NewPassword: "abc", ConfirmPassword: "abc"})
	require.ErrorIs(t, err, validation.ErrValidation)

	assert.Zero(t, e.backend.TotalHits())
}

func TestAvatar(t *testing.T) {
	e := newEnv(t)
	u := e.backend.AddUser(models.User{Email: "a@b.com"}, "secret1")
	e.signIn(t, "a@b.com", "secret1")
	svc := NewAvatarService(e.gw)

	path := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(path, append(pngHeader, make([]byte, 100)...), 0o600))

	url, err := svc.UploadFile(context.Background(), u.ID, path)
	require.NoError(t, err)
	assert.Equal(t, "/static/avatars/1.png", url)

	stored, _ := e.backend.User(u.ID)
	assert.Equal(t, url, stored.Avatar)

	require.NoError(t, svc.Delete(context.Background(), u.ID))
	stored, _ = e.backend.User(u.ID)
	assert.Empty(t, stored.Avatar)
}

func TestAvatar_RejectedLocally(t *testing.T) {
	e := newEnv(t)
	svc := NewAvatarService(e.gw)
	dir := t.TempDir()

	big := filepath.Join(dir, "big.png")
	require.NoError(t, os.WriteFile(big, append(pngHeader, make([]byte, 6*1024*1024)...), 0o600))
	_, err := svc.UploadFile(context.Background(), 1, big)
	var verr validation.Errors
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "file must not exceed 5 MB", verr["avatar"])

	_, err = svc.Upload(context.Background(), 1, "notes.txt", []byte("plain text, not an image"))
	require.ErrorIs(t, err, validation.ErrValidation)

	_, err = svc.Upload(context.Background(), 1, "empty.png", nil)
	require.ErrorIs(t, err, validation.ErrValidation)

	_, err = svc.UploadFile(context.Background(), 1, filepath.Join(dir, "missing.png"))
	require.Error(t, err)

	assert.Zero(t, e.backend.TotalHits())
}

func TestDashboard(t *testing.T) {
	e := newEnv(t)
	e.backend.AddUser(models.User{Email: "a@b.com"}, "secret1")
	e.backend.SetOrders(models.Order{ID: 1}, models.Order{ID: 2})
	e.backend.SetAssemblyOrders(models.AssemblyOrder{ID: 1})
	e.backend.SetCompletedOrders(models.AssemblyOrder{ID: 2}, models.AssemblyOrder{ID: 3}, models.AssemblyOrder{ID: 4})
	e.signIn(t, "a@b.com", "secret1")

	dash := NewDashboardService(NewOrderService(e.gw), NewAssemblyService(e.gw))
	sum, err := dash.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Orders: 2, Assembly: 1, Completed: 3}, sum)

	e.backend.Respond("/completed-orders", http.StatusInternalServerError, `{"message":"boom"}`)
	_, err = dash.Summary(context.Background())
	require.Error(t, err)
	assert.Equal(t, "boom", client.UserMessage(err))
}

type failingStore struct{ credentials.Store }

func (failingStore) Set(context.Context, string, models.User) error { return errors.New("disk full") }

func TestSignIn_StoreFailure(t *testing.T) {
	e := newEnv(t)
	e.backend.AddUser(models.User{Email: "a@b.com"}, "secret1")

	_, err := NewAuthService(e.gw, failingStore{credentials.NewMemoryStore()}).SignIn(context.Background(), models.SignInForm{Email: "a@b.com", Password: "secret1"})
	require.ErrorContains(t, err, "disk full")
}

func TestUploadSendsMultipart(t *testing.T) {
	e := newEnv(t)
	u := e.backend.AddUser(models.User{Email: "a@b.com"}, "secret1")
	e.signIn(t, "a@b.com", "secret1")

	_, err := NewAvatarService(e.gw).Upload(context.Background(), u.ID, "a.png", pngHeader)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(e.backend.LastBody("/users/1/avatar/upload"), pngHeader))
}
