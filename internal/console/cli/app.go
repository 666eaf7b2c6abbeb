package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/dmitrijs2005/wmsconsole/internal/common"
	"github.com/dmitrijs2005/wmsconsole/internal/console/client"
	"github.com/dmitrijs2005/wmsconsole/internal/console/config"
	"github.com/dmitrijs2005/wmsconsole/internal/console/credentials"
	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/dmitrijs2005/wmsconsole/internal/console/render"
	"github.com/dmitrijs2005/wmsconsole/internal/console/services"
	"github.com/dmitrijs2005/wmsconsole/internal/console/session"
	"github.com/dmitrijs2005/wmsconsole/internal/logging"
)

// HomeView is where a successful sign-in lands.
const HomeView = "/"

type App struct {
	config  *config.Config
	log     logging.Logger
	session *session.Session

	authService      services.AuthService
	profileService   services.ProfileService
	orderService     services.OrderService
	assemblyService  services.AssemblyService
	reportService    services.ReportService
	employeeService  services.EmployeeService
	passwordService  services.PasswordService
	avatarService    services.AvatarService
	dashboardService services.DashboardService

	reader *bufio.Reader
	out    io.Writer
	format render.Format

	mu      sync.Mutex
	view    string
	current pagedView

	ordersView    *listView[models.Order]
	assemblyView  *listView[models.AssemblyOrder]
	completedView *listView[models.AssemblyOrder]
	reportsView   *listView[models.Report]
	employeesView *listView[models.User]

	unsubscribe func()
	closers     []io.Closer
}

// NewApp wires the console against the configured backend. Credentials are
// kept in the SQLite file at c.DatabasePath so a session survives restarts.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger, logCloser := logging.NewConsoleLogger(c.LogFile, c.LogLevel)

	db, err := credentials.OpenDatabase(ctx, c.DatabasePath)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	app, err := newApp(c, credentials.NewSQLiteStore(db), logger, os.Stdin, os.Stdout)
	if err != nil {
		_ = db.Close()
		_ = logCloser.Close()
		return nil, err
	}
	app.closers = append(app.closers, logCloser, db)
	return app, nil
}

func newApp(c *config.Config, store credentials.Store, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	a := &App{
		config: c,
		log:    log,
		reader: bufio.NewReader(in),
		out:    out,
		format: render.Table,
		view:   common.LoginView,
	}

	gw, err := client.NewHTTPClient(client.Config{
		BaseURL:      c.APIBaseURL,
		Timeout:      c.RequestTimeout,
		MirrorCookie: c.MirrorCookie,
		Locale:       c.Locale,
	}, store, a, log)
	if err != nil {
		return nil, err
	}

	a.session = session.New(store, a)
	a.authService = services.NewAuthService(gw, store)
	a.profileService = services.NewProfileService(gw)
	a.orderService = services.NewOrderService(gw)
	a.assemblyService = services.NewAssemblyService(gw)
	a.reportService = services.NewReportService(gw)
	a.employeeService = services.NewEmployeeService(gw)
	a.passwordService = services.NewPasswordService(gw)
	a.avatarService = services.NewAvatarService(gw)
	a.dashboardService = services.NewDashboardService(a.orderService, a.assemblyService)

	a.ordersView = newListView("orders", c.RowsPerPage, orderHeaders, a.orderRow)
	a.assemblyView = newListView("assembly", c.RowsPerPage, assemblyHeaders, a.assemblyRow)
	a.completedView = newListView("completed", c.RowsPerPage, assemblyHeaders, a.assemblyRow)
	a.reportsView = newListView("reports", c.RowsPerPage, reportHeaders, reportRow)
	a.employeesView = newListView("employees", c.RowsPerPage, employeeHeaders, employeeRow)

	// Data of a signed-out user must not be shown to the next one.
	a.unsubscribe = a.session.Subscribe(func(s session.State) {
		if s == session.Unauthenticated {
			a.resetViews()
		}
	})

	return a, nil
}

// Navigate implements client.Navigator. The gateway calls it with the login
// view when the backend rejects the session.
func (a *App) Navigate(view string) {
	a.mu.Lock()
	prev := a.view
	a.view = view
	a.mu.Unlock()

	if view == common.LoginView && prev != common.LoginView {
		a.log.Info(context.Background(), "switched to login view", "from", prev)
	}
}

func (a *App) currentView() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *App) resetViews() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = nil
	a.ordersView.Reset(nil)
	a.assemblyView.Reset(nil)
	a.completedView.Reset(nil)
	a.reportsView.Reset(nil)
	a.employeesView.Reset(nil)
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.log.Error(ctx, "failed to close console", "error", err)
		}
	}()
	a.Root(ctx)
}

// Close releases the database and the log file.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	var errs []error
	for _, c := range slices.Backward(a.closers) {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
