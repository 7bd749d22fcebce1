package echoapi

import (
	"context"
	"net/http"
	"os"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/drodriguezm/tablero/core"
	"github.com/drodriguezm/tablero/core/advisor"
	"github.com/drodriguezm/tablero/core/budget"
	"github.com/drodriguezm/tablero/core/hr"
	"github.com/drodriguezm/tablero/core/indicator"
	"github.com/drodriguezm/tablero/core/record"
	"github.com/drodriguezm/tablero/core/report"
	"github.com/drodriguezm/tablero/core/schedule"
	"github.com/drodriguezm/tablero/core/user"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Logger         core.Logger

		UserSvc      user.Service
		AdvisorSvc   *advisor.Service
		IndicatorSvc *indicator.Service
		BudgetSvc    *budget.Service
		RecordSvc    *record.Service
		ScheduleSvc  *schedule.Service
		HRSvc        *hr.Service
		Loader       *report.Loader
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options, shutdown chan os.Signal) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: shutdown,
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerUserAPI(v1, jwt, s.opts.UserSvc)
	registerAdvisorAPI(v1, jwt, s.opts.AdvisorSvc)
	registerIndicatorAPI(v1, jwt, s.opts.IndicatorSvc)
	registerBudgetAPI(v1, jwt, s.opts.BudgetSvc)
	registerRecordAPI(v1, jwt, s.opts.RecordSvc)
	registerScheduleAPI(v1, jwt, s.opts.ScheduleSvc, s.opts.Loader)
	registerHRAPI(v1, jwt, s.opts.HRSvc)
	registerDashboardAPI(v1, jwt, s.opts.Loader)
}

// signalShutdown triggers a graceful shutdown of the whole app.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Tablero API!")
}
