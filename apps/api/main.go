package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/drodriguezm/tablero/apps/api/echo"
	"github.com/drodriguezm/tablero/core"
	"github.com/drodriguezm/tablero/core/advisor"
	"github.com/drodriguezm/tablero/core/budget"
	"github.com/drodriguezm/tablero/core/hr"
	"github.com/drodriguezm/tablero/core/indicator"
	"github.com/drodriguezm/tablero/core/record"
	"github.com/drodriguezm/tablero/core/report"
	"github.com/drodriguezm/tablero/core/schedule"
	"github.com/drodriguezm/tablero/core/user"
	emailsvc "github.com/drodriguezm/tablero/services/email"
	logsvc "github.com/drodriguezm/tablero/services/logger"
	"github.com/drodriguezm/tablero/storage/database"
	sqlxrepos "github.com/drodriguezm/tablero/storage/database/sqlx"
)

const shutdownTimeout = 20 * time.Second

func main() {
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		core.Conf,
	)
	logger.Enable(!core.Conf.Debug)

	// set up DB
	db, err := setUpDB()
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("closing database", err)
		}
	}()
	sdb := sqlx.NewDb(db, core.Conf.Database.Engine)

	// set up repositories
	usrRepo := sqlxrepos.NewUserRepository(sdb)
	advRepo := sqlxrepos.NewAdvisorRepository(sdb)
	indRepo := sqlxrepos.NewIndicatorRepository(sdb)
	budRepo := sqlxrepos.NewBudgetRepository(sdb)
	recRepo := sqlxrepos.NewRecordRepository(sdb)
	schedRepo := sqlxrepos.NewScheduleRepository(sdb)
	hrRepo := sqlxrepos.NewHRRepository(sdb)

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	logger.Info(fmt.Sprintf("Application initializing : version %q", core.Conf.Build))
	defer logger.Info("Application stopped")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(
		&echoapi.Options{
			Address:      core.Conf.Server.Host + ":" + core.Conf.Server.Port,
			Logger:       logger,
			UserSvc:      user.NewService(usrRepo, mailSvc),
			AdvisorSvc:   advisor.NewService(advRepo),
			IndicatorSvc: indicator.NewService(indRepo),
			BudgetSvc:    budget.NewService(budRepo),
			RecordSvc:    record.NewService(recRepo),
			ScheduleSvc:  schedule.NewService(schedRepo),
			HRSvc:        hr.NewService(hrRepo),
			Loader:       report.NewLoader(logger, indRepo, budRepo, recRepo, advRepo, schedRepo, hrRepo),
		},
		shutdown,
	)

	serverErrs := make(chan error, 1)
	go func() {
		serverErrs <- server.Start()
	}()

	select {
	case err := <-serverErrs:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal(fmt.Sprintf("server error: %v", err), err)
		}

	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}

func setUpDB() (*sql.DB, error) {
	if err := database.CreateIfNotExist(core.Conf); err != nil {
		return nil, err
	}

	db, err := database.Open(core.Conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
