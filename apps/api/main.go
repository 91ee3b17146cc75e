package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pressly/goose/v3"

	echoapi "github.com/latinacademy/academia/apps/api/echo"
	"github.com/latinacademy/academia/core"
	"github.com/latinacademy/academia/core/academy"
	"github.com/latinacademy/academia/core/attendance"
	"github.com/latinacademy/academia/core/group"
	"github.com/latinacademy/academia/core/user"
	appfs "github.com/latinacademy/academia/fs"
	logsvc "github.com/latinacademy/academia/services/logger"
	notifsvc "github.com/latinacademy/academia/services/notification"
	"github.com/latinacademy/academia/storage/kvrepos"
	"github.com/latinacademy/academia/storage/kvstore"
)

const shutdownTimeout = 20 * time.Second

func main() {
	// =========================================================================
	// Set up Dependencies

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var logger core.Logger
	if core.Conf.RollbarToken != "" {
		rl := logsvc.NewRollbarLogger(std, core.Conf)
		rl.Enable(!core.Conf.Debug)
		logger = rl
	} else {
		logger = logsvc.NewStdLogger(std)
	}

	// set up the store
	store, closeStore, err := openStore()
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up store: %v", err), err)
	}
	defer closeStore()

	db := kvrepos.Open(store)

	// set up services
	var notifier core.NotificationService
	if core.Conf.Debug {
		notifier = notifsvc.NewConsoleService()
	} else {
		notifier = notifsvc.NewWhatsAppService(logger)
	}

	usrSvc := user.NewService(kvrepos.NewUserRepository(db))
	academySvc := academy.NewService(kvrepos.NewAcademyRepository(db))
	groupSvc := group.NewService(kvrepos.NewGroupRepository(db), academySvc)
	attSvc := attendance.NewService(kvrepos.NewAttendanceRepository(db), groupSvc, academySvc, notifier, logger)

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", core.Conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(&echoapi.Options{
		Addr:          fmt.Sprintf("%s:%d", core.Conf.Server.Host, core.Conf.Server.Port),
		Logger:        logger,
		UserSvc:       usrSvc,
		AcademySvc:    academySvc,
		GroupSvc:      groupSvc,
		AttendanceSvc: attSvc,
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// openStore opens the Postgres-backed document store when a database URL is
// configured (running its migrations first), falling back to the file-backed
// store under DataDir.
func openStore() (kvstore.Store, func(), error) {
	if core.Conf.DatabaseURL != "" {
		store, db, err := kvstore.OpenPostgres(core.Conf.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		goose.SetBaseFS(appfs.FS)
		if err = goose.SetDialect("postgres"); err != nil {
			return nil, nil, err
		}
		if err = goose.Up(db.DB, "migrations"); err != nil {
			return nil, nil, err
		}
		return store, func() { _ = db.Close() }, nil
	}

	store, err := kvstore.OpenFile(core.Conf.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}
