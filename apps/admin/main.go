package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/latinacademy/academia/core"
	"github.com/latinacademy/academia/core/academy"
	"github.com/latinacademy/academia/core/group"
	"github.com/latinacademy/academia/storage/kvrepos"
	"github.com/latinacademy/academia/storage/kvstore"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up the store
	var (
		store kvstore.Store
		sqlDB *sqlx.DB
		err   error
	)
	if core.Conf.DatabaseURL != "" {
		store, sqlDB, err = kvstore.OpenPostgres(core.Conf.DatabaseURL)
		errAndDie(err)
		defer sqlDB.Close()
	} else {
		store, err = kvstore.OpenFile(core.Conf.DataDir)
		errAndDie(err)
	}

	db := kvrepos.Open(store)
	academySvc := academy.NewService(kvrepos.NewAcademyRepository(db))

	// start CLI
	cli := commandLine{
		db:         sqlDB,
		usrRepo:    kvrepos.NewUserRepository(db),
		academySvc: academySvc,
		groupSvc:   group.NewService(kvrepos.NewGroupRepository(db), academySvc),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
