package main

import (
	"errors"

	"github.com/pressly/goose/v3"

	appfs "github.com/latinacademy/academia/fs"
)

var gooseRunFunc = goose.Run // mockable

var errNoMigrationDB = errors.New("migrate requires the postgres backend (set DATABASEURL)")

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoMigrationDB
	}

	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}

	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return gooseRunFunc(args[0], cli.db.DB, "migrations", arguments...)
}
