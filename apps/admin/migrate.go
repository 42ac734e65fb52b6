package main

import (
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/motbey/mylms/storage/database"
)

var gooseRunFunc = goose.Run // mockable

func (cli *commandLine) printMigrateUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [args]")
	fmt.Println("Commands:")
	fmt.Println("  up                   Migrate the DB to the most recent version available")
	fmt.Println("  up-by-one            Migrate the DB up by 1")
	fmt.Println("  up-to VERSION        Migrate the DB to a specific VERSION")
	fmt.Println("  down                 Roll back the version by 1")
	fmt.Println("  down-to VERSION      Roll back to a specific VERSION")
	fmt.Println("  redo                 Re-run the latest migration")
	fmt.Println("  reset                Roll back all migrations")
	fmt.Println("  status               Dump the migration status for the current DB")
	fmt.Println("  version              Print the current version of the database")
	fmt.Println("  create NAME [sql|go] Creates new migration file with the current timestamp")
	fmt.Println("  fix                  Apply sequential ordering to migrations")
}

func (cli *commandLine) migrate(args []string) error {
	if err := database.InitGoose(); err != nil {
		return err
	}
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.db, "migrations", arguments...)
}
