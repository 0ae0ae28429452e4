package main

import (
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/satishbabariya/chipdb/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
