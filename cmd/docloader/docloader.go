package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/docloader/pkg/database"
	"github.com/travigo/docloader/pkg/dataimporter"
	"github.com/travigo/docloader/pkg/util"
)

func main() {
	env := util.LoadEnvironment()

	// stdout is reserved for the import report
	if env["DOCLOADER_LOG_FORMAT"] != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if env["DOCLOADER_DEBUG"] == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := dataimporter.NewApp(database.ConnectSink)

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(app.ErrWriter, err)
		os.Exit(dataimporter.ExitCode(err))
	}
}
