package dataimporter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/travigo/docloader/pkg/database"
	"github.com/travigo/docloader/pkg/dataimporter/formats"
	"github.com/travigo/docloader/pkg/dataimporter/manager"
	"github.com/urfave/cli/v2"
)

const (
	ExitCodeFailure  = 1
	ExitCodeUsage    = 2
	ExitCodeParse    = 3
	ExitCodeDatabase = 4
)

func NewApp(connect database.Connector) *cli.App {
	return &cli.App{
		Name:            "docloader",
		Usage:           "Import a .ndjson/.jsonl or .csv file into MongoDB",
		ArgsUsage:       fmt.Sprintf("[file] (default: %s)", DefaultFile),
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "collection",
				Aliases: []string{"c"},
				Usage:   "Collection name",
				Value:   database.DefaultCollection,
				EnvVars: []string{"DOCLOADER_COLLECTION"},
			},
			&cli.StringFlag{
				Name:    "uri",
				Usage:   "MongoDB URI",
				Value:   database.DefaultConnectionString,
				EnvVars: []string{"DOCLOADER_URI"},
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Database name",
				Value:   database.DefaultDatabase,
				EnvVars: []string{"DOCLOADER_DB"},
			},
			&cli.BoolFlag{
				Name:    "drop",
				Usage:   "Drop the collection before inserting",
				EnvVars: []string{"DOCLOADER_DROP"},
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Parse the file and show what would be inserted without connecting",
			},
			&cli.DurationFlag{
				Name:    "connect-timeout",
				Usage:   "How long to wait for MongoDB to respond when connecting",
				Value:   database.DefaultConnectTimeout,
				EnvVars: []string{"DOCLOADER_CONNECT_TIMEOUT"},
			},
			&cli.StringSliceFlag{
				Name:    "index",
				Usage:   "Field to index once the records are inserted, prefix with - for descending (repeatable)",
				EnvVars: []string{"DOCLOADER_INDEX"},
			},
			&cli.PathFlag{
				Name:      "config",
				Usage:     "YAML file with default option values",
				EnvVars:   []string{"DOCLOADER_CONFIG"},
				TakesFile: true,
			},
		},
		Action: func(c *cli.Context) error {
			opts, err := ResolveOptions(c)
			if err != nil {
				return exitError(err)
			}

			result, err := manager.ImportFile(c.Context, opts, connect)
			if err != nil {
				return exitError(err)
			}

			report(c.App.Writer, result)

			return nil
		},
		// Exit codes are applied by the caller
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// ExitCode gives the process exit code for an error returned by the app
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		return exitCoder.ExitCode()
	}

	// flag parsing failures never reach the action
	return ExitCodeUsage
}

func exitError(err error) error {
	var usageErr *UsageError
	var unsupportedErr *manager.UnsupportedFormatError
	var parseErr *formats.ParseError
	var rowShapeErr *formats.RowShapeError
	var sinkErr *database.SinkError

	switch {
	case errors.As(err, &usageErr):
		return cli.Exit(fmt.Sprintf("ERROR: usage: %s", err), ExitCodeUsage)
	case errors.As(err, &unsupportedErr):
		return cli.Exit(fmt.Sprintf("ERROR: format detection: %s", err), ExitCodeUsage)
	case errors.As(err, &parseErr), errors.As(err, &rowShapeErr):
		return cli.Exit(fmt.Sprintf("ERROR: parse: %s", err), ExitCodeParse)
	case errors.As(err, &sinkErr):
		return cli.Exit(fmt.Sprintf("ERROR: %s", err), ExitCodeDatabase)
	default:
		return cli.Exit(fmt.Sprintf("ERROR: read: %s", err), ExitCodeFailure)
	}
}

func report(w io.Writer, result manager.Result) {
	switch {
	case result.Empty:
		fmt.Fprintln(w, "No documents found to import.")
	case result.DryRun:
		writePreview(w, result.Records)
		fmt.Fprintf(w, "Dry run: %d documents would be inserted into %s.%s\n", result.Loaded, result.Database, result.Collection)
	default:
		fmt.Fprintf(w, "Inserted %d documents into %s.%s\n", result.Inserted, result.Database, result.Collection)
		if len(result.Indexes) > 0 {
			fmt.Fprintf(w, "Created indexes %s\n", strings.Join(result.Indexes, ", "))
		}
	}
}
