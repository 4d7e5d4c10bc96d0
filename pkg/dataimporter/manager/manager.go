package manager

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/docloader/pkg/database"
	"github.com/travigo/docloader/pkg/dataimporter/formats"
)

// Options are the resolved parameters of a single import run
type Options struct {
	File           string `validate:"required"`
	Collection     string `validate:"required,excludes=$,startsnotwith=system."`
	Database       string `validate:"required,excludesall=/\\. \"$*<>:0x7C?"`
	URI            string `validate:"required,startswith=mongodb"`
	Drop           bool
	DryRun         bool
	ConnectTimeout time.Duration `validate:"gte=0"`
	Indexes        []string      `validate:"dive,required,ne=-,excludes=$"`
}

func (o Options) Target() database.Target {
	return database.Target{
		URI:            o.URI,
		Database:       o.Database,
		Collection:     o.Collection,
		ConnectTimeout: o.ConnectTimeout,
	}
}

type Result struct {
	Database   string
	Collection string

	Loaded   int
	Inserted int
	Indexes  []string

	Empty  bool
	DryRun bool

	// Records is only populated for dry runs
	Records []formats.Record

	Duration time.Duration
}

func GetFormat(path string) (formats.Format, error) {
	dataSetFormat, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	return dataSetFormat.New(), nil
}

// LoadFile reads the whole file into memory. Either every record is returned
// or none are.
func LoadFile(path string) ([]formats.Record, error) {
	format, err := GetFormat(path)
	if err != nil {
		return nil, err
	}

	log.Info().Str("path", path).Str("format", fmt.Sprintf("%T", format)).Msg("Loading file")

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	err = format.ParseFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return format.Records(), nil
}

// ImportFile loads the file named in the options and inserts every record in
// a single bulk call. The connector is only invoked once records are loaded.
func ImportFile(ctx context.Context, opts Options, connect database.Connector) (Result, error) {
	startTime := time.Now()

	result := Result{
		Database:   opts.Database,
		Collection: opts.Collection,
	}

	records, err := LoadFile(opts.File)
	if err != nil {
		return result, err
	}

	result.Loaded = len(records)
	log.Info().Int("length", len(records)).Msg("Loaded records")

	if len(records) == 0 {
		result.Empty = true
		return result, nil
	}

	if opts.DryRun {
		result.DryRun = true
		result.Records = records
		return result, nil
	}

	target := opts.Target()

	sink, err := connect(ctx, target)
	if err != nil {
		return result, database.WrapError(database.StageConnect, target, err)
	}
	defer func() {
		if err := sink.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to close database connection")
		}
	}()

	if opts.Drop {
		if err := sink.Drop(ctx); err != nil {
			return result, database.WrapError(database.StageDrop, target, err)
		}
	}

	inserted, err := sink.InsertMany(ctx, records)
	if err != nil {
		return result, database.WrapError(database.StageInsert, target, err)
	}

	result.Inserted = inserted

	if len(opts.Indexes) > 0 {
		names, err := sink.CreateIndexes(ctx, opts.Indexes)
		if err != nil {
			return result, database.WrapError(database.StageIndex, target, err)
		}
		result.Indexes = names
	}

	result.Duration = time.Since(startTime)

	log.Info().Msgf("Operation took %s", result.Duration.String())

	return result, nil
}
