package dataimporter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/travigo/docloader/pkg/dataimporter/manager"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const DefaultFile = "receipts.ndjson"

// FileConfig is the optional YAML file supplying values for options that are
// not given on the command line or in the environment.
type FileConfig struct {
	File           string   `yaml:"file"`
	URI            string   `yaml:"uri"`
	Database       string   `yaml:"db"`
	Collection     string   `yaml:"collection"`
	Drop           *bool    `yaml:"drop"`
	ConnectTimeout string   `yaml:"connect_timeout"`
	Indexes        []string `yaml:"indexes"`
}

// UsageError is an invocation problem: bad arguments or invalid option values
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

func LoadConfigFile(path string) (FileConfig, error) {
	var config FileConfig

	file, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	err = decoder.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("config file %s: %w", path, err)
	}

	return config, nil
}

// ResolveOptions builds the run options. Each value comes from the first of:
// command line flag, environment variable, config file, built-in default.
func ResolveOptions(c *cli.Context) (manager.Options, error) {
	if c.NArg() > 1 {
		return manager.Options{}, &UsageError{
			Message: fmt.Sprintf("expected at most one file argument, got %d (flags must come before the file)", c.NArg()),
		}
	}

	var fileConfig FileConfig
	if configPath := c.Path("config"); configPath != "" {
		var err error
		fileConfig, err = LoadConfigFile(configPath)
		if err != nil {
			return manager.Options{}, &UsageError{Message: err.Error()}
		}
	}

	opts := manager.Options{
		File:           DefaultFile,
		Collection:     stringOption(c, "collection", fileConfig.Collection),
		Database:       stringOption(c, "db", fileConfig.Database),
		URI:            stringOption(c, "uri", fileConfig.URI),
		Drop:           c.Bool("drop"),
		DryRun:         c.Bool("dry-run"),
		ConnectTimeout: c.Duration("connect-timeout"),
		Indexes:        c.StringSlice("index"),
	}

	if c.NArg() == 1 {
		opts.File = c.Args().First()
	} else if fileConfig.File != "" {
		opts.File = fileConfig.File
	}

	if !c.IsSet("drop") && fileConfig.Drop != nil {
		opts.Drop = *fileConfig.Drop
	}

	if !c.IsSet("index") && len(fileConfig.Indexes) > 0 {
		opts.Indexes = fileConfig.Indexes
	}

	if !c.IsSet("connect-timeout") && fileConfig.ConnectTimeout != "" {
		timeout, err := time.ParseDuration(fileConfig.ConnectTimeout)
		if err != nil {
			return opts, &UsageError{Message: fmt.Sprintf("config file connect_timeout: %s", err)}
		}
		opts.ConnectTimeout = timeout
	}

	if err := ValidateOptions(opts); err != nil {
		return opts, err
	}

	return opts, nil
}

func stringOption(c *cli.Context, name string, fromFile string) string {
	if c.IsSet(name) || fromFile == "" {
		return c.String(name)
	}

	return fromFile
}

// use a single instance of Validate, it caches struct info
var validate = validator.New(validator.WithRequiredStructEnabled())

var optionNames = map[string]string{
	"File":           "file",
	"Collection":     "collection",
	"Database":       "db",
	"URI":            "uri",
	"ConnectTimeout": "connect-timeout",
	"Indexes":        "index",
}

func ValidateOptions(opts manager.Options) error {
	err := validate.Struct(opts)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		field, _, _ := strings.Cut(fieldErr.Field(), "[")
		name := optionNames[field]
		if fieldErr.Tag() == "required" {
			messages = append(messages, fmt.Sprintf("%s must be set", name))
			continue
		}
		messages = append(messages, fmt.Sprintf("%s %q failed the '%s' check", name, fieldErr.Value(), fieldErr.Tag()))
	}

	return &UsageError{Message: strings.Join(messages, "; ")}
}
