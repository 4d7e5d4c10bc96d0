package database

import (
	"errors"
	"fmt"
)

const (
	StageConnect = "connect"
	StageDrop    = "drop"
	StageInsert  = "insert"
	StageIndex   = "index"
)

// SinkError reports a failed database call together with the stage it failed
// in and the collection it was addressed to.
type SinkError struct {
	Stage      string
	Database   string
	Collection string
	Err        error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("%s %s.%s: %s", e.Stage, e.Database, e.Collection, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

// WrapError attaches the stage and target to err. Errors that are already a
// SinkError are returned unchanged.
func WrapError(stage string, target Target, err error) error {
	if err == nil {
		return nil
	}

	var sinkErr *SinkError
	if errors.As(err, &sinkErr) {
		return err
	}

	return &SinkError{
		Stage:      stage,
		Database:   target.Database,
		Collection: target.Collection,
		Err:        err,
	}
}
