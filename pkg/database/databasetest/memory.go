// Package databasetest provides an in-memory database.Sink for tests of code
// that imports records without a running MongoDB.
package databasetest

import (
	"context"
	"fmt"
	"reflect"

	"github.com/travigo/docloader/pkg/database"
	"github.com/travigo/docloader/pkg/dataimporter/formats"
	"go.mongodb.org/mongo-driver/bson"
)

// MemorySink stores inserted records in order. Calls records every method
// invocation by name so tests can assert on ordering.
type MemorySink struct {
	Documents []formats.Record
	Indexes   []string
	Calls     []string
	Closed    bool

	InsertErr error
	DropErr   error
	IndexErr  error
}

func (s *MemorySink) InsertMany(_ context.Context, records []formats.Record) (int, error) {
	s.Calls = append(s.Calls, "insert")
	if s.InsertErr != nil {
		return 0, s.InsertErr
	}

	s.Documents = append(s.Documents, records...)

	return len(records), nil
}

func (s *MemorySink) Drop(_ context.Context) error {
	s.Calls = append(s.Calls, "drop")
	if s.DropErr != nil {
		return s.DropErr
	}

	s.Documents = nil

	return nil
}

func (s *MemorySink) CreateIndexes(_ context.Context, fields []string) ([]string, error) {
	s.Calls = append(s.Calls, "index")
	if s.IndexErr != nil {
		return nil, s.IndexErr
	}

	models, err := database.IndexModels(fields)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, model := range models {
		key := model.Keys.(bson.D)[0]
		names = append(names, fmt.Sprintf("%s_%d", key.Key, key.Value))
	}
	s.Indexes = append(s.Indexes, names...)

	return names, nil
}

func (s *MemorySink) Close(_ context.Context) error {
	s.Calls = append(s.Calls, "close")
	s.Closed = true

	return nil
}

// Find returns every stored record whose fields include all of the filter's
func (s *MemorySink) Find(filter formats.Record) []formats.Record {
	var matched []formats.Record

	for _, document := range s.Documents {
		if matches(document, filter) {
			matched = append(matched, document)
		}
	}

	return matched
}

func matches(document formats.Record, filter formats.Record) bool {
	for _, condition := range filter {
		found := false
		for _, element := range document {
			if element.Key == condition.Key && reflect.DeepEqual(element.Value, condition.Value) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// Server hands out a single MemorySink and remembers every target it was
// asked to connect to.
type Server struct {
	Sink       *MemorySink
	Targets    []database.Target
	ConnectErr error
}

func NewServer() *Server {
	return &Server{Sink: &MemorySink{}}
}

func (s *Server) Connector() database.Connector {
	return func(_ context.Context, target database.Target) (database.Sink, error) {
		s.Targets = append(s.Targets, target)
		if s.ConnectErr != nil {
			return nil, s.ConnectErr
		}

		return s.Sink, nil
	}
}
