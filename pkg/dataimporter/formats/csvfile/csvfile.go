package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/docloader/pkg/dataimporter/formats"
	"go.mongodb.org/mongo-driver/bson"
)

// Document holds the records of a CSV file. The first row names the fields,
// every following row is one record with text values.
type Document struct {
	Header []string

	records []formats.Record
}

// Row shape is checked against the header here rather than by encoding/csv so
// the error can report both widths
func newCSVReader(in io.Reader) gocsv.CSVReader {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	return r
}

type positionedReader interface {
	FieldPos(field int) (line, column int)
}

func (d *Document) ParseFile(reader io.Reader) error {
	csvReader := newCSVReader(formats.NewUTF8Reader(reader))

	lineOf := func(field int) int {
		if positioned, ok := csvReader.(positionedReader); ok {
			line, _ := positioned.FieldPos(field)
			return line
		}
		return 0
	}

	var header []string
	var records []formats.Record

	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return &formats.ParseError{Line: csvErr.Line, Err: csvErr.Err}
			}
			return err
		}

		if field := invalidField(row); field >= 0 {
			return &formats.ParseError{Line: lineOf(field), Err: formats.ErrInvalidUTF8}
		}

		if header == nil {
			if err := checkHeader(row); err != nil {
				return &formats.ParseError{Line: lineOf(0), Err: err}
			}
			header = row
			continue
		}

		if len(row) != len(header) {
			return &formats.RowShapeError{Line: lineOf(0), Expected: len(header), Got: len(row)}
		}

		record := make(formats.Record, 0, len(header))
		for i, name := range header {
			record = append(record, bson.E{Key: name, Value: row[i]})
		}
		records = append(records, record)
	}

	log.Debug().Strs("header", header).Int("records", len(records)).Msg("Parsed csv file")

	d.Header = header
	d.records = records

	return nil
}

func (d *Document) Records() []formats.Record {
	return d.records
}

// invalidField returns the index of the first field that is not valid UTF-8,
// or -1
func invalidField(row []string) int {
	for i, field := range row {
		if !utf8.ValidString(field) {
			return i
		}
	}
	return -1
}

func checkHeader(header []string) error {
	seen := make(map[string]struct{}, len(header))
	for _, name := range header {
		if _, exists := seen[name]; exists {
			return fmt.Errorf("%w: %q", gocsv.ErrDoubleHeaderNames, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
