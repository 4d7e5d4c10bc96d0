package ndjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/buger/jsonparser"
	"github.com/rs/zerolog/log"
	"github.com/travigo/docloader/pkg/dataimporter/formats"
	"go.mongodb.org/mongo-driver/bson"
)

var errNotObject = errors.New("expected a JSON object")

// Document holds the records of a newline-delimited JSON file, one per
// non-blank line.
type Document struct {
	records []formats.Record
}

func (d *Document) ParseFile(reader io.Reader) error {
	bufferedReader := bufio.NewReader(formats.NewUTF8Reader(reader))

	var records []formats.Record
	lineNumber := 0

	for {
		line, readErr := bufferedReader.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			return readErr
		}
		if len(line) > 0 {
			lineNumber++

			record, err := parseLine(line)
			if err != nil {
				return &formats.ParseError{Line: lineNumber, Err: err}
			}
			if record != nil {
				records = append(records, record)
			}
		}
		if readErr == io.EOF {
			break
		}
	}

	log.Debug().Int("lines", lineNumber).Int("records", len(records)).Msg("Parsed ndjson file")

	d.records = records

	return nil
}

func (d *Document) Records() []formats.Record {
	return d.records
}

// parseLine returns nil for blank lines
func parseLine(line []byte) (formats.Record, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil, nil
	}
	if !utf8.Valid(line) {
		return nil, formats.ErrInvalidUTF8
	}

	// jsonparser stops at the end of the first value, the whole line has to be
	// exactly one
	var raw json.RawMessage
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, err
	}
	if line[0] != '{' {
		return nil, errNotObject
	}

	return parseObject(line)
}

// parseObject keeps keys in source order. A repeated key keeps the position of
// its first occurrence and the value of its last.
func parseObject(data []byte) (bson.D, error) {
	document := bson.D{}
	positions := map[string]int{}

	err := jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		parsed, err := parseValue(value, dataType)
		if err != nil {
			return err
		}

		name := string(key)
		if i, exists := positions[name]; exists {
			document[i].Value = parsed
			return nil
		}

		positions[name] = len(document)
		document = append(document, bson.E{Key: name, Value: parsed})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return document, nil
}

func parseArray(data []byte) (bson.A, error) {
	array := bson.A{}

	var valueErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if valueErr != nil {
			return
		}

		parsed, err := parseValue(value, dataType)
		if err != nil {
			valueErr = err
			return
		}
		array = append(array, parsed)
	})
	if err != nil {
		return nil, err
	}
	if valueErr != nil {
		return nil, valueErr
	}

	return array, nil
}

func parseValue(value []byte, dataType jsonparser.ValueType) (interface{}, error) {
	switch dataType {
	case jsonparser.Object:
		return parseObject(value)
	case jsonparser.Array:
		return parseArray(value)
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Number:
		return parseNumber(value)
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Null:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected value %q", value)
	}
}

// parseNumber gives int32 when the integer fits, int64 otherwise and float64
// for anything with a fraction or exponent
func parseNumber(value []byte) (interface{}, error) {
	if bytes.ContainsAny(value, ".eE") {
		return jsonparser.ParseFloat(value)
	}

	number, err := jsonparser.ParseInt(value)
	if errors.Is(err, jsonparser.OverflowIntegerError) {
		return nil, fmt.Errorf("integer %s does not fit in 64 bits", value)
	}
	if err != nil {
		return nil, err
	}

	if number >= math.MinInt32 && number <= math.MaxInt32 {
		return int32(number), nil
	}

	return number, nil
}
