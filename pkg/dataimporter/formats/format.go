package formats

import (
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Record is a single document destined for the database. Field order follows
// the source: key order for JSON lines, column order for CSV.
type Record = bson.D

type Format interface {
	ParseFile(io.Reader) error
	Records() []Record
}

// ErrInvalidUTF8 is wrapped in a ParseError for lines or rows that are not
// valid UTF-8
var ErrInvalidUTF8 = encoding.ErrInvalidUTF8

// NewUTF8Reader drops a leading UTF-8 byte order mark. Input starting with a
// UTF-16 byte order mark is decoded to UTF-8. Anything else passes through
// unchanged so the loaders can reject invalid bytes with a line number.
func NewUTF8Reader(reader io.Reader) io.Reader {
	return transform.NewReader(reader, unicode.BOMOverride(transform.Nop))
}
