package formats

import "fmt"

// ParseError is returned when a line or row cannot be parsed. The whole load
// is abandoned when one is returned.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RowShapeError is returned when a CSV data row does not have one field per
// header column.
type RowShapeError struct {
	Line     int
	Expected int
	Got      int
}

func (e *RowShapeError) Error() string {
	return fmt.Sprintf("line %d: expected %d fields to match the header, got %d", e.Line, e.Expected, e.Got)
}
