package manager

import (
	"fmt"
	"strings"
)

// UnsupportedFormatError is returned when the file extension does not map to
// a known format. Nothing has been read or written when it is returned.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type '%s', use one of %s", e.Extension, strings.Join(SupportedExtensions(), ", "))
}
