package manager

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/travigo/docloader/pkg/dataimporter/formats"
	"github.com/travigo/docloader/pkg/dataimporter/formats/csvfile"
	"github.com/travigo/docloader/pkg/dataimporter/formats/ndjson"
)

type DataSetFormat string

const (
	DataSetFormatNDJSON DataSetFormat = "ndjson"
	DataSetFormatCSV    DataSetFormat = "csv"
)

var registeredExtensions = map[string]DataSetFormat{
	".ndjson": DataSetFormatNDJSON,
	".jsonl":  DataSetFormatNDJSON,
	".csv":    DataSetFormatCSV,
}

// SupportedExtensions lists the recognised file extensions in sorted order
func SupportedExtensions() []string {
	extensions := make([]string, 0, len(registeredExtensions))
	for extension := range registeredExtensions {
		extensions = append(extensions, extension)
	}
	sort.Strings(extensions)

	return extensions
}

// FormatForPath picks the format from the file extension, ignoring case
func FormatForPath(path string) (DataSetFormat, error) {
	extension := strings.ToLower(filepath.Ext(path))

	format, exists := registeredExtensions[extension]
	if !exists {
		return "", &UnsupportedFormatError{Extension: extension}
	}

	return format, nil
}

func (f DataSetFormat) New() formats.Format {
	switch f {
	case DataSetFormatCSV:
		return &csvfile.Document{}
	default:
		return &ndjson.Document{}
	}
}
