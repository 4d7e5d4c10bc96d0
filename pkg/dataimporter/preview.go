package dataimporter

import (
	"fmt"
	"io"

	"github.com/kr/pretty"
	"github.com/travigo/docloader/pkg/dataimporter/formats"
)

const previewLimit = 5

func writePreview(w io.Writer, records []formats.Record) {
	for i, record := range records {
		if i == previewLimit {
			fmt.Fprintf(w, "... and %d more\n", len(records)-previewLimit)
			break
		}

		pretty.Fprintf(w, "%# v\n", record)
	}
}
