package formats

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUTF8Reader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "name,age\n", want: "name,age\n"},
		{name: "byte order mark", input: "\ufeffname,age\n", want: "name,age\n"},
		{name: "byte order mark only stripped once", input: "\ufeff\ufeffx", want: "\ufeffx"},
		{name: "empty", input: "", want: ""},
		{name: "single byte", input: "x", want: "x"},
		{name: "invalid bytes pass through", input: "caf\xe9\n", want: "caf\xe9\n"},
		{name: "invalid bytes after byte order mark", input: "\ufeffcaf\xe9", want: "caf\xe9"},
		{name: "utf-16 byte order mark", input: "\xff\xfex\x00y\x00", want: "xy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := io.ReadAll(NewUTF8Reader(strings.NewReader(tt.input)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(decoded))
		})
	}
}

func TestParseError(t *testing.T) {
	cause := errors.New("invalid character 'x'")
	err := &ParseError{Line: 3, Err: cause}

	assert.Equal(t, "line 3: invalid character 'x'", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestRowShapeError(t *testing.T) {
	err := &RowShapeError{Line: 4, Expected: 2, Got: 3}

	assert.Equal(t, "line 4: expected 2 fields to match the header, got 3", err.Error())
}
