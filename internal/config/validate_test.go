package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSONSyntaxFromBytes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		data     string
		wantErr  bool
		wantLine int
		wantMsg  string
	}{
		"valid object":     {data: `{"interest": "hello"}`},
		"empty":            {data: ""},
		"whitespace only":  {data: "  \n\t"},
		"trailing comma":   {data: "{\n\"a\": 1,\n}", wantErr: true, wantLine: 3},
		"unterminated":     {data: `{"a": "b`, wantErr: true, wantLine: 1},
		"array top level":  {data: `["a"]`, wantErr: true, wantMsg: "must be a JSON object"},
		"string top level": {data: `"a"`, wantErr: true, wantMsg: "must be a JSON object"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := ValidateJSONSyntaxFromBytes([]byte(tt.data), "config.json")
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "config.json", verr.FilePath)
			if tt.wantLine > 0 {
				assert.Equal(t, tt.wantLine, verr.Line)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, verr.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidateJSONSyntax_MissingFile(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateJSONSyntax(filepath.Join(t.TempDir(), "missing.json")))
}

func TestValidateJSONSyntax_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops}"), 0o644))

	err := ValidateJSONSyntax(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path+":1:")
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "c.json:2:5: bad", (&ValidationError{FilePath: "c.json", Line: 2, Column: 5, Message: "bad"}).Error())
	assert.Equal(t, "c.json: bad", (&ValidationError{FilePath: "c.json", Message: "bad"}).Error())
}
