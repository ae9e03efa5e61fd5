package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/txsearch/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestIsValidInputFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "queries.txt")
	assert.NoError(t, os.WriteFile(testFile, []byte("dinner\n"), 0600))

	tests := []struct {
		name        string
		path        string
		errContains string
	}{
		{name: "Existing file", path: testFile},
		{name: "Empty path", path: "", errContains: "input path is empty"},
		{name: "Non-existent path", path: filepath.Join(tmpDir, "missing.txt"), errContains: "path does not exist"},
		{name: "Directory", path: tmpDir, errContains: "not a regular file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.IsValidInputFile(tt.path)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestIsValidOutputFormat(t *testing.T) {
	supported := []string{"text", "json", "yaml"}

	assert.NoError(t, validation.IsValidOutputFormat("json", supported))
	assert.NoError(t, validation.IsValidOutputFormat("text", supported))

	err := validation.IsValidOutputFormat("xml", supported)
	assert.EqualError(t, err, "unsupported output format: xml. Supported formats are 'text', 'json', 'yaml'")
	assert.Error(t, validation.IsValidOutputFormat("JSON", supported))
}

func TestIsValidPage(t *testing.T) {
	tests := []struct {
		page    int
		wantErr bool
	}{
		{page: 1},
		{page: 12},
		{page: 0, wantErr: true},
		{page: -3, wantErr: true},
	}
	for _, tt := range tests {
		err := validation.IsValidPage(tt.page)
		if tt.wantErr {
			assert.Error(t, err, tt.page)
		} else {
			assert.NoError(t, err, tt.page)
		}
	}
}
