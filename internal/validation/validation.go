// Package validation checks command line inputs before any work starts.
package validation

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// IsValidInputFile checks that path names an existing regular file.
func IsValidInputFile(path string) error {
	if path == "" {
		return fmt.Errorf("input path is empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}

// IsValidOutputFormat checks that format is one of supported.
func IsValidOutputFormat(format string, supported []string) error {
	if slices.Contains(supported, format) {
		return nil
	}
	return fmt.Errorf("unsupported output format: %s. Supported formats are %s",
		format, strings.Join(quote(supported), ", "))
}

// IsValidPage checks that a requested page number is usable.
func IsValidPage(page int) error {
	if page < 1 {
		return fmt.Errorf("page must be at least 1, got %d", page)
	}
	return nil
}

func quote(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = "'" + v + "'"
	}
	return out
}
