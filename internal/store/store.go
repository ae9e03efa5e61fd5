// Package store loads and saves the entity catalog as YAML.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/txsearch/internal/fileutils"
	"fjacquet/txsearch/internal/logging"
	"fjacquet/txsearch/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultCatalogFile is used when no file name is configured.
const DefaultCatalogFile = "catalog.yaml"

// CatalogStore manages loading and saving of the entity catalog.
type CatalogStore struct {
	CatalogFile string
	logger      logging.Logger
}

// NewCatalogStore creates a store for file. A nil logger discards output.
func NewCatalogStore(file string, logger logging.Logger) *CatalogStore {
	if logger == nil {
		logger = logging.Discard()
	}
	return &CatalogStore{CatalogFile: file, logger: logger}
}

func (s *CatalogStore) filename() string {
	if s.CatalogFile == "" {
		return DefaultCatalogFile
	}
	return s.CatalogFile
}

// FindConfigFile looks for filename in the current directory, ./config,
// ./database and ~/.config/txsearch, in that order. Absolute paths are only
// checked for existence.
func (s *CatalogStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "txsearch", filename))
	}

	if location, ok := fileutils.FirstExisting(locations...); ok {
		return location, nil
	}
	return "", os.ErrNotExist
}

// LoadCatalog reads the catalog. A missing file yields an empty catalog and a
// warning, not an error.
func (s *CatalogStore) LoadCatalog() (models.Catalog, error) {
	filename := s.filename()

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		s.logger.Warn("Catalog file not found, using an empty catalog",
			logging.F(logging.FieldFile, filename))
		return models.Catalog{}, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("error reading catalog file: %w", err)
	}

	var catalog models.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return models.Catalog{}, fmt.Errorf("error parsing catalog file %s: %w", filePath, err)
	}
	if err := validateCatalog(catalog); err != nil {
		return models.Catalog{}, fmt.Errorf("invalid catalog file %s: %w", filePath, err)
	}

	s.logger.Debug("Loaded catalog",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, catalog.Size()))
	return catalog, nil
}

// SaveCatalog writes the catalog. When the file does not exist yet it is
// created under ./database unless the configured path is absolute.
func (s *CatalogStore) SaveCatalog(catalog models.Catalog) error {
	filename := s.filename()

	filePath, err := s.FindConfigFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		filePath = filename
		if !filepath.IsAbs(filename) {
			filePath = filepath.Join("database", filename)
		}
	}

	data, err := yaml.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("error marshaling catalog: %w", err)
	}
	if err := fileutils.WriteFile(filePath, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing catalog: %w", err)
	}

	s.logger.Debug("Saved catalog",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, catalog.Size()))
	return nil
}

// validateCatalog rejects empty names, duplicate IDs within one list and
// unknown account types.
func validateCatalog(c models.Catalog) error {
	seen := make(map[int64]bool, len(c.Accounts))
	for i, acc := range c.Accounts {
		if acc.Name == "" {
			return fmt.Errorf("account #%d has no name", i+1)
		}
		if _, err := models.ParseAccountType(string(acc.Type)); err != nil {
			return fmt.Errorf("account %q: %w", acc.Name, err)
		}
		if seen[acc.ID] {
			return fmt.Errorf("duplicate account id %d", acc.ID)
		}
		seen[acc.ID] = true
	}

	for _, kind := range []models.EntityKind{models.EntityCategory, models.EntityBudget, models.EntityTag, models.EntityBill} {
		seen := make(map[int64]bool)
		for i, ref := range c.Entities(kind) {
			if ref.Name == "" {
				return fmt.Errorf("%s #%d has no name", kind, i+1)
			}
			if seen[ref.ID] {
				return fmt.Errorf("duplicate %s id %d", kind, ref.ID)
			}
			seen[ref.ID] = true
		}
	}
	return nil
}
