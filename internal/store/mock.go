package store

import "fjacquet/txsearch/internal/models"

// MockCatalogStore is an in-memory stand-in for CatalogStore.
type MockCatalogStore struct {
	Catalog models.Catalog
	Saved   []models.Catalog

	LoadError error
	SaveError error
}

// LoadCatalog returns the mock catalog.
func (m *MockCatalogStore) LoadCatalog() (models.Catalog, error) {
	if m.LoadError != nil {
		return models.Catalog{}, m.LoadError
	}
	return m.Catalog, nil
}

// SaveCatalog records catalog and makes it the current one.
func (m *MockCatalogStore) SaveCatalog(catalog models.Catalog) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Saved = append(m.Saved, catalog)
	m.Catalog = catalog
	return nil
}
