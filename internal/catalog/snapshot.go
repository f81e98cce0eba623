package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteSnapshot persists the build's product records to
// <root>/data/products.json and returns the written path.
func WriteSnapshot(root string, products []Product) (string, error) {
	path := filepath.Join(root, "data", "products.json")
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return "", err
	}

	encoded, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, encoded, 0666); err != nil {
		return "", err
	}
	return path, nil
}

// ReadSnapshot loads a product snapshot written by a previous build.
func ReadSnapshot(path string) ([]Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return products, nil
}
