package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the YAML document shape of the product catalog file.
type file struct {
	Brands map[string]brandConfig `yaml:"brands"`
}

type brandConfig struct {
	Products []Product `yaml:"products"`
}

// Load reads and parses the product catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(raw)
}

// Parse builds a catalog from raw YAML. Split from Load so tests can feed
// documents without touching the filesystem.
func Parse(raw []byte) (*Catalog, error) {
	var doc file
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	brands := make(map[string][]Product, len(doc.Brands))
	for name, cfg := range doc.Brands {
		for i := range cfg.Products {
			if cfg.Products[i].ProductCode == "" {
				return nil, fmt.Errorf("parse catalog: brand %s has a product without productCode", name)
			}
		}
		brands[name] = cfg.Products
	}
	return New(brands), nil
}
