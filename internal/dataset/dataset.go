// Package dataset loads a static JSON movie catalog, the shape the
// seeding step imports into PostgreSQL.
package dataset

import (
	"fmt"
	"os"

	"github.com/cinelabs/cinescope/internal/domain"
	json "github.com/goccy/go-json"
)

// Catalog is the on-disk dataset shape.
type Catalog struct {
	Movies []domain.Movie `json:"movies"`
	Genres []domain.Genre `json:"genres"`
}

// Load reads and decodes the dataset at path.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	if len(c.Movies) == 0 {
		return nil, fmt.Errorf("dataset %s contains no movies", path)
	}
	return &c, nil
}
