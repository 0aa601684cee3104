package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `{
		"genres": [{"id": 18, "name": "Drama"}],
		"movies": [{
			"id": 1,
			"title": "The Hidden Harbor",
			"overview": "A drama.",
			"release_date": "2019-11-06",
			"vote_average": 7.9,
			"popularity": 45.0,
			"genres": [{"id": 18, "name": "Drama"}]
		}]
	}`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Movies) != 1 || c.Movies[0].Title != "The Hidden Harbor" {
		t.Errorf("unexpected movies: %+v", c.Movies)
	}
	if len(c.Genres) != 1 || c.Genres[0].ID != 18 {
		t.Errorf("unexpected genres: %+v", c.Genres)
	}
}

func TestLoadRejectsEmptyCatalog(t *testing.T) {
	path := writeFile(t, `{"movies": [], "genres": []}`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeFile(t, `{"movies": [`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
