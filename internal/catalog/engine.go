// Package catalog implements the in-memory query engine over a catalog
// snapshot: filtering, sorting and free-text search. All functions are
// pure and operate on copies; the source snapshot is never mutated.
package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/cinelabs/cinescope/internal/domain"
)

// Apply filters dataset by f and sorts the result when a sort key is
// set. Constraints combine with AND; an unset field is always
// satisfied. Without a sort key the input order is preserved.
func Apply(dataset []domain.Movie, f domain.MovieFilter) []domain.Movie {
	out := make([]domain.Movie, 0, len(dataset))
	for _, m := range dataset {
		if matches(m, f) {
			out = append(out, m)
		}
	}
	sortMovies(out, f.Sort)
	return out
}

// Search returns the movies whose title or overview contains query,
// case-insensitive. Result order is dataset order restricted to
// matches; there is no ranking. Empty-query reset semantics live in
// the session layer, which re-fetches from the source of truth.
func Search(dataset []domain.Movie, query string) []domain.Movie {
	q := strings.ToLower(query)
	out := make([]domain.Movie, 0, len(dataset))
	for _, m := range dataset {
		if strings.Contains(strings.ToLower(m.Title), q) ||
			strings.Contains(strings.ToLower(m.Overview), q) {
			out = append(out, m)
		}
	}
	return out
}

func matches(m domain.Movie, f domain.MovieFilter) bool {
	if f.Genre != 0 && !m.HasGenre(f.Genre) {
		return false
	}
	if f.Year != 0 {
		year, ok := releaseYear(m)
		if !ok || year != f.Year {
			return false
		}
	}
	if f.Rating != 0 && m.VoteAverage < f.Rating {
		return false
	}
	return true
}

// sortMovies sorts in place, descending by key. The sort is stable so
// that elements tying on the active key keep their prior relative
// order.
func sortMovies(movies []domain.Movie, key domain.SortKey) {
	switch key {
	case domain.SortPopularity:
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].Popularity > movies[j].Popularity
		})
	case domain.SortRating:
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].VoteAverage > movies[j].VoteAverage
		})
	case domain.SortReleaseDate:
		sort.SliceStable(movies, func(i, j int) bool {
			ti, _ := releaseTime(movies[i])
			tj, _ := releaseTime(movies[j])
			return ti.After(tj)
		})
	}
}

// releaseDateLayouts are tried in order when parsing release_date.
var releaseDateLayouts = []string{"2006-01-02", time.RFC3339}

func releaseTime(m domain.Movie) (time.Time, bool) {
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, m.ReleaseDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// releaseYear extracts the calendar year of the release date. Movies
// with a missing or unparsable release_date report ok=false and fail
// an active year constraint.
func releaseYear(m domain.Movie) (int, bool) {
	t, ok := releaseTime(m)
	if !ok {
		return 0, false
	}
	return t.Year(), true
}

// Top returns the first n movies of dataset sorted descending by key,
// without mutating dataset. It backs the trending and top-rated views.
func Top(dataset []domain.Movie, key domain.SortKey, n int) []domain.Movie {
	out := Apply(dataset, domain.MovieFilter{Sort: key})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
