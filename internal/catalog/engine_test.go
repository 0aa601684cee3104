package catalog

import (
	"testing"

	"github.com/cinelabs/cinescope/internal/domain"
)

func testMovies() []domain.Movie {
	action := domain.Genre{ID: 28, Name: "Action"}
	drama := domain.Genre{ID: 18, Name: "Drama"}
	crime := domain.Genre{ID: 80, Name: "Crime"}

	return []domain.Movie{
		{ID: 1, Title: "The Dark Knight", Overview: "Batman raises the stakes in his war on crime.",
			ReleaseDate: "2008-07-16", VoteAverage: 8.5, Popularity: 120.5, Genres: []domain.Genre{action, crime}},
		{ID: 2, Title: "Heat", Overview: "A group of professional bank robbers.",
			ReleaseDate: "1995-12-15", VoteAverage: 7.9, Popularity: 60.2, Genres: []domain.Genre{action, drama}},
		{ID: 3, Title: "Marriage Story", Overview: "A stage director and his actor wife.",
			ReleaseDate: "2019-11-06", VoteAverage: 7.9, Popularity: 45.0, Genres: []domain.Genre{drama}},
		{ID: 4, Title: "Unknown Release", Overview: "No usable release date.",
			ReleaseDate: "", VoteAverage: 6.1, Popularity: 45.0, Genres: []domain.Genre{drama}},
		{ID: 5, Title: "The Long Night", Overview: "A detective works one last case.",
			ReleaseDate: "2008-02-01", VoteAverage: 6.8, Popularity: 91.3, Genres: []domain.Genre{crime}},
	}
}

func ids(movies []domain.Movie) []int64 {
	out := make([]int64, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}

func equalIDs(a []int64, b ...int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyEmptyFilterIsIdentity(t *testing.T) {
	dataset := testMovies()

	got := Apply(dataset, domain.MovieFilter{})

	if !equalIDs(ids(got), 1, 2, 3, 4, 5) {
		t.Errorf("expected input order preserved, got %v", ids(got))
	}
}

func TestApplyDoesNotMutateDataset(t *testing.T) {
	dataset := testMovies()

	Apply(dataset, domain.MovieFilter{Sort: domain.SortPopularity})

	if !equalIDs(ids(dataset), 1, 2, 3, 4, 5) {
		t.Errorf("source dataset reordered: %v", ids(dataset))
	}
}

func TestApplyRatingConstraint(t *testing.T) {
	dataset := testMovies()

	got := Apply(dataset, domain.MovieFilter{Rating: 7.9})

	if !equalIDs(ids(got), 1, 2, 3) {
		t.Fatalf("expected movies 1,2,3, got %v", ids(got))
	}
	for _, m := range got {
		if m.VoteAverage < 7.9 {
			t.Errorf("movie %d below threshold: %f", m.ID, m.VoteAverage)
		}
	}
}

func TestApplyGenreConstraint(t *testing.T) {
	got := Apply(testMovies(), domain.MovieFilter{Genre: 28})

	if !equalIDs(ids(got), 1, 2) {
		t.Errorf("expected action movies 1,2, got %v", ids(got))
	}
}

func TestApplyYearConstraint(t *testing.T) {
	got := Apply(testMovies(), domain.MovieFilter{Year: 2008})

	// Movie 4 has no parsable release date and must be excluded.
	if !equalIDs(ids(got), 1, 5) {
		t.Errorf("expected movies 1,5 for year 2008, got %v", ids(got))
	}
}

func TestApplyCombinesWithAND(t *testing.T) {
	got := Apply(testMovies(), domain.MovieFilter{Genre: 80, Year: 2008, Rating: 7.0})

	if !equalIDs(ids(got), 1) {
		t.Errorf("expected only movie 1, got %v", ids(got))
	}
}

func TestApplySortPopularity(t *testing.T) {
	got := Apply(testMovies(), domain.MovieFilter{Sort: domain.SortPopularity})

	// 3 and 4 tie on popularity; the stable sort keeps 3 before 4.
	if !equalIDs(ids(got), 1, 5, 2, 3, 4) {
		t.Errorf("expected 1,5,2,3,4 got %v", ids(got))
	}
}

func TestApplySortRatingStableOnTies(t *testing.T) {
	got := Apply(testMovies(), domain.MovieFilter{Sort: domain.SortRating})

	// 2 and 3 tie on vote_average; input order between them must hold.
	if !equalIDs(ids(got), 1, 2, 3, 5, 4) {
		t.Errorf("expected 1,2,3,5,4 got %v", ids(got))
	}
}

func TestApplySortReleaseDate(t *testing.T) {
	got := Apply(testMovies(), domain.MovieFilter{Sort: domain.SortReleaseDate})

	// Most recent first; the undated movie sorts last.
	if !equalIDs(ids(got), 3, 1, 5, 2, 4) {
		t.Errorf("expected 3,1,5,2,4 got %v", ids(got))
	}
}

func TestSortStabilityAcrossKeys(t *testing.T) {
	dataset := testMovies()

	// Applying each sort to the same input never reorders tied
	// elements relative to each other.
	for _, key := range []domain.SortKey{domain.SortPopularity, domain.SortRating, domain.SortReleaseDate} {
		first := Apply(dataset, domain.MovieFilter{Sort: key})
		second := Apply(dataset, domain.MovieFilter{Sort: key})
		if !equalIDs(ids(first), ids(second)...) {
			t.Errorf("sort by %s not reproducible: %v vs %v", key, ids(first), ids(second))
		}
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	got := Search(testMovies(), "BATMAN")

	// "Batman" appears only in The Dark Knight's overview.
	if !equalIDs(ids(got), 1) {
		t.Errorf("expected movie 1 for BATMAN, got %v", ids(got))
	}
}

func TestSearchMatchesTitleOrOverview(t *testing.T) {
	got := Search(testMovies(), "night")

	if !equalIDs(ids(got), 1, 5) {
		t.Errorf("expected movies 1,5 for night, got %v", ids(got))
	}
}

func TestSearchNoMatches(t *testing.T) {
	got := Search(testMovies(), "zzzzz")

	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", ids(got))
	}
}

func TestTop(t *testing.T) {
	got := Top(testMovies(), domain.SortPopularity, 2)

	if !equalIDs(ids(got), 1, 5) {
		t.Errorf("expected top 2 by popularity 1,5, got %v", ids(got))
	}
}
