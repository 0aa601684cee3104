package session

import (
	"context"
	"errors"
	"testing"

	"github.com/cinelabs/cinescope/internal/domain"
	"github.com/rs/zerolog"
)

// fakeSource serves a swappable movie set and can fail on demand.
type fakeSource struct {
	movies   []domain.Movie
	genres   []domain.Genre
	failNext error
	loads    int
}

func (f *fakeSource) Movies(ctx context.Context) ([]domain.Movie, error) {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}
	f.loads++
	return append([]domain.Movie(nil), f.movies...), nil
}

func (f *fakeSource) Genres(ctx context.Context) ([]domain.Genre, error) {
	return append([]domain.Genre(nil), f.genres...), nil
}

func (f *fakeSource) MovieByID(ctx context.Context, id int64) (*domain.Movie, error) {
	for _, m := range f.movies {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

func newTestSession(t *testing.T, src *fakeSource) *Session {
	t.Helper()
	s, err := New(context.Background(), src, zerolog.Nop())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func testSource() *fakeSource {
	return &fakeSource{
		movies: []domain.Movie{
			{ID: 1, Title: "First", Overview: "about a heist"},
			{ID: 2, Title: "Second", Overview: "about a wedding"},
		},
		genres: []domain.Genre{{ID: 18, Name: "Drama"}},
	}
}

func TestNewFailsWhenLoadFails(t *testing.T) {
	src := testSource()
	src.failNext = errors.New("connection refused")

	if _, err := New(context.Background(), src, zerolog.Nop()); err == nil {
		t.Fatal("expected construction to fail on load error")
	}
}

func TestSearchMatches(t *testing.T) {
	s := newTestSession(t, testSource())

	got, err := s.Search(context.Background(), "HEIST")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected movie 1, got %v", got)
	}
}

func TestSearchEmptyQueryReloadsFromSource(t *testing.T) {
	src := testSource()
	s := newTestSession(t, src)

	// The source of truth gains a movie after the session loaded.
	src.movies = append(src.movies, domain.Movie{ID: 3, Title: "Third"})

	got, err := s.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected reset to re-fetched dataset of 3, got %d", len(got))
	}
	if src.loads != 2 {
		t.Errorf("expected 2 source loads, got %d", src.loads)
	}
}

func TestReloadFailureKeepsSnapshot(t *testing.T) {
	src := testSource()
	s := newTestSession(t, src)

	src.failNext = errors.New("connection reset")
	if _, err := s.Reload(context.Background()); err == nil {
		t.Fatal("expected reload error")
	}

	if got := s.Movies(); len(got) != 2 {
		t.Errorf("previous snapshot must survive a failed reload, got %d movies", len(got))
	}
}

func TestFilterDoesNotMutateSnapshot(t *testing.T) {
	s := newTestSession(t, testSource())

	out := s.Filter(domain.MovieFilter{})
	out[0].Title = "changed"

	if s.Movies()[0].Title != "First" {
		t.Error("filter result must be detached from the snapshot")
	}
}

func TestMovieByIDNotFound(t *testing.T) {
	s := newTestSession(t, testSource())

	_, err := s.MovieByID(context.Background(), 99)
	if !errors.Is(err, domain.ErrMovieNotFound) {
		t.Errorf("expected ErrMovieNotFound, got %v", err)
	}
}
