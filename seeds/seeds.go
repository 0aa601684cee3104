// Package seeds populates an empty database with a movie catalog and
// demo user profiles, either from a JSON dataset file or generated
// synthetically.
package seeds

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/cinelabs/cinescope/internal/dataset"
	"github.com/cinelabs/cinescope/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaswdr/faker"
	"github.com/rs/zerolog"
)

const (
	movieCount = 200
	userCount  = 5
)

var genreSet = []domain.Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 35, Name: "Comedy"},
	{ID: 18, Name: "Drama"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Science Fiction"},
	{ID: 53, Name: "Thriller"},
}

// Setup truncates and re-seeds the catalog and demo users. When
// datasetPath is non-empty the catalog is imported from that JSON
// file, otherwise a synthetic one is generated.
func Setup(ctx context.Context, pool *pgxpool.Pool, datasetPath string, logger zerolog.Logger) error {
	log := logger.With().Str("component", "seeds").Logger()
	rng := rand.New(rand.NewSource(42))

	log.Info().Msg("truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE user_preferences, user_ratings, user_watchlist, user_favorites,
		         users, movie_genres, movies, genres RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	movies, genres, err := buildCatalog(datasetPath, rng)
	if err != nil {
		return err
	}

	log.Info().Int("genres", len(genres)).Msg("inserting genres")
	if err := seedGenres(ctx, pool, genres); err != nil {
		return fmt.Errorf("seed genres: %w", err)
	}

	log.Info().Int("movies", len(movies)).Msg("inserting movies")
	if err := seedMovies(ctx, pool, movies); err != nil {
		return fmt.Errorf("seed movies: %w", err)
	}

	log.Info().Int("users", userCount).Msg("inserting demo users")
	if err := seedUsers(ctx, pool, rng, movies, genres); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	log.Info().Msg("seeding complete")
	return nil
}

func buildCatalog(datasetPath string, rng *rand.Rand) ([]domain.Movie, []domain.Genre, error) {
	if datasetPath != "" {
		c, err := dataset.Load(datasetPath)
		if err != nil {
			return nil, nil, err
		}
		return c.Movies, c.Genres, nil
	}
	return generateMovies(rng, movieCount), genreSet, nil
}

func generateMovies(rng *rand.Rand, n int) []domain.Movie {
	fake := faker.NewWithSeed(rand.NewSource(42))

	nouns := []string{
		"Horizon", "Empire", "Shadow", "Garden", "Signal", "Winter",
		"Harbor", "Echo", "Crown", "Atlas", "Mirage", "Outpost",
	}
	modifiers := []string{
		"Last", "Silent", "Broken", "Hidden", "Burning", "Endless",
		"Forgotten", "Crimson", "Hollow", "Distant",
	}

	movies := make([]domain.Movie, 0, n)
	for i := range n {
		title := fmt.Sprintf("The %s %s",
			modifiers[rng.Intn(len(modifiers))], nouns[rng.Intn(len(nouns))])
		if i >= len(nouns)*len(modifiers) {
			title = fmt.Sprintf("%s %d", title, i)
		}

		year := 1980 + rng.Intn(45)
		month := 1 + rng.Intn(12)
		day := 1 + rng.Intn(28)

		primary := genreSet[rng.Intn(len(genreSet))]
		genres := []domain.Genre{primary}
		if rng.Float64() < 0.4 {
			secondary := genreSet[rng.Intn(len(genreSet))]
			if secondary.ID != primary.ID {
				genres = append(genres, secondary)
			}
		}

		m := domain.Movie{
			ID:           int64(i + 1),
			Title:        title,
			Overview:     fake.Lorem().Paragraph(1),
			PosterPath:   fmt.Sprintf("/posters/%d.jpg", i+1),
			BackdropPath: fmt.Sprintf("/backdrops/%d.jpg", i+1),
			Tagline:      fake.Lorem().Sentence(6),
			ReleaseDate:  fmt.Sprintf("%04d-%02d-%02d", year, month, day),
			Runtime:      80 + rng.Intn(100),
			VoteAverage:  math.Round((3+rng.Float64()*7)*10) / 10,
			VoteCount:    rng.Intn(20000),
			Popularity:   powerLawScore(rng) * 100,
			Genres:       genres,
		}
		movies = append(movies, m)
	}
	return movies
}

func seedGenres(ctx context.Context, pool *pgxpool.Pool, genres []domain.Genre) error {
	rows := []string{}
	args := []any{}
	for _, g := range genres {
		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d)", base+1, base+2))
		args = append(args, g.ID, g.Name)
	}
	if len(rows) == 0 {
		return nil
	}
	query := "INSERT INTO genres (id, name) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedMovies(ctx context.Context, pool *pgxpool.Pool, movies []domain.Movie) error {
	movieRows := []string{}
	movieArgs := []any{}
	genreRows := []string{}
	genreArgs := []any{}

	for _, m := range movies {
		base := len(movieArgs)
		placeholders := make([]string, 11)
		for i := range placeholders {
			placeholders[i] = fmt.Sprintf("$%d", base+i+1)
		}
		movieRows = append(movieRows, "("+strings.Join(placeholders, ", ")+")")
		movieArgs = append(movieArgs, m.ID, m.Title, m.Overview, m.PosterPath,
			m.BackdropPath, m.Tagline, m.ReleaseDate, m.Runtime,
			m.VoteAverage, m.VoteCount, m.Popularity)

		for pos, g := range m.Genres {
			gbase := len(genreArgs)
			genreRows = append(genreRows, fmt.Sprintf("($%d, $%d, $%d)", gbase+1, gbase+2, gbase+3))
			genreArgs = append(genreArgs, m.ID, g.ID, pos)
		}
	}

	if len(movieRows) == 0 {
		return nil
	}

	query := `INSERT INTO movies
		(id, title, overview, poster_path, backdrop_path, tagline, release_date,
		 runtime, vote_average, vote_count, popularity) VALUES ` +
		strings.Join(movieRows, ", ")
	if _, err := pool.Exec(ctx, query, movieArgs...); err != nil {
		return fmt.Errorf("insert movies: %w", err)
	}

	if len(genreRows) > 0 {
		query = "INSERT INTO movie_genres (movie_id, genre_id, position) VALUES " +
			strings.Join(genreRows, ", ")
		if _, err := pool.Exec(ctx, query, genreArgs...); err != nil {
			return fmt.Errorf("insert movie genres: %w", err)
		}
	}
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand,
	movies []domain.Movie, genres []domain.Genre) error {

	fake := faker.NewWithSeed(rand.NewSource(7))

	for range userCount {
		userID := uuid.NewString()
		name := fake.Person().Name()
		email := fake.Internet().Email()

		if _, err := pool.Exec(ctx,
			`INSERT INTO users (id, name, email) VALUES ($1, $2, $3)`,
			userID, name, email); err != nil {
			return fmt.Errorf("insert user %s: %w", userID, err)
		}

		for _, movieID := range sampleMovieIDs(rng, movies, 3+rng.Intn(5)) {
			if _, err := pool.Exec(ctx,
				`INSERT INTO user_favorites (user_id, movie_id) VALUES ($1, $2)`,
				userID, movieID); err != nil {
				return fmt.Errorf("insert favorite: %w", err)
			}
		}
		for _, movieID := range sampleMovieIDs(rng, movies, 2+rng.Intn(5)) {
			if _, err := pool.Exec(ctx,
				`INSERT INTO user_watchlist (user_id, movie_id)
				 VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				userID, movieID); err != nil {
				return fmt.Errorf("insert watchlist entry: %w", err)
			}
		}
		for _, movieID := range sampleMovieIDs(rng, movies, 2+rng.Intn(6)) {
			rating := float64(rng.Intn(11)) / 2 // half-star steps, 0..5
			if _, err := pool.Exec(ctx,
				`INSERT INTO user_ratings (user_id, movie_id, rating)
				 VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
				userID, movieID, rating); err != nil {
				return fmt.Errorf("insert rating: %w", err)
			}
		}

		prefCount := 1 + rng.Intn(3)
		for pos := range prefCount {
			genre := genres[rng.Intn(len(genres))]
			if _, err := pool.Exec(ctx,
				`INSERT INTO user_preferences (user_id, genre_id, position)
				 VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
				userID, genre.ID, pos); err != nil {
				return fmt.Errorf("insert preference: %w", err)
			}
		}
	}
	return nil
}

// sampleMovieIDs returns n distinct movie ids.
func sampleMovieIDs(rng *rand.Rand, movies []domain.Movie, n int) []int64 {
	if n > len(movies) {
		n = len(movies)
	}
	perm := rng.Perm(len(movies))
	ids := make([]int64, 0, n)
	for _, i := range perm[:n] {
		ids = append(ids, movies[i].ID)
	}
	return ids
}

func powerLawScore(rng *rand.Rand) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.001
	}
	raw := math.Pow(u, 2.0)
	if raw < 0.01 {
		raw = 0.01
	}
	return math.Round(raw*100) / 100
}
