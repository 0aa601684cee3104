package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinelabs/cinescope/internal/domain"
	"github.com/jackc/pgx/v5"
)

// Movies loads the full catalog in id order, genres attached in their
// stored position.
func (r *Repository) Movies(ctx context.Context) ([]domain.Movie, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, overview, poster_path, backdrop_path, tagline,
		        release_date, COALESCE(runtime, 0), vote_average, vote_count, popularity
		 FROM movies
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	var movies []domain.Movie
	index := make(map[int64]int)
	for rows.Next() {
		var m domain.Movie
		err := rows.Scan(&m.ID, &m.Title, &m.Overview, &m.PosterPath, &m.BackdropPath,
			&m.Tagline, &m.ReleaseDate, &m.Runtime, &m.VoteAverage, &m.VoteCount, &m.Popularity)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		index[m.ID] = len(movies)
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}

	if err := r.attachGenres(ctx, movies, index); err != nil {
		return nil, err
	}
	return movies, nil
}

// MovieByID loads a single movie. Absence is domain.ErrMovieNotFound.
func (r *Repository) MovieByID(ctx context.Context, id int64) (*domain.Movie, error) {
	m := &domain.Movie{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, overview, poster_path, backdrop_path, tagline,
		        release_date, COALESCE(runtime, 0), vote_average, vote_count, popularity
		 FROM movies WHERE id = $1`, id,
	).Scan(&m.ID, &m.Title, &m.Overview, &m.PosterPath, &m.BackdropPath,
		&m.Tagline, &m.ReleaseDate, &m.Runtime, &m.VoteAverage, &m.VoteCount, &m.Popularity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("query movie id=%d: %w", id, err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT g.id, g.name
		 FROM movie_genres mg
		 JOIN genres g ON g.id = mg.genre_id
		 WHERE mg.movie_id = $1
		 ORDER BY mg.position`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("query genres for movie %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		m.Genres = append(m.Genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres: %w", err)
	}
	return m, nil
}

func (r *Repository) attachGenres(ctx context.Context, movies []domain.Movie, index map[int64]int) error {
	rows, err := r.pool.Query(ctx,
		`SELECT mg.movie_id, g.id, g.name
		 FROM movie_genres mg
		 JOIN genres g ON g.id = mg.genre_id
		 ORDER BY mg.movie_id, mg.position`,
	)
	if err != nil {
		return fmt.Errorf("query movie genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var movieID int64
		var g domain.Genre
		if err := rows.Scan(&movieID, &g.ID, &g.Name); err != nil {
			return fmt.Errorf("scan movie genre: %w", err)
		}
		if i, ok := index[movieID]; ok {
			movies[i].Genres = append(movies[i].Genres, g)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate movie genres: %w", err)
	}
	return nil
}
