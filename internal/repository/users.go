package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinelabs/cinescope/internal/domain"
	"github.com/jackc/pgx/v5"
)

// Profile loads a user profile with favorites, watchlist, ratings and
// genre preferences. Absence is domain.ErrUserNotFound.
func (r *Repository) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user := &domain.User{
		ID:      userID,
		Ratings: make(map[int64]float64),
	}

	err := r.pool.QueryRow(ctx,
		`SELECT name, email FROM users WHERE id = $1`, userID,
	).Scan(&user.Name, &user.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user id=%s: %w", userID, err)
	}

	var loadErr error
	user.Favorites, loadErr = r.movieIDSet(ctx, "user_favorites", userID)
	if loadErr != nil {
		return nil, loadErr
	}
	user.Watchlist, loadErr = r.movieIDSet(ctx, "user_watchlist", userID)
	if loadErr != nil {
		return nil, loadErr
	}

	rows, err := r.pool.Query(ctx,
		`SELECT movie_id, rating FROM user_ratings WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("query ratings for user %s: %w", userID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var movieID int64
		var rating float64
		if err := rows.Scan(&movieID, &rating); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		user.Ratings[movieID] = rating
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}

	prefRows, err := r.pool.Query(ctx,
		`SELECT genre_id FROM user_preferences WHERE user_id = $1 ORDER BY position`, userID)
	if err != nil {
		return nil, fmt.Errorf("query preferences for user %s: %w", userID, err)
	}
	defer prefRows.Close()
	for prefRows.Next() {
		var genreID int64
		if err := prefRows.Scan(&genreID); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		user.Preferences.Genres = append(user.Preferences.Genres, genreID)
	}
	if err := prefRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate preferences: %w", err)
	}

	return user, nil
}

// SaveProfile replaces the stored profile wholesale in one
// transaction, mirroring the store's replace-and-persist protocol.
func (r *Repository) SaveProfile(ctx context.Context, user domain.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save profile: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE users SET name = $2, email = $3 WHERE id = $1`,
		user.ID, user.Name, user.Email)
	if err != nil {
		return fmt.Errorf("update user %s: %w", user.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	for _, table := range []string{"user_favorites", "user_watchlist", "user_ratings", "user_preferences"} {
		if _, err := tx.Exec(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1`, table), user.ID); err != nil {
			return fmt.Errorf("clear %s for user %s: %w", table, user.ID, err)
		}
	}

	for _, movieID := range user.Favorites {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_favorites (user_id, movie_id) VALUES ($1, $2)`,
			user.ID, movieID); err != nil {
			return fmt.Errorf("insert favorite %d: %w", movieID, err)
		}
	}
	for _, movieID := range user.Watchlist {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_watchlist (user_id, movie_id) VALUES ($1, $2)`,
			user.ID, movieID); err != nil {
			return fmt.Errorf("insert watchlist entry %d: %w", movieID, err)
		}
	}
	for movieID, rating := range user.Ratings {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_ratings (user_id, movie_id, rating) VALUES ($1, $2, $3)`,
			user.ID, movieID, rating); err != nil {
			return fmt.Errorf("insert rating for movie %d: %w", movieID, err)
		}
	}
	for i, genreID := range user.Preferences.Genres {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_preferences (user_id, genre_id, position) VALUES ($1, $2, $3)`,
			user.ID, genreID, i); err != nil {
			return fmt.Errorf("insert preference %d: %w", genreID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save profile: %w", err)
	}
	return nil
}

func (r *Repository) movieIDSet(ctx context.Context, table, userID string) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT movie_id FROM %s WHERE user_id = $1 ORDER BY movie_id`, table), userID)
	if err != nil {
		return nil, fmt.Errorf("query %s for user %s: %w", table, userID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s entry: %w", table, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return ids, nil
}
