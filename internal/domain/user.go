package domain

// Preferences holds the user's preferred genre ids, replaced wholesale
// by UpdatePreferences.
type Preferences struct {
	Genres []int64 `json:"genres"`
}

// User is a profile record. Favorites and watchlist are id sets (no
// duplicates, order irrelevant); Ratings maps movie id to the rating
// value. Mutated only via whole-profile replace-and-persist in the
// user state store, which is the sole writer.
type User struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Favorites   []int64           `json:"favorites"`
	Watchlist   []int64           `json:"watchlist"`
	Ratings     map[int64]float64 `json:"ratings"`
	Preferences Preferences       `json:"preferences"`
}

// Clone returns a deep copy so a candidate profile can be built and
// persisted without touching the committed one.
func (u User) Clone() User {
	out := u
	out.Favorites = append([]int64(nil), u.Favorites...)
	out.Watchlist = append([]int64(nil), u.Watchlist...)
	out.Ratings = make(map[int64]float64, len(u.Ratings))
	for id, r := range u.Ratings {
		out.Ratings[id] = r
	}
	out.Preferences.Genres = append([]int64(nil), u.Preferences.Genres...)
	return out
}
