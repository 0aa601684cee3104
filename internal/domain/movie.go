package domain

// Genre is shared by reference across movies and never mutated after load.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Movie is a catalog record. Immutable once loaded; the query engine
// always works on copies of the snapshot.
type Movie struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Tagline      string  `json:"tagline,omitempty"`
	ReleaseDate  string  `json:"release_date"`
	Runtime      int     `json:"runtime,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	Genres       []Genre `json:"genres"`
}

// HasGenre reports whether the movie's genre list contains genreID.
func (m Movie) HasGenre(genreID int64) bool {
	for _, g := range m.Genres {
		if g.ID == genreID {
			return true
		}
	}
	return false
}
