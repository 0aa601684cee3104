package domain

// SortKey selects the descending sort applied after filtering.
type SortKey string

const (
	SortPopularity  SortKey = "popularity"
	SortRating      SortKey = "rating"
	SortReleaseDate SortKey = "release_date"
)

// ValidSortKey reports whether k names a supported sort.
func ValidSortKey(k SortKey) bool {
	switch k {
	case SortPopularity, SortRating, SortReleaseDate:
		return true
	}
	return false
}

// MovieFilter is a value-object query parameter. The zero value of each
// field means "no constraint on that dimension"; constraints combine
// with logical AND.
type MovieFilter struct {
	Genre  int64   `json:"genre,omitempty"`
	Year   int     `json:"year,omitempty"`
	Rating float64 `json:"rating,omitempty"`
	Sort   SortKey `json:"sort,omitempty"`
}

// IsZero reports whether no constraint and no sort is set.
func (f MovieFilter) IsZero() bool {
	return f.Genre == 0 && f.Year == 0 && f.Rating == 0 && f.Sort == ""
}
