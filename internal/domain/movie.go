package domain

// Movie represents a film record. DirectorID is a nullable reference to a
// Director; dangling references are allowed and surface as a null director
// name in listings.
type Movie struct {
	// ID is the unique identifier for the movie (auto-generated).
	ID int64 `json:"id"`

	// Title is the movie title.
	Title string `json:"title"`

	// Year is the release year.
	Year int `json:"year"`

	// DirectorID optionally references a Director. Nil means no director.
	DirectorID *int64 `json:"director_id"`
}

// MovieWithDirector is a Movie joined with its director's name.
// DirectorName is nil when DirectorID is null or references a director
// that no longer exists.
type MovieWithDirector struct {
	Movie

	// DirectorName is the denormalized director name from the join.
	DirectorName *string `json:"director_name"`
}
