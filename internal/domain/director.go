package domain

// Director represents a film director record.
type Director struct {
	// ID is the unique identifier for the director (auto-generated).
	ID int64 `json:"id"`

	// Name is the director's display name.
	Name string `json:"name"`

	// BirthYear is the director's year of birth. Zero is a valid value;
	// presence is checked at the API boundary, not by truthiness.
	BirthYear int `json:"birthYear"`
}
