package domain

// Represents a campus building a route can start or end at.
// The acronym is the identifier used by steps and route location paths.
type Building struct {
	Acronym string
	Name    string
	Coordinates
}
