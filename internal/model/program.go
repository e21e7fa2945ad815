package model

// Program is a themed entertainment package offered in the public catalog.
// Programs are compiled into the binary and never change at runtime.
//
// Fields:
//
//	Key             – unique short identifier referenced by bookings.
//	Title           – display name.
//	Description     – marketing copy.
//	RecommendedAge  – free-text age range such as "5–9".
//	DurationMinutes – length of the show.
//	Price           – price in the smallest currency unit.
//	Animators       – names of the characters running the program.
//	Cover           – path of the cover image served by the frontend.
type Program struct {
	Key             string   `json:"key"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	RecommendedAge  string   `json:"recommended_age"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           int      `json:"price"`
	Animators       []string `json:"animators"`
	Cover           string   `json:"cover"`
}
