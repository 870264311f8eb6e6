package roster

// Player is a single roster entry as served by the remote endpoint.
type Player struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	ImageURL          string  `json:"imageUrl"`
	Team              string  `json:"team"`
	GamesPlayed       int     `json:"gamesPlayed"`
	AverageGrade      float64 `json:"avgGrade"`
	AverageFantaGrade float64 `json:"avgFantaGrade"`
}

// playerPayload mirrors Player with pointer fields so that missing keys can be
// told apart from zero values.
type playerPayload struct {
	ID                *int     `json:"id"`
	Name              *string  `json:"name"`
	ImageURL          *string  `json:"imageUrl"`
	Team              *string  `json:"team"`
	GamesPlayed       *int     `json:"gamesPlayed"`
	AverageGrade      *float64 `json:"avgGrade"`
	AverageFantaGrade *float64 `json:"avgFantaGrade"`
}
