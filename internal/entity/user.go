package entity

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Ranking is the per-user aggregate of the score ledger.
type Ranking struct {
	User   User  `json:"user"`
	Wins   int64 `json:"wins"`
	Losses int64 `json:"losses"`
	Ties   int64 `json:"ties"`
}
