package model

// LeaderboardEntry représente une ligne du classement général
type LeaderboardEntry struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Avatar      string `json:"avatar,omitempty"`
	Rank        int    `json:"rank"`
	LevelPoints int    `json:"levelPoints"`
	PackPoints  int    `json:"packPoints"`
	Total       int    `json:"total"`
}

// UserRank représente la position d'un utilisateur dans le classement
type UserRank struct {
	UserID     string  `json:"userId"`
	Rank       int     `json:"rank"`
	Total      int     `json:"total"`
	TotalUsers int     `json:"totalUsers"`
	Percentile float64 `json:"percentile"` // Top X%
}
