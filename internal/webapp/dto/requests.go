package dto

type PlaceBetRequest struct {
	GameID     int64  `json:"game_id"`
	Date       string `json:"date"`
	HomeAbbrev string `json:"home_abbrev"`
	AwayAbbrev string `json:"away_abbrev"`
	Team       string `json:"team"` // precisa ser home_abbrev ou away_abbrev
	OddsML     int    `json:"odds_ml"`
	StakeCents int64  `json:"stake_cents"`
}

type UpdateStakeRequest struct {
	StakeCents int64 `json:"stake_cents"`
}

type AmountRequest struct {
	AmountCents int64 `json:"amount_cents"`
}
