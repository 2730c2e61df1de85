package dto

// HomePage é a página de seleção de dia
type HomePage struct {
	Days       []string `json:"days"`
	DefaultDay string   `json:"default_day,omitempty"`
}

// GameView é um jogo renderizado na grade de odds, com os percentuais de
// vitória do modelo já formatados ("60.0%")
type GameView struct {
	GameID     int64  `json:"game_id"`
	GameDate   string `json:"game_date"`
	HomeAbbrev string `json:"home_abbrev"`
	AwayAbbrev string `json:"away_abbrev"`
	MLHome     int    `json:"ml_home"`
	MLAway     int    `json:"ml_away"`
	HomeWinPct string `json:"home_win_pct"`
	AwayWinPct string `json:"away_win_pct"`
}

// OddsPage é a página de odds de um dia
type OddsPage struct {
	Day   string     `json:"day"`
	State string     `json:"state"` // idle|loading|loaded|failed
	Games []GameView `json:"games"`
	Error string     `json:"error,omitempty"`
}

type BetView struct {
	BetID                string `json:"bet_id"`
	Date                 string `json:"date"`
	GameID               int64  `json:"game_id"`
	HomeAbbrev           string `json:"home_abbrev"`
	AwayAbbrev           string `json:"away_abbrev"`
	Team                 string `json:"team"`
	OddsML               int    `json:"odds_ml"`
	StakeCents           int64  `json:"stake_cents"`
	PotentialReturnCents int64  `json:"potential_return_cents"`
}

type BetsPage struct {
	Bets              []BetView `json:"bets"`
	LockedAmountCents int64     `json:"locked_amount_cents"`
}

type TxnView struct {
	ID         string `json:"id"`
	Ts         string `json:"ts"` // ISO-8601
	Note       string `json:"note"`
	DeltaCents int64  `json:"delta_cents"`
}

type WalletPage struct {
	BalanceCents   int64     `json:"balance_cents"`
	LockedCents    int64     `json:"locked_cents"`
	SpendableCents int64     `json:"spendable_cents"`
	Txns           []TxnView `json:"txns"`
}
