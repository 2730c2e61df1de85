package events

// BetPlaced é o evento de auditoria emitido quando uma aposta é registrada
type BetPlaced struct {
	BetID      string `json:"bet_id"`
	GameID     int64  `json:"game_id"`
	GameDate   string `json:"game_date"`
	Team       string `json:"team"`    // lado escolhido (abbrev)
	OddsML     int    `json:"odds_ml"` // money-line americana capturada na aposta
	StakeCents int64  `json:"stake_cents"`
	TsUnixMs   int64  `json:"ts_unix_ms"`
}
