package dto

// GameOdds representa as odds de um jogo da NBA em um dia histórico,
// exatamente como retornadas por GET /api/odds?date=yyyy-mm-dd.
// Imutável depois de carregado; o dataset não muda durante a sessão.
type GameOdds struct {
	GameID     int64   `json:"game_id"`
	GameDate   string  `json:"game_date"` // ISO yyyy-mm-dd
	HomeAbbrev string  `json:"home_abbrev"`
	AwayAbbrev string  `json:"away_abbrev"`
	MLHome     int     `json:"ml_home"` // money-line americana
	MLAway     int     `json:"ml_away"`
	PHome      float64 `json:"p_home"` // probabilidade do modelo, 0..1
	PAway      float64 `json:"p_away"`
}
