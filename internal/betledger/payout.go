package betledger

import "github.com/shopspring/decimal"

// PotentialReturnCents calcula o retorno potencial (stake + lucro) de uma
// aposta money-line americana, arredondado ao centavo (half-up).
//
//	ml > 0 (azarão):   stake + stake*ml/100
//	ml < 0 (favorito): stake + stake*100/(-ml)
//
// ml == 0 não existe na convenção americana; devolve só o stake.
func PotentialReturnCents(stakeCents int64, ml int) int64 {
	stake := decimal.NewFromInt(stakeCents)
	hundred := decimal.NewFromInt(100)

	var profit decimal.Decimal
	switch {
	case ml > 0:
		profit = stake.Mul(decimal.NewFromInt(int64(ml))).Div(hundred)
	case ml < 0:
		profit = stake.Mul(hundred).Div(decimal.NewFromInt(int64(-ml)))
	default:
		return stakeCents
	}

	return stake.Add(profit).Round(0).IntPart()
}
