package betledger

import (
	"sync"
	"time"
)

// Bet é uma aposta registrada pelo usuário. Lado escolhido e odds são
// obrigatórios na construção: a odd é capturada por valor no momento da
// aposta e nunca rederivada depois.
type Bet struct {
	ID         string // token único gerado pelo chamador (uuid)
	Date       string // ISO yyyy-mm-dd do jogo
	GameID     int64
	HomeAbbrev string
	AwayAbbrev string
	Team       string // abbrev do lado escolhido
	OddsML     int    // money-line americana na hora da aposta
	StakeCents int64
	CreatedAt  time.Time
}

// Ledger é a coleção em memória de apostas abertas, em ordem de inserção.
// Todas as operações são síncronas e totais: id desconhecido é no-op.
// Apostas duplicadas no mesmo jogo são permitidas.
type Ledger struct {
	mu   sync.Mutex
	bets []Bet
}

func New() *Ledger { return &Ledger{} }

func (l *Ledger) Add(b Bet) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bets = append(l.bets, b)
}

// UpdateStake troca o valor apostado; no-op se o id não existir
func (l *Ledger) UpdateStake(id string, stakeCents int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.bets {
		if l.bets[i].ID == id {
			l.bets[i].StakeCents = stakeCents
			return
		}
	}
}

// Remove cancela uma aposta; no-op se o id não existir
func (l *Ledger) Remove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.bets {
		if l.bets[i].ID == id {
			l.bets = append(l.bets[:i], l.bets[i+1:]...)
			return
		}
	}
}

func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bets = nil
}

// Bets retorna uma cópia em ordem de inserção
func (l *Ledger) Bets() []Bet {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Bet, len(l.bets))
	copy(out, l.bets)
	return out
}

// LockedAmountCents é o total travado em apostas abertas: soma dos stakes
func (l *Ledger) LockedAmountCents() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var sum int64
	for _, b := range l.bets {
		sum += b.StakeCents
	}
	return sum
}
