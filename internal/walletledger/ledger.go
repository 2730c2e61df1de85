package walletledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInsufficientFunds é devolvido no call site quando um saque excede o
// saldo disponível (saldo menos valor travado em apostas abertas). O ledger
// em si só expõe a matemática de saldo; a regra é aplicada por quem chama.
var ErrInsufficientFunds = errors.New("insufficient funds")

const (
	NoteDeposit  = "deposit"
	NoteWithdraw = "withdraw"
)

// Txn é uma transação da carteira: delta positivo = depósito, negativo = saque
type Txn struct {
	ID         string    `json:"id"`
	Ts         time.Time `json:"ts"`
	Note       string    `json:"note"`
	DeltaCents int64     `json:"delta"`
}

// Ledger é o log append-only de transações da carteira, mais recente
// primeiro. O saldo é sempre a soma dos deltas, nunca um contador à parte.
// A cada mutação o histórico inteiro é snapshotado no Store (best effort).
type Ledger struct {
	log   *zap.Logger
	store Store // nil desabilita snapshot

	mu   sync.Mutex
	txns []Txn // índice 0 = mais recente
}

// New monta a carteira recarregando o snapshot, se houver. Snapshot perdido
// ou corrompido degrada pra histórico vazio, nunca pra erro.
func New(store Store, log *zap.Logger) *Ledger {
	l := &Ledger{log: log, store: store}
	if store == nil {
		return l
	}

	b, ok, err := store.Load(context.Background())
	if err != nil {
		log.Warn("wallet snapshot load failed, starting empty", zap.Error(err))
		return l
	}
	if !ok {
		return l
	}
	txns, err := decodeSnapshot(b)
	if err != nil {
		log.Warn("wallet snapshot corrupt, starting empty", zap.Error(err))
		return l
	}
	l.txns = txns
	return l
}

// Deposit registra um crédito; sempre bem-sucedido
func (l *Ledger) Deposit(amountCents int64) Txn {
	return l.append(NoteDeposit, amountCents)
}

// Withdraw registra um débito. A checagem de saldo disponível fica no call
// site, combinando este saldo com o valor travado do ledger de apostas.
func (l *Ledger) Withdraw(amountCents int64) Txn {
	return l.append(NoteWithdraw, -amountCents)
}

// Clear apaga o histórico (e o snapshot junto)
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.txns = nil
	l.persist()
}

// BalanceCents é a soma de todos os deltas
func (l *Ledger) BalanceCents() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var sum int64
	for _, t := range l.txns {
		sum += t.DeltaCents
	}
	return sum
}

// Txns retorna uma cópia do histórico, mais recente primeiro
func (l *Ledger) Txns() []Txn {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Txn, len(l.txns))
	copy(out, l.txns)
	return out
}

func (l *Ledger) append(note string, deltaCents int64) Txn {
	t := Txn{
		ID:         uuid.NewString(),
		Ts:         time.Now().UTC(),
		Note:       note,
		DeltaCents: deltaCents,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.txns = append([]Txn{t}, l.txns...)
	l.persist()
	return t
}

// persist grava o snapshot; falha só gera warn, nunca propaga.
// chamar com l.mu já em posse.
func (l *Ledger) persist() {
	if l.store == nil {
		return
	}
	if err := l.store.Save(context.Background(), encodeSnapshot(l.txns)); err != nil {
		l.log.Warn("wallet snapshot save failed", zap.Error(err))
	}
}
