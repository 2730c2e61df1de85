package walletledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore é um Store em memória pros testes
type memStore struct {
	payload []byte
	ok      bool
	saves   int
}

func (m *memStore) Load(ctx context.Context) ([]byte, bool, error) {
	return m.payload, m.ok, nil
}

func (m *memStore) Save(ctx context.Context, payload []byte) error {
	m.payload = payload
	m.ok = true
	m.saves++
	return nil
}

func TestBalanceIsSumOfDeltas(t *testing.T) {
	l := New(nil, zap.NewNop())
	assert.Equal(t, int64(0), l.BalanceCents())

	l.Deposit(10000)
	l.Deposit(5000)
	l.Withdraw(3000)

	assert.Equal(t, int64(12000), l.BalanceCents())

	// replay do log reproduz o mesmo saldo
	var sum int64
	for _, txn := range l.Txns() {
		sum += txn.DeltaCents
	}
	assert.Equal(t, l.BalanceCents(), sum)
}

func TestTxnsNewestFirst(t *testing.T) {
	l := New(nil, zap.NewNop())
	l.Deposit(100)
	l.Withdraw(40)

	txns := l.Txns()
	require.Len(t, txns, 2)
	assert.Equal(t, NoteWithdraw, txns[0].Note)
	assert.Equal(t, int64(-40), txns[0].DeltaCents)
	assert.Equal(t, NoteDeposit, txns[1].Note)
	assert.Equal(t, int64(100), txns[1].DeltaCents)
}

func TestClearWipesHistory(t *testing.T) {
	l := New(nil, zap.NewNop())
	l.Deposit(100)
	l.Clear()

	assert.Empty(t, l.Txns())
	assert.Equal(t, int64(0), l.BalanceCents())
}

// snapshot gravado a cada mutação e recarregado verbatim no próximo boot
func TestSnapshotRoundTrip(t *testing.T) {
	store := &memStore{}

	l := New(store, zap.NewNop())
	l.Deposit(10000)
	l.Withdraw(2500)
	assert.Equal(t, 2, store.saves)

	reloaded := New(store, zap.NewNop())
	assert.Equal(t, int64(7500), reloaded.BalanceCents())

	want := l.Txns()
	got := reloaded.Txns()
	require.Len(t, got, 2)
	assert.Equal(t, want[0].ID, got[0].ID)
	assert.Equal(t, want[1].ID, got[1].ID)
	assert.Equal(t, want[0].DeltaCents, got[0].DeltaCents)
}

// snapshot perdido ou corrompido degrada pra histórico vazio, nunca erro
func TestCorruptSnapshotStartsEmpty(t *testing.T) {
	store := &memStore{payload: []byte("{not json"), ok: true}

	l := New(store, zap.NewNop())
	assert.Empty(t, l.Txns())
	assert.Equal(t, int64(0), l.BalanceCents())
}

func TestMissingSnapshotStartsEmpty(t *testing.T) {
	l := New(&memStore{}, zap.NewNop())
	assert.Empty(t, l.Txns())
}
