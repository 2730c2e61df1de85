package oddsview

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/nba-odds-poc/internal/oddsfeed"
	"github.com/radieske/nba-odds-poc/internal/oddsfeed/dto"
)

// fakeFeed controla quando cada dia "responde". Com respectCtx o fetch
// desiste no cancelamento; sem, ele segura a resposta até o gate abrir e
// devolve os dados mesmo obsoletos (pra exercitar o descarte por geração).
type fakeFeed struct {
	mu         sync.Mutex
	calls      []string
	gates      map[string]chan struct{}
	data       map[string][]dto.GameOdds
	errs       map[string]error
	respectCtx bool
}

func (f *fakeFeed) ListOdds(ctx context.Context, date string) ([]dto.GameOdds, error) {
	f.mu.Lock()
	f.calls = append(f.calls, date)
	gate := f.gates[date]
	f.mu.Unlock()

	if gate != nil {
		if f.respectCtx {
			select {
			case <-gate:
			case <-ctx.Done():
				return nil, &oddsfeed.NetworkError{Op: "odds", Err: ctx.Err()}
			}
		} else {
			<-gate
		}
	}
	if err := f.errs[date]; err != nil {
		return nil, err
	}
	return f.data[date], nil
}

func game(id int64, date string) dto.GameOdds {
	return dto.GameOdds{GameID: id, GameDate: date, HomeAbbrev: "LAL", AwayAbbrev: "BOS",
		MLHome: -150, MLAway: 130, PHome: 0.6, PAway: 0.4}
}

func TestIdleUntilFirstSelection(t *testing.T) {
	vm := New(&fakeFeed{}, zap.NewNop())
	assert.Equal(t, StateIdle, vm.Snapshot().State)
}

func TestLoadedKeepsServerOrder(t *testing.T) {
	feed := &fakeFeed{data: map[string][]dto.GameOdds{
		"2024-01-15": {game(3, "2024-01-15"), game(1, "2024-01-15"), game(2, "2024-01-15")},
	}}
	vm := New(feed, zap.NewNop())

	<-vm.SelectDay("2024-01-15")

	snap := vm.Snapshot()
	assert.Equal(t, StateLoaded, snap.State)
	assert.Equal(t, "2024-01-15", snap.Day)
	require.Len(t, snap.Odds, 3)
	// ordem exatamente como retornada, sem re-sort
	assert.Equal(t, int64(3), snap.Odds[0].GameID)
	assert.Equal(t, int64(1), snap.Odds[1].GameID)
	assert.Equal(t, int64(2), snap.Odds[2].GameID)
}

func TestNetworkErrorGoesToFailed(t *testing.T) {
	feed := &fakeFeed{errs: map[string]error{
		"2024-01-15": &oddsfeed.NetworkError{Op: "odds", Status: 502},
	}}
	vm := New(feed, zap.NewNop())

	<-vm.SelectDay("2024-01-15")

	snap := vm.Snapshot()
	assert.Equal(t, StateFailed, snap.State)
	assert.NotEmpty(t, snap.ErrMsg)
	assert.Empty(t, snap.Odds)
}

// trocar de dia com fetch pendente: a resposta antiga resolve depois da
// segunda seleção e nunca pode sobrescrever o estado mais novo
func TestStaleResponseNeverApplied(t *testing.T) {
	gate := make(chan struct{})
	feed := &fakeFeed{
		gates: map[string]chan struct{}{"2024-01-12": gate},
		data: map[string][]dto.GameOdds{
			"2024-01-12": {game(99, "2024-01-12")},
			"2024-01-15": {game(1, "2024-01-15")},
		},
	}
	vm := New(feed, zap.NewNop())

	done1 := vm.SelectDay("2024-01-12")

	// a lista anterior some imediatamente ao entrar em Loading
	assert.Equal(t, StateLoading, vm.Snapshot().State)
	assert.Empty(t, vm.Snapshot().Odds)

	done2 := vm.SelectDay("2024-01-15")
	<-done2

	// agora libera a resposta obsoleta do primeiro dia
	close(gate)
	<-done1

	snap := vm.Snapshot()
	assert.Equal(t, StateLoaded, snap.State)
	assert.Equal(t, "2024-01-15", snap.Day)
	require.Len(t, snap.Odds, 1)
	assert.Equal(t, int64(1), snap.Odds[0].GameID)
}

// fetch cancelado pela troca de dia é no-op silencioso, não vira Failed
func TestCancellationIsSilent(t *testing.T) {
	gate := make(chan struct{})
	feed := &fakeFeed{
		respectCtx: true,
		gates:      map[string]chan struct{}{"2024-01-12": gate},
		data: map[string][]dto.GameOdds{
			"2024-01-15": {game(1, "2024-01-15")},
		},
	}
	vm := New(feed, zap.NewNop())

	done1 := vm.SelectDay("2024-01-12")
	done2 := vm.SelectDay("2024-01-15")
	<-done1
	<-done2

	snap := vm.Snapshot()
	assert.Equal(t, StateLoaded, snap.State)
	assert.Equal(t, "2024-01-15", snap.Day)
}

// o ciclo não tem estado terminal: Failed volta pra Loading/Loaded
func TestCycleRepeatsAfterFailure(t *testing.T) {
	feed := &fakeFeed{
		errs: map[string]error{"2024-01-12": &oddsfeed.NetworkError{Op: "odds", Status: 500}},
		data: map[string][]dto.GameOdds{"2024-01-15": {game(1, "2024-01-15")}},
	}
	vm := New(feed, zap.NewNop())

	<-vm.SelectDay("2024-01-12")
	assert.Equal(t, StateFailed, vm.Snapshot().State)

	<-vm.SelectDay("2024-01-15")
	snap := vm.Snapshot()
	assert.Equal(t, StateLoaded, snap.State)
	assert.Empty(t, snap.ErrMsg)
}
