package oddsview

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/radieske/nba-odds-poc/internal/oddsfeed/dto"
)

// State é o estado do ciclo de busca de odds do dia selecionado
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

// OddsLister é o subconjunto do client de odds usado pela view
type OddsLister interface {
	ListOdds(ctx context.Context, date string) ([]dto.GameOdds, error)
}

// Snapshot é a foto do estado atual, pronta pra renderizar
type Snapshot struct {
	State  State
	Day    string
	Odds   []dto.GameOdds
	ErrMsg string
}

// ViewModel mantém o ciclo Idle → Loading → {Loaded, Failed} por dia
// selecionado. Trocar de dia cancela a busca em andamento e limpa a lista
// exibida na hora; uma resposta só é aplicada se a geração dela ainda for a
// corrente ("last request wins" por token, não por timestamp).
type ViewModel struct {
	feed OddsLister
	log  *zap.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	state  State
	day    string
	odds   []dto.GameOdds
	errMsg string
}

func New(feed OddsLister, log *zap.Logger) *ViewModel {
	return &ViewModel{feed: feed, log: log, state: StateIdle}
}

// SelectDay inicia a busca das odds do dia. O canal retornado fecha quando
// essa seleção se resolve (carregada, falhou ou superada por outra seleção).
// Sem timeout: uma busca pendurada deixa a view em Loading até ser cancelada.
func (vm *ViewModel) SelectDay(day string) <-chan struct{} {
	vm.mu.Lock()
	if vm.cancel != nil {
		vm.cancel()
	}
	vm.gen++
	gen := vm.gen

	ctx, cancel := context.WithCancel(context.Background())
	vm.cancel = cancel

	vm.state = StateLoading
	vm.day = day
	vm.odds = nil // a lista anterior nunca fica visível durante o refetch
	vm.errMsg = ""
	vm.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		odds, err := vm.feed.ListOdds(ctx, day)

		vm.mu.Lock()
		defer vm.mu.Unlock()

		if gen != vm.gen {
			return // resposta obsoleta: outra seleção já assumiu
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return // cancelamento não é falha
			}
			vm.state = StateFailed
			vm.errMsg = err.Error()
			vm.log.Warn("odds fetch failed", zap.String("day", day), zap.Error(err))
			return
		}
		vm.state = StateLoaded
		vm.odds = odds // ordem exatamente como retornada pela API
	}()
	return done
}

// Snapshot retorna uma cópia do estado corrente
func (vm *ViewModel) Snapshot() Snapshot {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	odds := make([]dto.GameOdds, len(vm.odds))
	copy(odds, vm.odds)
	return Snapshot{State: vm.state, Day: vm.day, Odds: odds, ErrMsg: vm.errMsg}
}
