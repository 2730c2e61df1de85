package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/nba-odds-poc/internal/betledger"
	"github.com/radieske/nba-odds-poc/internal/oddsview"
	"github.com/radieske/nba-odds-poc/internal/walletledger"
	"github.com/radieske/nba-odds-poc/internal/webapp/dto"
	"github.com/radieske/nba-odds-poc/pkg/contracts/events"
)

// BetEventPublisher publica o evento de auditoria de aposta registrada
type BetEventPublisher interface {
	PublishBetPlaced(context.Context, events.BetPlaced) error
}

// Server compõe as páginas do webapp: seleção de dia, grade de odds,
// apostas, carteira e login. O dia selecionado viaja como segmento da URL.
// Os ledgers são construídos no main e entram aqui por referência; o main
// é o único dono do ciclo de vida deles.
type Server struct {
	log    *zap.Logger
	days   []string // game-days conhecidos, carregados no boot
	view   *oddsview.ViewModel
	bets   *betledger.Ledger
	wallet *walletledger.Ledger
	publ   BetEventPublisher // nil desabilita publicação
	login  string            // URL do provedor de identidade; vazio = stub local
}

func NewServer(log *zap.Logger, days []string, view *oddsview.ViewModel,
	bets *betledger.Ledger, wallet *walletledger.Ledger,
	publ BetEventPublisher, loginRedirectURL string) *Server {
	return &Server{
		log:    log,
		days:   days,
		view:   view,
		bets:   bets,
		wallet: wallet,
		publ:   publ,
		login:  loginRedirectURL,
	}
}

// Router retorna o roteador com uma rota por página
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.NotFound(s.notFound)

	r.Get("/", s.home)               // seleção de dia
	r.Get("/login", s.loginPage)     // stub de login
	r.Get("/day/{date}", s.oddsPage) // grade de odds do dia

	r.Get("/bets", s.listBets)
	r.Post("/bets", s.placeBet)
	r.Patch("/bets/{id}", s.updateStake)
	r.Delete("/bets/{id}", s.removeBet)
	r.Delete("/bets", s.clearBets)

	r.Get("/wallet", s.walletPage)
	r.Post("/wallet/deposit", s.deposit)
	r.Post("/wallet/withdraw", s.withdraw)
	r.Delete("/wallet", s.clearWallet)

	return r
}

// home renderiza a página de seleção de dia. Lista vazia significa
// "sem dados históricos disponíveis", não é erro.
func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	page := dto.HomePage{Days: s.days}
	if len(s.days) > 0 {
		page.DefaultDay = s.days[len(s.days)-1] // dia mais recente
	}
	writeJSON(w, http.StatusOK, page)
}

// loginPage redireciona pro provedor de identidade quando configurado;
// senão devolve o sign-in simulado do lado do cliente
func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	if s.login != "" {
		http.Redirect(w, r, s.login, http.StatusFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_in", "user": "demo"})
}

// oddsPage dirige o ciclo do view model pro dia da URL e renderiza o
// resultado. Dia fora da lista conhecida vira not-found sem disparar fetch.
func (s *Server) oddsPage(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if !s.knownDay(date) {
		s.notFound(w, r)
		return
	}

	done := s.view.SelectDay(date)
	select {
	case <-done:
	case <-r.Context().Done():
		// cliente desistiu; a view segue em Loading até a próxima seleção
	}

	snap := s.view.Snapshot()
	page := dto.OddsPage{
		Day:   snap.Day,
		State: string(snap.State),
		Games: make([]dto.GameView, 0, len(snap.Odds)),
		Error: snap.ErrMsg,
	}
	for _, g := range snap.Odds {
		page.Games = append(page.Games, dto.GameView{
			GameID:     g.GameID,
			GameDate:   g.GameDate,
			HomeAbbrev: g.HomeAbbrev,
			AwayAbbrev: g.AwayAbbrev,
			MLHome:     g.MLHome,
			MLAway:     g.MLAway,
			HomeWinPct: formatPct(g.PHome),
			AwayWinPct: formatPct(g.PAway),
		})
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.betsPage())
}

// placeBet registra uma aposta confirmada pelo usuário. Lado e odds são
// obrigatórios; a odd entra por valor e não é rederivada depois.
func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.Date == "" || req.HomeAbbrev == "" || req.AwayAbbrev == "" ||
		req.StakeCents <= 0 || req.OddsML == 0 {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Team != req.HomeAbbrev && req.Team != req.AwayAbbrev {
		http.Error(w, "team must be one of the two sides", http.StatusBadRequest)
		return
	}

	b := betledger.Bet{
		ID:         uuid.NewString(),
		Date:       req.Date,
		GameID:     req.GameID,
		HomeAbbrev: req.HomeAbbrev,
		AwayAbbrev: req.AwayAbbrev,
		Team:       req.Team,
		OddsML:     req.OddsML,
		StakeCents: req.StakeCents,
		CreatedAt:  time.Now().UTC(),
	}
	s.bets.Add(b)

	if s.publ != nil {
		// auditoria best effort; a aposta local já está registrada
		_ = s.publ.PublishBetPlaced(r.Context(), events.BetPlaced{
			BetID:      b.ID,
			GameID:     b.GameID,
			GameDate:   b.Date,
			Team:       b.Team,
			OddsML:     b.OddsML,
			StakeCents: b.StakeCents,
		})
	}

	writeJSON(w, http.StatusCreated, betView(b))
}

// updateStake troca o stake de uma aposta; id desconhecido é no-op
func (s *Server) updateStake(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req dto.UpdateStakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.StakeCents <= 0 {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	s.bets.UpdateStake(id, req.StakeCents)
	writeJSON(w, http.StatusOK, s.betsPage())
}

// removeBet cancela uma aposta; id desconhecido é no-op
func (s *Server) removeBet(w http.ResponseWriter, r *http.Request) {
	s.bets.Remove(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, s.betsPage())
}

func (s *Server) clearBets(w http.ResponseWriter, r *http.Request) {
	s.bets.Clear()
	writeJSON(w, http.StatusOK, s.betsPage())
}

func (s *Server) walletPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.walletView())
}

func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	amount, ok := s.readAmount(w, r)
	if !ok {
		return
	}
	s.wallet.Deposit(amount)
	writeJSON(w, http.StatusOK, s.walletView())
}

// withdraw aplica a regra de fundos disponíveis no call site: saldo do
// ledger da carteira menos o valor travado no ledger de apostas. Recusa
// deixa saldo e histórico intactos.
func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	amount, ok := s.readAmount(w, r)
	if !ok {
		return
	}

	spendable := s.wallet.BalanceCents() - s.bets.LockedAmountCents()
	if amount > spendable {
		s.log.Info("withdraw refused",
			zap.Int64("amount_cents", amount),
			zap.Int64("spendable_cents", spendable),
		)
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":           walletledger.ErrInsufficientFunds.Error(),
			"spendable_cents": spendable,
		})
		return
	}

	s.wallet.Withdraw(amount)
	writeJSON(w, http.StatusOK, s.walletView())
}

func (s *Server) clearWallet(w http.ResponseWriter, r *http.Request) {
	s.wallet.Clear()
	writeJSON(w, http.StatusOK, s.walletView())
}

// notFound é o fallback de rota ou dia desconhecido, sempre com caminho
// de volta pra raiz; nunca derruba a página
func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": "page not found",
		"home":  "/",
	})
}

func (s *Server) knownDay(date string) bool {
	for _, d := range s.days {
		if d == date {
			return true
		}
	}
	return false
}

func (s *Server) betsPage() dto.BetsPage {
	bets := s.bets.Bets()
	page := dto.BetsPage{
		Bets:              make([]dto.BetView, 0, len(bets)),
		LockedAmountCents: s.bets.LockedAmountCents(),
	}
	for _, b := range bets {
		page.Bets = append(page.Bets, betView(b))
	}
	return page
}

func (s *Server) walletView() dto.WalletPage {
	txns := s.wallet.Txns()
	balance := s.wallet.BalanceCents()
	locked := s.bets.LockedAmountCents()

	page := dto.WalletPage{
		BalanceCents:   balance,
		LockedCents:    locked,
		SpendableCents: balance - locked,
		Txns:           make([]dto.TxnView, 0, len(txns)),
	}
	for _, t := range txns {
		page.Txns = append(page.Txns, dto.TxnView{
			ID:         t.ID,
			Ts:         t.Ts.Format(time.RFC3339),
			Note:       t.Note,
			DeltaCents: t.DeltaCents,
		})
	}
	return page
}

func (s *Server) readAmount(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var req dto.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return 0, false
	}
	if req.AmountCents <= 0 {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return 0, false
	}
	return req.AmountCents, true
}

func betView(b betledger.Bet) dto.BetView {
	return dto.BetView{
		BetID:                b.ID,
		Date:                 b.Date,
		GameID:               b.GameID,
		HomeAbbrev:           b.HomeAbbrev,
		AwayAbbrev:           b.AwayAbbrev,
		Team:                 b.Team,
		OddsML:               b.OddsML,
		StakeCents:           b.StakeCents,
		PotentialReturnCents: betledger.PotentialReturnCents(b.StakeCents, b.OddsML),
	}
}

// formatPct formata a probabilidade do modelo como a UI mostra: "60.0%"
func formatPct(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
