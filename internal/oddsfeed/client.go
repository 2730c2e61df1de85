package oddsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/radieske/nba-odds-poc/internal/oddsfeed/dto"
)

// NetworkError indica falha de transporte ou status HTTP não-2xx na API de odds.
// Cancelamento de contexto também chega embrulhado aqui; use errors.Is com
// context.Canceled pra distinguir (a cadeia de erros é preservada via Unwrap).
type NetworkError struct {
	Op     string // "game-days" ou "odds"
	Status int    // 0 quando a falha é de transporte
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("odds api %s: http %d", e.Op, e.Status)
	}
	return fmt.Sprintf("odds api %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Client consome a API externa de odds históricas.
// Sem retry, sem cache e sem timeout próprio: cada chamada é uma leitura
// idempotente e o cancelamento fica por conta do contexto do chamador.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{},
	}
}

// ListGameDays retorna os dias com jogos disponíveis (ISO yyyy-mm-dd).
// Lista vazia significa "sem dados históricos", não é erro.
func (c *Client) ListGameDays(ctx context.Context) ([]string, error) {
	var days []string
	if err := c.getJSON(ctx, "game-days", c.BaseURL+"/api/game-days", &days); err != nil {
		return nil, err
	}
	return days, nil
}

// ListOdds retorna as odds de todos os jogos de um dia.
// date deve ser um dia retornado por ListGameDays; o client não valida.
func (c *Client) ListOdds(ctx context.Context, date string) ([]dto.GameOdds, error) {
	var odds []dto.GameOdds
	u := c.BaseURL + "/api/odds?date=" + url.QueryEscape(date)
	if err := c.getJSON(ctx, "odds", u, &odds); err != nil {
		return nil, err
	}
	return odds, nil
}

func (c *Client) getJSON(ctx context.Context, op, u string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &NetworkError{Op: op, Status: res.StatusCode}
	}
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	return nil
}
