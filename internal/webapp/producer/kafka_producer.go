package producer

import (
	"context"
	"encoding/json"
	"time"

	skafka "github.com/radieske/nba-odds-poc/internal/shared/kafka"
	"github.com/radieske/nba-odds-poc/pkg/contracts/events"
)

type KafkaPublisher struct {
	Writer *skafka.Writer
}

func NewKafkaPublisher(w *skafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: w}
}

func (p *KafkaPublisher) PublishBetPlaced(ctx context.Context, e events.BetPlaced) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return skafka.WriteJSON(ctx, p.Writer, e.BetID, b)
}
