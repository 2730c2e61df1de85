package walletledger

import (
	"context"
	"encoding/json"
)

// Store é o armazenamento chave-valor do snapshot da carteira.
// Load devolve ok=false quando não existe snapshot gravado.
type Store interface {
	Load(ctx context.Context) (payload []byte, ok bool, err error)
	Save(ctx context.Context, payload []byte) error
}

// formato do snapshot: {"txns":[{id,ts,note,delta},...]}
type snapshotPayload struct {
	Txns []Txn `json:"txns"`
}

func encodeSnapshot(txns []Txn) []byte {
	if txns == nil {
		txns = []Txn{}
	}
	b, _ := json.Marshal(snapshotPayload{Txns: txns})
	return b
}

func decodeSnapshot(b []byte) ([]Txn, error) {
	var p snapshotPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return p.Txns, nil
}
