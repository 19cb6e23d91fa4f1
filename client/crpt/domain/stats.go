package domain

import (
	"context"
	"time"
)

// Outcome classifica o desfecho de um envio.
type Outcome string

const (
	OutcomeSent               Outcome = "sent"
	OutcomeSerializationError Outcome = "serialization_error"
	OutcomeTransportError     Outcome = "transport_error"
	OutcomeCancelled          Outcome = "cancelled"
)

// StatsEvent representa o desfecho de uma tentativa de envio.
//
// Observação: cuidado com cardinalidade (ex.: registrar DocID sem controle
// pode explodir o número de chaves em uma base como Redis).
type StatsEvent struct {
	DocID   string
	Outcome Outcome

	At time.Time
}

// StatsStore é a estratégia de persistência para estatísticas de envio.
//
// Implementações podem armazenar em Redis, memória, etc.
// O pipeline trata erro como best-effort (não derruba o envio).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
