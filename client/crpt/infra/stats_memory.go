package infra

import (
	"context"
	"sync"

	"crpt-gateway/client/crpt/domain"
)

type Counters struct {
	Sent               int64
	SerializationError int64
	TransportError     int64
	Cancelled          int64
}

func (c *Counters) add(o domain.Outcome) {
	switch o {
	case domain.OutcomeSent:
		c.Sent++
	case domain.OutcomeSerializationError:
		c.SerializationError++
	case domain.OutcomeTransportError:
		c.TransportError++
	case domain.OutcomeCancelled:
		c.Cancelled++
	}
}

// MemoryStatsStore é uma implementação simples em memória.
// Útil para testes e desenvolvimento.
//
// Não faz expiração e não é indicada para produção.
type MemoryStatsStore struct {
	mu    sync.Mutex
	total Counters
	byDoc map[string]Counters

	trackDocs bool
}

type MemoryStatsOption func(*MemoryStatsStore)

func WithTrackDocs(track bool) MemoryStatsOption {
	return func(s *MemoryStatsStore) { s.trackDocs = track }
}

func NewMemoryStatsStore(opts ...MemoryStatsOption) *MemoryStatsStore {
	s := &MemoryStatsStore{
		byDoc: make(map[string]Counters),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total.add(ev.Outcome)
	if s.trackDocs && ev.DocID != "" {
		c := s.byDoc[ev.DocID]
		c.add(ev.Outcome)
		s.byDoc[ev.DocID] = c
	}
	return nil
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryStatsStore) ByDoc() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Counters, len(s.byDoc))
	for k, v := range s.byDoc {
		out[k] = v
	}
	return out
}
