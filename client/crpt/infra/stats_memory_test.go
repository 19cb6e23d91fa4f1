package infra

import (
	"context"
	"testing"

	"crpt-gateway/client/crpt/domain"
)

func TestMemoryStatsStore_CountsOutcomes(t *testing.T) {
	s := NewMemoryStatsStore()

	events := []domain.Outcome{
		domain.OutcomeSent,
		domain.OutcomeSent,
		domain.OutcomeTransportError,
		domain.OutcomeSerializationError,
		domain.OutcomeCancelled,
	}
	for _, o := range events {
		if err := s.Record(context.Background(), domain.StatsEvent{DocID: "d1", Outcome: o}); err != nil {
			t.Fatalf("unexpected record error: %v", err)
		}
	}

	total := s.Total()
	if total.Sent != 2 || total.TransportError != 1 || total.SerializationError != 1 || total.Cancelled != 1 {
		t.Fatalf("unexpected totals: %+v", total)
	}
	if len(s.ByDoc()) != 0 {
		t.Fatalf("expected no per-doc tracking by default")
	}
}

func TestMemoryStatsStore_TracksDocsWhenEnabled(t *testing.T) {
	s := NewMemoryStatsStore(WithTrackDocs(true))

	_ = s.Record(context.Background(), domain.StatsEvent{DocID: "d1", Outcome: domain.OutcomeSent})
	_ = s.Record(context.Background(), domain.StatsEvent{DocID: "d1", Outcome: domain.OutcomeTransportError})
	_ = s.Record(context.Background(), domain.StatsEvent{DocID: "d2", Outcome: domain.OutcomeSent})

	byDoc := s.ByDoc()
	if c := byDoc["d1"]; c.Sent != 1 || c.TransportError != 1 {
		t.Fatalf("unexpected counters for d1: %+v", c)
	}
	if c := byDoc["d2"]; c.Sent != 1 {
		t.Fatalf("unexpected counters for d2: %+v", c)
	}
}
