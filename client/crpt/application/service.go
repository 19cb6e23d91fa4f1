package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"crpt-gateway/client/crpt/domain"
)

// Service concentra a regra de aplicação do envio de um documento.
//
// A ordem é fixa: adquirir permissão, serializar, enviar. A permissão é
// adquirida antes de qualquer trabalho, então o chamador externo não precisa
// conhecer o portão. Nenhum retry é feito nesta camada.
type Service struct {
	Gate   domain.PermitGate
	Sender domain.Sender
	Stats  domain.StatsStore

	// AcquireTimeout limita apenas a espera pela permissão.
	// - Se <= 0, espera indefinidamente (até ctx cancelar).
	// - Se > 0, a espera expira como context.DeadlineExceeded.
	AcquireTimeout time.Duration

	// Encode serializa o documento. Se nil, usa encoding/json.
	// Injetável para testar o caminho de falha de serialização.
	Encode func(domain.Document) ([]byte, error)
}

// Submit envia um documento assinado e retorna o corpo da resposta verbatim.
//
// Erros possíveis: ctx.Err() embrulhado (cancelamento na espera ou no envio),
// *domain.SerializationError, *domain.TransportError, domain.ErrGateClosed.
func (s Service) Submit(ctx context.Context, doc domain.Document, signature string) (string, error) {
	if err := s.acquire(ctx); err != nil {
		if errors.Is(err, domain.ErrGateClosed) {
			return "", err
		}
		s.record(ctx, doc, domain.OutcomeCancelled)
		return "", fmt.Errorf("waiting for permit: %w", err)
	}

	// products nulo vira lista vazia: o serviço remoto sempre recebe
	// "products": []. doc é cópia, o valor do chamador não muda.
	if doc.Products == nil {
		doc.Products = []domain.Product{}
	}

	encode := s.Encode
	if encode == nil {
		encode = func(d domain.Document) ([]byte, error) { return json.Marshal(d) }
	}
	payload, err := encode(doc)
	if err != nil {
		s.record(ctx, doc, domain.OutcomeSerializationError)
		return "", &domain.SerializationError{Err: err}
	}

	body, err := s.Sender.Send(ctx, payload, signature)
	if err != nil {
		if ctx.Err() != nil {
			s.record(ctx, doc, domain.OutcomeCancelled)
			return "", fmt.Errorf("sending document: %w", ctx.Err())
		}
		s.record(ctx, doc, domain.OutcomeTransportError)
		return "", &domain.TransportError{Err: err}
	}

	s.record(ctx, doc, domain.OutcomeSent)
	return body, nil
}

func (s Service) acquire(ctx context.Context) error {
	if s.Gate == nil {
		return nil
	}
	if s.AcquireTimeout <= 0 {
		return s.Gate.Acquire(ctx)
	}

	acqCtx, cancel := context.WithTimeout(ctx, s.AcquireTimeout)
	defer cancel()
	return s.Gate.Acquire(acqCtx)
}

// record é best-effort: nunca falha o envio e ignora o cancelamento do ctx,
// senão o desfecho "cancelled" jamais seria registrado.
func (s Service) record(ctx context.Context, doc domain.Document, outcome domain.Outcome) {
	if s.Stats == nil {
		return
	}
	_ = s.Stats.Record(context.WithoutCancel(ctx), domain.StatsEvent{
		DocID:   doc.DocID,
		Outcome: outcome,
		At:      time.Now(),
	})
}
