package infra

import (
	"context"
	"sync"
	"time"

	"crpt-gateway/client/crpt/domain"
)

// WindowGate implementa domain.PermitGate com janela fixa: um pool de
// permissões com capacidade `limit`, consumido por Acquire e restaurado à
// capacidade total a cada `window` por uma goroutine interna.
//
// O canal bufferizado garante estruturalmente o invariante
// 0 <= disponível <= limit: o refill nunca ultrapassa a capacidade e o
// Acquire nunca deixa o contador negativo.
type WindowGate struct {
	permits chan struct{}
	window  time.Duration
	limit   int

	stopOnce sync.Once
	stop     chan struct{}
}

// NewWindowGate cria o portão e inicia a goroutine de reposição.
// Falha com domain.ErrInvalidLimit / domain.ErrInvalidWindow sem iniciar nada.
func NewWindowGate(window time.Duration, limit int) (*WindowGate, error) {
	if limit <= 0 {
		return nil, domain.ErrInvalidLimit
	}
	if window <= 0 {
		return nil, domain.ErrInvalidWindow
	}

	g := &WindowGate{
		permits: make(chan struct{}, limit),
		window:  window,
		limit:   limit,
		stop:    make(chan struct{}),
	}
	g.refill()
	go g.run()
	return g, nil
}

// Acquire implementa domain.PermitGate.
//
// Se o ctx encerrar durante a espera, retorna ctx.Err() sem consumir
// permissão. Permissões consumidas só voltam ao pool no próximo tick.
func (g *WindowGate) Acquire(ctx context.Context) error {
	select {
	case <-g.permits:
		return nil
	case <-g.stop:
		return domain.ErrGateClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Available retorna quantas permissões restam na janela atual.
func (g *WindowGate) Available() int { return len(g.permits) }

func (g *WindowGate) Limit() int { return g.limit }

func (g *WindowGate) Window() time.Duration { return g.window }

// Close encerra a goroutine de reposição. Idempotente.
// Acquire após Close falha com domain.ErrGateClosed em vez de bloquear
// para sempre em um pool que nunca mais será reposto.
func (g *WindowGate) Close() {
	g.stopOnce.Do(func() { close(g.stop) })
}

func (g *WindowGate) run() {
	t := time.NewTicker(g.window)
	defer t.Stop()
	for {
		select {
		case <-g.stop:
			return
		case <-t.C:
			g.refill()
		}
	}
}

// refill completa o pool até a capacidade. Quem estiver bloqueado em Acquire
// é acordado pelos próprios sends; o default encerra quando o canal enche.
func (g *WindowGate) refill() {
	for {
		select {
		case g.permits <- struct{}{}:
		default:
			return
		}
	}
}
