package crpt

import (
	"context"
	"net/http"
	"time"

	"crpt-gateway/client/crpt/application"
	"crpt-gateway/client/crpt/domain"
	"crpt-gateway/client/crpt/infra"
)

type Options struct {
	// Window é a duração de uma janela de admissão (ex.: time.Second).
	Window time.Duration
	// RequestLimit é o máximo de envios admitidos por janela.
	RequestLimit int

	// BaseURL troca o host do serviço (padrão: produção). O path é fixo.
	BaseURL string
	// HTTPClient injeta um http.Client customizado.
	HTTPClient *http.Client
	// Timeout por requisição. Padrão: 60s.
	Timeout time.Duration
	// AcquireTimeout limita a espera pela permissão. 0 = espera indefinida.
	AcquireTimeout time.Duration
	// Stats registra o desfecho de cada envio (best-effort). Pode ser nil.
	Stats domain.StatsStore
}

// Client é a fachada pública: um portão de admissão na frente do pipeline de
// envio. Seguro para uso concorrente; o portão é o único estado compartilhado.
type Client struct {
	svc  application.Service
	gate *infra.WindowGate
}

// New valida a configuração e monta o cliente. Com RequestLimit ou Window
// inválidos retorna erro e nenhuma goroutine é iniciada.
func New(opts Options) (*Client, error) {
	gate, err := infra.NewWindowGate(opts.Window, opts.RequestLimit)
	if err != nil {
		return nil, err
	}

	var senderOpts []infra.SenderOption
	if opts.BaseURL != "" {
		senderOpts = append(senderOpts, infra.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		senderOpts = append(senderOpts, infra.WithHTTPClient(opts.HTTPClient))
	}
	if opts.Timeout > 0 {
		senderOpts = append(senderOpts, infra.WithTimeout(opts.Timeout))
	}

	return &Client{
		svc: application.Service{
			Gate:           gate,
			Sender:         infra.NewHTTPSender(senderOpts...),
			Stats:          opts.Stats,
			AcquireTimeout: opts.AcquireTimeout,
		},
		gate: gate,
	}, nil
}

// CreateDocument envia um documento de introdução em circulação e retorna o
// corpo da resposta como texto.
//
// Bloqueia até haver permissão na janela atual. Erros: cancelamento
// (errors.Is com context.Canceled/DeadlineExceeded),
// *domain.SerializationError, *domain.TransportError.
func (c *Client) CreateDocument(ctx context.Context, doc domain.Document, signature string) (string, error) {
	return c.svc.Submit(ctx, doc, signature)
}

// AvailablePermits informa quantas permissões restam na janela atual.
func (c *Client) AvailablePermits() int { return c.gate.Available() }

// Close encerra a goroutine de reposição do portão. Envios em andamento não
// são interrompidos; novos Acquire falham com domain.ErrGateClosed.
func (c *Client) Close() { c.gate.Close() }
