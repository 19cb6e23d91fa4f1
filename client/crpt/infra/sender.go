package infra

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL é o endereço de produção do serviço.
	DefaultBaseURL = "https://ismp.crpt.ru"

	// CreateDocumentPath é fixo: o cliente atende um único endpoint.
	CreateDocumentPath = "/api/v3/lk/documents/create"

	// DefaultTimeout limita cada requisição individual.
	DefaultTimeout = 60 * time.Second
)

// HTTPSender implementa domain.Sender sobre net/http.
//
// O http.Client interno é compartilhado entre chamadores sem sincronização
// extra; o estado mutável do cliente fica todo no transporte, que já é seguro
// para uso concorrente.
type HTTPSender struct {
	client *http.Client
	url    string
}

type SenderOption func(*HTTPSender)

// WithBaseURL troca o host (ex.: stub local nos testes). O path não muda.
func WithBaseURL(base string) SenderOption {
	return func(s *HTTPSender) {
		s.url = strings.TrimRight(base, "/") + CreateDocumentPath
	}
}

// WithHTTPClient injeta um http.Client customizado (proxy, TLS, transporte).
func WithHTTPClient(c *http.Client) SenderOption {
	return func(s *HTTPSender) {
		if c != nil {
			s.client = c
		}
	}
}

// WithTimeout ajusta o timeout por requisição do cliente em uso.
// Aplicar depois de WithHTTPClient sobrescreve o timeout do cliente injetado.
func WithTimeout(d time.Duration) SenderOption {
	return func(s *HTTPSender) {
		if d > 0 {
			s.client.Timeout = d
		}
	}
}

func NewHTTPSender(opts ...SenderOption) *HTTPSender {
	s := &HTTPSender{
		client: &http.Client{Timeout: DefaultTimeout},
		url:    DefaultBaseURL + CreateDocumentPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send implementa domain.Sender: POST com Content-Type e Signature, corpo
// retornado verbatim. Nenhuma inspeção de status: interpretar a resposta do
// serviço é responsabilidade do chamador.
func (s *HTTPSender) Send(ctx context.Context, payload []byte, signature string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Signature", signature)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
