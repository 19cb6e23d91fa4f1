package domain

import "errors"

// Erros de configuração: detectados na construção, nenhum recurso é criado.
var (
	ErrInvalidLimit  = errors.New("crpt: request limit must be > 0")
	ErrInvalidWindow = errors.New("crpt: window must be > 0")

	// ErrGateClosed indica Acquire após o encerramento do portão.
	ErrGateClosed = errors.New("crpt: permit gate is closed")
)

// SerializationError indica que o documento não pôde ser codificado.
// Nenhuma chamada de rede foi feita.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return "crpt: serializing document: " + e.Err.Error()
}

func (e *SerializationError) Unwrap() error { return e.Err }

// TransportError indica falha de rede ou timeout na chamada ao serviço remoto.
//
// Cancelamento cooperativo NÃO vira TransportError: quando o ctx do chamador
// encerra, o erro retornado envolve ctx.Err() e é detectável com
// errors.Is(err, context.Canceled) ou context.DeadlineExceeded.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "crpt: sending document: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }
