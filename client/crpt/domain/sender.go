package domain

import "context"

// Sender envia o payload já serializado para o serviço remoto e retorna o
// corpo da resposta como texto, sem interpretar status ou conteúdo.
//
// A implementação pode ser HTTP, um stub de teste, etc. Deve ser segura para
// uso concorrente: o pipeline compartilha um único Sender entre chamadores.
type Sender interface {
	Send(ctx context.Context, payload []byte, signature string) (string, error)
}
