package domain

import "context"

// PermitGate representa a admissão de envios dentro de uma janela de tempo.
//
// A semântica é: Acquire bloqueia até existir uma permissão ou até o ctx
// encerrar. Diferente de um semáforo clássico, a permissão consumida NÃO é
// devolvida pelo chamador: o pool inteiro é restaurado a cada tick da janela.
// É um portão de admissão por janela, não um checkout de recurso.
type PermitGate interface {
	Acquire(ctx context.Context) error
}
