// Package crpt fornece um cliente com limite de requisições para o endpoint
// de criação de documentos do ismp.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (sem dependência de net/http)
//   - application: caso de uso (adquirir permissão, serializar, enviar)
//   - infra: implementações concretas (janela fixa, sender HTTP, stats)
//   - crpt (este pacote): wiring + API pública do cliente
//
// Fluxo de um envio:
//
//  1. CreateDocument bloqueia até uma permissão da janela atual
//  2. Serializa o documento para JSON
//  3. POST em /api/v3/lk/documents/create com header Signature
//  4. Retorna o corpo da resposta verbatim (nenhum status é inspecionado)
//
// O pool de permissões é restaurado à capacidade total a cada janela por uma
// goroutine interna; Close a encerra. Até `RequestLimit` envios são admitidos
// por janela, os demais chamadores ficam bloqueados até o próximo tick.
package crpt
