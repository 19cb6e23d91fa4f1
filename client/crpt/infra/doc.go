// Package infra contém implementações concretas (infraestrutura) para os
// contratos definidos no pacote domain.
//
// Exemplos:
//   - WindowGate: portão de admissão por janela fixa (channel + ticker)
//   - HTTPSender: POST para o endpoint de criação de documentos
//   - MemoryStatsStore / RedisStatsStore: contadores de desfecho por envio
//
// Limitação conhecida do WindowGate: o tick restaura o pool inteiro de uma
// vez, então logo após o tick uma rajada de até `limit` chamadores pode ser
// admitida simultaneamente. Não há suavização nem fila de fairness por
// chamador; é uma janela fixa grossa, fiel ao serviço que ela protege.
package infra
