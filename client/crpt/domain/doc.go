// Package domain define contratos e tipos de domínio para o cliente do gateway.
//
// Este pacote não depende de net/http nem de implementações concretas.
// A intenção é permitir testes de unidade puros e desacoplar regras de negócio
// de detalhes de infraestrutura (HTTP, Redis, timers).
package domain
