// Package application contém o caso de uso de envio de documentos.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: Service.Submit(ctx, doc, assinatura) adquire a permissão, serializa
// e delega o envio ao Sender, classificando o erro no caminho de volta.
package application
